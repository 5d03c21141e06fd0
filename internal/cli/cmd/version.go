package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/glyphs/internal/domain/build"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("glyphs %s (%s, built %s with %s)\n%s\n",
			buildInfo.Version, buildInfo.Commit, buildInfo.BuildDate, buildInfo.GoVersion, build.RepoURL())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
