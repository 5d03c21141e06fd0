package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ConfigRenderer renders config status messages with styled output.
type ConfigRenderer struct {
	theme *Theme
}

// NewConfigRenderer creates a new config renderer with the given theme.
func NewConfigRenderer(theme *Theme) *ConfigRenderer {
	return &ConfigRenderer{theme: theme}
}

// RenderConfigInfo renders the config and database locations.
func (r *ConfigRenderer) RenderConfigInfo(configPath, schemaPath, databasePath string) string {
	iconStyle := lipgloss.NewStyle().Foreground(r.theme.Accent)
	pathStyle := r.theme.Subtle

	return fmt.Sprintf(
		"\n  %s Config   %s\n  %s Schema   %s\n  %s Database %s\n",
		iconStyle.Render(IconConfig), pathStyle.Render(configPath),
		iconStyle.Render(IconInfo), pathStyle.Render(schemaPath),
		iconStyle.Render(IconDatabase), pathStyle.Render(databasePath),
	)
}

// RenderSuccess renders a success message with checkmark icon.
func (r *ConfigRenderer) RenderSuccess(msg string) string {
	return fmt.Sprintf("  %s %s\n", r.theme.SuccessStyle.Render(IconCheck), msg)
}

// RenderError renders an error message.
func (r *ConfigRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s\n", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}
