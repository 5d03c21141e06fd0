package config

import (
	"os"
	"path/filepath"
)

const (
	appName      = "glyphs"
	configName   = "config"
	configFile   = "config.toml"
	schemaFile   = "config.schema.json"
	databaseFile = "assets.sqlite"

	dirPerm  = 0o755
	filePerm = 0o644
)

// Dirs are the XDG base directories of the application.
type Dirs struct {
	Config string
	Data   string
	State  string
}

// GetDirs resolves the XDG directories. ENV=dev keeps everything under
// ./.dev/glyphs.
func GetDirs() (Dirs, error) {
	if os.Getenv("ENV") == "dev" {
		cwd, err := os.Getwd()
		if err != nil {
			return Dirs{}, err
		}
		dev := filepath.Join(cwd, ".dev", appName)
		return Dirs{Config: dev, Data: dev, State: dev}, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Dirs{}, err
	}
	return Dirs{
		Config: filepath.Join(xdgOr("XDG_CONFIG_HOME", filepath.Join(home, ".config")), appName),
		Data:   filepath.Join(xdgOr("XDG_DATA_HOME", filepath.Join(home, ".local", "share")), appName),
		State:  filepath.Join(xdgOr("XDG_STATE_HOME", filepath.Join(home, ".local", "state")), appName),
	}, nil
}

func xdgOr(env, fallback string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	return fallback
}

// GetConfigDir returns the directory holding config.toml.
func GetConfigDir() (string, error) {
	d, err := GetDirs()
	return d.Config, err
}

// GetConfigFile returns the path of config.toml.
func GetConfigFile() (string, error) {
	d, err := GetDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(d.Config, configFile), nil
}

// GetDatabaseFile returns the default asset store path.
func GetDatabaseFile() (string, error) {
	d, err := GetDirs()
	if err != nil {
		return "", err
	}
	return filepath.Join(d.Data, databaseFile), nil
}

// GetStateDir returns the directory for logs.
func GetStateDir() (string, error) {
	d, err := GetDirs()
	return d.State, err
}

// EnsureDirectories creates the XDG directories.
func EnsureDirectories() error {
	d, err := GetDirs()
	if err != nil {
		return err
	}
	for _, dir := range []string{d.Config, d.Data, d.State} {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return err
		}
	}
	return nil
}
