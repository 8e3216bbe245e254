package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/agentx-labs/rulesync/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Keys recognized in the config file. Unknown keys are preserved but
// never consulted.
const (
	KeyJobs  = "jobs"
	KeyColor = "color"
)

// Dir returns the path to the user-level config directory (~/.rulesync/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.rulesync/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// Environment variables use the RULESYNC_ prefix and override the file.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyJobs, 4)
	viper.SetDefault(KeyColor, true)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Jobs returns the configured worker count for sync runs.
func Jobs() int {
	return viper.GetInt(KeyJobs)
}

// Color reports whether report output should be styled.
func Color() bool {
	return viper.GetBool(KeyColor)
}

// Set writes a config key-value pair and saves the config file. A fresh
// Viper instance carries only the file's own keys plus the one being
// set, so defaults never get frozen into the user's file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()

	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType(fileType)

	// Ignore error if config file doesn't exist yet.
	_ = v.ReadInConfig()

	v.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	// Keep the running session consistent with what was persisted.
	viper.Set(key, value)

	return nil
}
