// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package, then rebuild. Go's
// //go:embed bakes the values into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

// defaults holds the parsed branding values, loaded once on first access.
var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	SourceDir   string `yaml:"source_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	MarkerTag   string `yaml:"marker_tag"`
	GoModule    string `yaml:"go_module"`
	GitHubRepo  string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "rulesync",
			DisplayName: "RuleSync",
			Description: "Keeps AI assistant rule files in sync from one canonical source",
			HomeDir:     ".rulesync",
			SourceDir:   ".rulesync",
			EnvPrefix:   "RULESYNC",
			MarkerTag:   "rulesync",
			GoModule:    "github.com/agentx-labs/rulesync",
			GitHubRepo:  "agentx-labs/rulesync",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "rulesync").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "RuleSync").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".rulesync").
func HomeDir() string { load(); return defaults.HomeDir }

// SourceDir returns the per-repository canonical source directory name.
func SourceDir() string { load(); return defaults.SourceDir }

// EnvPrefix returns the environment variable prefix (e.g., "RULESYNC").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// MarkerTag returns the namespace used in managed-block markers
// (e.g., "rulesync" in "rulesync:start").
func MarkerTag() string { load(); return defaults.MarkerTag }

// GoModule returns the Go module path. Used by rebranding scripts,
// not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "RULESYNC_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
