package integrations

import (
	"path/filepath"
	"sort"

	"github.com/agentx-labs/rulesync/internal/marker"
)

// ToolName identifies a supported AI tool integration.
type ToolName string

const (
	ClaudeCode ToolName = "claude-code"
	Copilot    ToolName = "copilot"
	Cursor     ToolName = "cursor"
	Windsurf   ToolName = "windsurf"
	Gemini     ToolName = "gemini"
)

// ToolConfig maps a tool to its target config file and marker style.
type ToolConfig struct {
	// ConfigPath is the tool's instruction file, relative to the
	// repository root (slash-separated).
	ConfigPath string

	// Style is the comment syntax wrapping marker lines in that file.
	Style marker.Style
}

// toolRegistry maps each tool to its target file. All current targets are
// Markdown variants, so they share the HTML-comment marker style; the
// parser itself takes the style per target.
var toolRegistry = map[ToolName]ToolConfig{
	ClaudeCode: {
		ConfigPath: "CLAUDE.md",
		Style:      marker.Markdown,
	},
	Copilot: {
		ConfigPath: ".github/copilot-instructions.md",
		Style:      marker.Markdown,
	},
	Cursor: {
		ConfigPath: ".cursor/rules/rulesync.mdc",
		Style:      marker.Markdown,
	},
	Windsurf: {
		ConfigPath: ".windsurf/rules/rulesync.md",
		Style:      marker.Markdown,
	},
	Gemini: {
		ConfigPath: "GEMINI.md",
		Style:      marker.Markdown,
	},
}

// AllTools returns every supported tool name, sorted.
func AllTools() []ToolName {
	names := make([]ToolName, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// ParseToolName converts a string to a ToolName, returning false if the
// tool is not registered.
func ParseToolName(s string) (ToolName, bool) {
	name := ToolName(s)
	_, ok := toolRegistry[name]
	return name, ok
}

// Lookup returns the registry entry for a tool.
func Lookup(name ToolName) (ToolConfig, bool) {
	cfg, ok := toolRegistry[name]
	return cfg, ok
}

// Target describes one target file resolved against a repository root.
type Target struct {
	Tool  ToolName
	Path  string // absolute path on disk
	Rel   string // registry path, used as the snapshot store key
	Style marker.Style
}

// ResolveTarget builds the Target for a tool under the given repository root.
func ResolveTarget(name ToolName, root string) (Target, bool) {
	cfg, ok := toolRegistry[name]
	if !ok {
		return Target{}, false
	}
	return Target{
		Tool:  name,
		Path:  filepath.Join(root, filepath.FromSlash(cfg.ConfigPath)),
		Rel:   cfg.ConfigPath,
		Style: cfg.Style,
	}, true
}
