package integrations

import (
	"path/filepath"
	"testing"
)

func TestParseToolName(t *testing.T) {
	if _, ok := ParseToolName("claude-code"); !ok {
		t.Error("claude-code not recognized")
	}
	if _, ok := ParseToolName("notepad"); ok {
		t.Error("unknown tool accepted")
	}
}

func TestAllToolsSortedAndRegistered(t *testing.T) {
	tools := AllTools()
	if len(tools) == 0 {
		t.Fatal("no tools registered")
	}
	for i, name := range tools {
		if i > 0 && tools[i-1] >= name {
			t.Errorf("tools not sorted: %s before %s", tools[i-1], name)
		}
		if _, ok := Lookup(name); !ok {
			t.Errorf("AllTools returned unregistered tool %s", name)
		}
	}
}

func TestResolveTarget(t *testing.T) {
	target, ok := ResolveTarget(Copilot, "/repo")
	if !ok {
		t.Fatal("copilot not resolved")
	}
	if target.Path != filepath.Join("/repo", ".github", "copilot-instructions.md") {
		t.Errorf("path = %q", target.Path)
	}
	if target.Rel != ".github/copilot-instructions.md" {
		t.Errorf("rel = %q", target.Rel)
	}
}

func TestEveryToolHasPathAndStyle(t *testing.T) {
	for _, name := range AllTools() {
		cfg, _ := Lookup(name)
		if cfg.ConfigPath == "" {
			t.Errorf("%s has no config path", name)
		}
		if cfg.Style.Open == "" {
			t.Errorf("%s has no marker style", name)
		}
	}
}
