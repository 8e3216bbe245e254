package snapshot

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingStore(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Get("CLAUDE.md", "style", "rulesync_rule") != nil {
		t.Error("empty store returned an entry")
	}
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s.ReplaceTarget("CLAUDE.md", []Entry{
		{ID: "style", Prefix: "rulesync_rule", CanonicalHash: "aaaa", BodyHash: "bbbb"},
		{ID: "testing", Prefix: "rulesync_rule", CanonicalHash: "cccc", BodyHash: "dddd"},
	})

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}

	e := reloaded.Get("CLAUDE.md", "style", "rulesync_rule")
	if e == nil {
		t.Fatal("entry lost across save/reload")
	}
	if e.CanonicalHash != "aaaa" || e.BodyHash != "bbbb" {
		t.Errorf("entry = %+v", e)
	}

	if reloaded.Get("CLAUDE.md", "style", "other_prefix") != nil {
		t.Error("lookup ignored the prefix key")
	}
}

func TestReplaceTargetDropsRemovedBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s, _ := Load(path)

	s.ReplaceTarget("CLAUDE.md", []Entry{
		{ID: "style", Prefix: "rulesync_rule", CanonicalHash: "aa", BodyHash: "bb"},
	})
	s.ReplaceTarget("CLAUDE.md", []Entry{
		{ID: "testing", Prefix: "rulesync_rule", CanonicalHash: "cc", BodyHash: "dd"},
	})

	if s.Get("CLAUDE.md", "style", "rulesync_rule") != nil {
		t.Error("replaced entry still present")
	}
	if s.Get("CLAUDE.md", "testing", "rulesync_rule") == nil {
		t.Error("new entry missing")
	}
}

func TestReplaceTargetEmptyRemovesTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	s, _ := Load(path)

	s.ReplaceTarget("GEMINI.md", []Entry{{ID: "a", Prefix: "p", CanonicalHash: "x", BodyHash: "y"}})
	s.ReplaceTarget("GEMINI.md", nil)
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, _ := Load(path)
	if reloaded.Get("GEMINI.md", "a", "p") != nil {
		t.Error("cleared target survived save")
	}
}

func TestSaveIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.yaml")
	s, _ := Load(path)
	s.ReplaceTarget("CLAUDE.md", []Entry{
		{ID: "b", Prefix: "p", CanonicalHash: "1", BodyHash: "2"},
		{ID: "a", Prefix: "p", CanonicalHash: "3", BodyHash: "4"},
	})

	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	first, _ := os.ReadFile(path)

	if err := s.Save(); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	second, _ := os.ReadFile(path)

	if string(first) != string(second) {
		t.Error("two saves of the same state produced different bytes")
	}
}
