package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/rulesync/internal/branding"
	"github.com/agentx-labs/rulesync/internal/gitio"
	"github.com/agentx-labs/rulesync/internal/integrations"
	"github.com/agentx-labs/rulesync/internal/rules"
	"github.com/agentx-labs/rulesync/internal/snapshot"
)

// workspace is the loaded state every engine-backed command starts from:
// the repository root, the canonical rule set, and the snapshot store.
type workspace struct {
	Root  string
	Set   *rules.Set
	Store *snapshot.Store
}

// findRoot locates the repository root. Outside a git repository the
// current directory is used, so the tool still works in plain directories.
func findRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting current directory: %w", err)
	}

	root, err := gitio.RepoRoot(cwd)
	if errors.Is(err, gitio.ErrNotInRepo) {
		return cwd, nil
	}
	if err != nil {
		return "", err
	}
	return root, nil
}

// sourceDir returns the canonical source directory under root.
func sourceDir(root string) string {
	return filepath.Join(root, branding.SourceDir())
}

// loadWorkspace loads the rule set and snapshot store for the enclosing
// repository.
func loadWorkspace() (*workspace, error) {
	root, err := findRoot()
	if err != nil {
		return nil, err
	}

	dir := sourceDir(root)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("no %s directory found in %s, run '%s init' first",
			branding.SourceDir(), root, branding.CLIName())
	}

	set, err := rules.Load(dir, buildVersion)
	if err != nil {
		return nil, err
	}

	store, err := snapshot.Load(filepath.Join(dir, snapshot.FileName))
	if err != nil {
		return nil, err
	}

	return &workspace{Root: root, Set: set, Store: store}, nil
}

// selectTargets resolves the target files for the run. With tool empty
// every tool the manifest declares is included; otherwise only the named
// tool, which must be declared.
func (w *workspace) selectTargets(tool string) ([]integrations.Target, error) {
	names := w.Set.Tools
	if tool != "" {
		name, ok := integrations.ParseToolName(tool)
		if !ok {
			return nil, fmt.Errorf("unknown tool %q (known: %v)", tool, integrations.AllTools())
		}
		declared := false
		for _, t := range w.Set.Tools {
			if t == string(name) {
				declared = true
			}
		}
		if !declared {
			return nil, fmt.Errorf("tool %q is not declared in the manifest", tool)
		}
		names = []string{string(name)}
	}

	targets := make([]integrations.Target, 0, len(names))
	for _, n := range names {
		target, ok := integrations.ResolveTarget(integrations.ToolName(n), w.Root)
		if !ok {
			return nil, fmt.Errorf("no target mapping for tool %q", n)
		}
		targets = append(targets, target)
	}
	return targets, nil
}
