package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/rulesync/internal/branding"
	"github.com/agentx-labs/rulesync/internal/fsutil"
	"github.com/agentx-labs/rulesync/internal/gitio"
	"github.com/agentx-labs/rulesync/internal/integrations"
	"github.com/agentx-labs/rulesync/internal/rules"
)

var initTools string

func init() {
	initCmd.Flags().StringVar(&initTools, "tools", "claude-code,copilot",
		"Comma-separated list of AI tools to configure")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the canonical rule source in this repository",
	Long: `Create the .rulesync/ source directory with a manifest and a starter
rule. Run 'rulesync sync' afterwards to write the first managed blocks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := findRoot()
		if err != nil {
			return err
		}

		dir := sourceDir(root)
		manifestPath := filepath.Join(dir, rules.ManifestName)
		if _, err := os.Stat(manifestPath); err == nil {
			return fmt.Errorf("already initialized: %s exists", manifestPath)
		}

		tools, err := parseToolsList(initTools)
		if err != nil {
			return err
		}

		if err := fsutil.EnsureDir(filepath.Join(dir, "rules")); err != nil {
			return err
		}

		manifest := buildManifest(tools)
		if err := fsutil.WriteAtomic(manifestPath, []byte(manifest), 0o644); err != nil {
			return fmt.Errorf("writing manifest: %w", err)
		}

		starterPath := filepath.Join(dir, "rules", "project-conventions.md")
		if err := fsutil.WriteAtomic(starterPath, []byte(starterRule), 0o644); err != nil {
			return fmt.Errorf("writing starter rule: %w", err)
		}

		fmt.Printf("Initialized %s in %s\n", branding.SourceDir(), root)
		if org, err := gitio.Organization(root); err == nil {
			fmt.Printf("Repository owner: %s\n", org)
		}
		fmt.Printf("Tools: %s\n", strings.Join(tools, ", "))
		fmt.Printf("\nEdit %s, then run '%s sync'.\n", starterPath, branding.CLIName())
		return nil
	},
}

// parseToolsList splits and validates the --tools flag.
func parseToolsList(s string) ([]string, error) {
	var tools []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := integrations.ParseToolName(part); !ok {
			return nil, fmt.Errorf("unknown tool %q (known: %v)", part, integrations.AllTools())
		}
		tools = append(tools, part)
	}
	if len(tools) == 0 {
		return nil, fmt.Errorf("at least one tool must be specified via --tools")
	}
	return tools, nil
}

func buildManifest(tools []string) string {
	var b strings.Builder
	b.WriteString("version: 1\n")
	b.WriteString("tools:\n")
	for _, t := range tools {
		fmt.Fprintf(&b, "  - %s\n", t)
	}
	b.WriteString("rules:\n")
	b.WriteString("  - rules/project-conventions.md\n")
	return b.String()
}

const starterRule = `---
id: project-conventions
---
# Project conventions

Describe the conventions every AI assistant should follow in this
repository: code style, test expectations, review etiquette.
`
