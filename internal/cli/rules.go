package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/rulesync/internal/marker"
	"github.com/agentx-labs/rulesync/internal/rules"
)

var rulesJSON bool

func init() {
	rulesListCmd.Flags().BoolVar(&rulesJSON, "json", false, "Output in JSON format")
	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesValidateCmd)
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the canonical rule set",
}

// ruleEntry represents one canonical rule for display.
type ruleEntry struct {
	ID     string   `json:"id"`
	Prefix string   `json:"prefix"`
	Hash   string   `json:"hash"`
	Tools  []string `json:"tools,omitempty"`
	Path   string   `json:"path"`
	Lines  int      `json:"lines"`
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the rules the manifest declares",
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		entries := make([]ruleEntry, 0, len(ws.Set.Rules))
		for _, r := range ws.Set.Rules {
			entries = append(entries, ruleEntry{
				ID:     r.ID,
				Prefix: r.Prefix,
				Hash:   marker.Sum(r.Body),
				Tools:  r.Tools,
				Path:   r.Path,
				Lines:  strings.Count(r.Body, "\n") + 1,
			})
		}

		if rulesJSON {
			out, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling rules: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tPREFIX\tHASH\tTOOLS\tFILE\tLINES")
		for _, e := range entries {
			tools := "all"
			if len(e.Tools) > 0 {
				tools = strings.Join(e.Tools, ",")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n", e.ID, e.Prefix, e.Hash, tools, e.Path, e.Lines)
		}
		return w.Flush()
	},
}

var rulesValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the manifest and every rule file",
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := findRoot()
		if err != nil {
			return err
		}

		manifestPath := filepath.Join(sourceDir(root), rules.ManifestName)
		data, err := os.ReadFile(manifestPath)
		if err != nil {
			return fmt.Errorf("reading manifest %s: %w", manifestPath, err)
		}

		result, err := rules.Validate(data)
		if err != nil {
			return fmt.Errorf("validating manifest %s: %w", manifestPath, err)
		}
		if !result.Valid {
			return fmt.Errorf("manifest %s is invalid:\n%s", manifestPath, result.Describe())
		}

		// Loading exercises every rule file: frontmatter, prefixes,
		// duplicate ids, undeclared tools.
		set, err := rules.Load(sourceDir(root), buildVersion)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Manifest and %d rule(s) are valid.\n", len(set.Rules))
		return nil
	},
}
