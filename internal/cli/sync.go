package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/rulesync/internal/config"
	"github.com/agentx-labs/rulesync/internal/engine"
)

var (
	syncForce bool
	syncTool  string
	syncJobs  int
)

func init() {
	syncCmd.Flags().BoolVar(&syncForce, "force", false, "Resolve conflicts by taking the canonical content")
	syncCmd.Flags().StringVar(&syncTool, "tool", "", "Sync a single tool instead of all declared tools")
	syncCmd.Flags().IntVar(&syncJobs, "jobs", 0, "Number of targets processed in parallel (default from config)")
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Write canonical rules into every tool's instruction file",
	Long: `Bring every managed block up to date with the canonical rules.

New rules are inserted, source updates overwrite unedited blocks, and
blocks whose rule no longer exists are removed. Locally edited blocks are
kept. Blocks where both the rule and the local body changed are conflicts
and are left untouched unless --force is given, in which case the
canonical content wins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		targets, err := ws.selectTargets(syncTool)
		if err != nil {
			return err
		}

		jobs := syncJobs
		if jobs <= 0 {
			jobs = config.Jobs()
		}

		eng := engine.New(ws.Set, ws.Store, engine.Options{
			Mode:  engine.ModeSync,
			Force: syncForce,
			Jobs:  jobs,
		})
		report, err := eng.Run(cmd.Context(), targets)
		if err != nil {
			return err
		}

		fmt.Print(report.Render(config.Color()))

		if report.Unresolved() {
			return fmt.Errorf("%d conflict(s) left unresolved, %d target error(s)",
				report.ConflictCount(), report.ErrCount())
		}
		return nil
	},
}
