package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/rulesync/internal/config"
	"github.com/agentx-labs/rulesync/internal/engine"
)

var (
	checkTool string
	checkJobs int
)

func init() {
	checkCmd.Flags().StringVar(&checkTool, "tool", "", "Check a single tool instead of all declared tools")
	checkCmd.Flags().IntVar(&checkJobs, "jobs", 0, "Number of targets processed in parallel (default from config)")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report drift without modifying any files",
	Long: `Compare every managed block against the canonical rules and the last
sync snapshot, and print a per-block drift report. Nothing is written.

Exits non-zero when any block drifted or any target failed to parse, so
the command can gate CI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := loadWorkspace()
		if err != nil {
			return err
		}

		targets, err := ws.selectTargets(checkTool)
		if err != nil {
			return err
		}

		jobs := checkJobs
		if jobs <= 0 {
			jobs = config.Jobs()
		}

		eng := engine.New(ws.Set, ws.Store, engine.Options{Mode: engine.ModeCheck, Jobs: jobs})
		report, err := eng.Run(cmd.Context(), targets)
		if err != nil {
			return err
		}

		fmt.Print(report.Render(config.Color()))

		if !report.Clean() {
			return fmt.Errorf("%d block(s) drifted, %d target error(s)", report.DriftCount(), report.ErrCount())
		}
		return nil
	},
}
