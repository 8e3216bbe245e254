package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentx-labs/rulesync/internal/branding"
	"github.com/agentx-labs/rulesync/internal/config"
	"github.com/agentx-labs/rulesync/internal/engine"
	"github.com/agentx-labs/rulesync/internal/watch"
)

var (
	watchTool     string
	watchJobs     int
	watchDebounce time.Duration
)

func init() {
	watchCmd.Flags().StringVar(&watchTool, "tool", "", "Sync a single tool instead of all declared tools")
	watchCmd.Flags().IntVar(&watchJobs, "jobs", 0, "Number of targets processed in parallel (default from config)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before a change triggers a sync")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync continuously while the rule source changes",
	Long: `Run an initial sync, then watch the .rulesync/ source directory and
re-sync after every change. Conflicts are reported and left alone, the
same as an unforced 'sync'. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		jobs := watchJobs
		if jobs <= 0 {
			jobs = config.Jobs()
		}

		runOnce := func() {
			ws, err := loadWorkspace()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			targets, err := ws.selectTargets(watchTool)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			eng := engine.New(ws.Set, ws.Store, engine.Options{Mode: engine.ModeSync, Jobs: jobs})
			report, err := eng.Run(ctx, targets)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return
			}
			fmt.Print(report.Render(config.Color()))
		}

		root, err := findRoot()
		if err != nil {
			return err
		}

		runOnce()

		w, err := watch.New(watchDebounce)
		if err != nil {
			return err
		}
		defer w.Close()

		fmt.Printf("Watching %s for changes. Press Ctrl-C to stop.\n", branding.SourceDir())
		err = w.Run(ctx, sourceDir(root), runOnce)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}
