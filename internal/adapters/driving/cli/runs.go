package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docindexer/internal/adapters/driven/storage/sqlite"
)

// timeRounding keeps printed durations readable.
const timeRounding = 100 * time.Millisecond

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show past indexing runs",
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := sqlite.NewStore(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("open run ledger: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(cmd.Context(), flagRunsLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if len(runs) == 0 {
		cmd.Println("No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		cmd.Printf("#%d  %s  folder=%s  %d/%d documents  %d chunks  %s",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.FolderID,
			run.Stats.Processed,
			run.Stats.TotalDocuments,
			run.Stats.TotalChunks,
			run.Stats.TotalTime.Round(timeRounding),
		)
		if run.Stats.Failed > 0 {
			cmd.Printf("  (%d failed)", run.Stats.Failed)
		}
		cmd.Println()

		for _, message := range run.Stats.Errors {
			cmd.Printf("    error: %s\n", message)
		}
	}
	return nil
}
