package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index [folder-id]",
	Short: "Index a Google Drive folder into the vector store",
	Long: `Walks the given Drive folder, extracts and chunks every supported
document, and upserts the embedded chunks into the configured Qdrant
collection. If no folder ID is given, the configured default is used.

Documents that fail are reported and skipped; the run continues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	folderID := cfg.Drive.FolderID
	if len(args) > 0 {
		folderID = args[0]
	}
	if folderID == "" {
		return errors.New("no folder ID given and none configured")
	}

	ctx := cmd.Context()
	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	stats, err := p.indexer.Run(ctx, folderID)
	if err != nil {
		return fmt.Errorf("indexing run failed: %w", err)
	}

	if stats.Failed > 0 {
		cmd.Printf("Indexed %d/%d documents (%d failed, %d chunks) in %s\n",
			stats.Processed, stats.TotalDocuments, stats.Failed, stats.TotalChunks, stats.TotalTime.Round(timeRounding))
	} else {
		cmd.Printf("Indexed %d documents (%d chunks) in %s\n",
			stats.Processed, stats.TotalChunks, stats.TotalTime.Round(timeRounding))
	}
	return nil
}
