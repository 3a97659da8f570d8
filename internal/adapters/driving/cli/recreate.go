package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var recreateCmd = &cobra.Command{
	Use:   "recreate",
	Short: "Drop and recreate the vector store collection",
	Long: `Deletes the configured collection and recreates it empty with the
current embedding model's dimensionality. Use this after switching
embedding models; nothing is migrated.`,
	RunE: runRecreate,
}

var flagRecreateYes bool

func init() {
	recreateCmd.Flags().BoolVarP(&flagRecreateYes, "yes", "y", false, "skip the confirmation prompt")
	rootCmd.AddCommand(recreateCmd)
}

func runRecreate(cmd *cobra.Command, _ []string) error {
	if !flagRecreateYes {
		cmd.Printf("This deletes all indexed data in collection %q. Continue? [y/N]: ", cfg.Indexer.Collection)
		var answer string
		_, _ = fmt.Fscanln(cmd.InOrStdin(), &answer)
		if answer != "y" && answer != "Y" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	ctx := cmd.Context()
	p, err := buildPipeline(ctx)
	if err != nil {
		return err
	}
	defer p.Close()

	if err := p.indexer.RecreateCollection(ctx); err != nil {
		return fmt.Errorf("recreate collection: %w", err)
	}

	cmd.Printf("Collection %q recreated (%d dimensions).\n", cfg.Indexer.Collection, p.embedder.Dimensions())
	return nil
}
