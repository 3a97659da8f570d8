// Package cli provides the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/halcyon-labs/docindexer/internal/adapters/driven/config/file"
	"github.com/halcyon-labs/docindexer/internal/logger"
)

// version is set via Execute from the build.
var version = "dev"

var (
	flagConfig  string
	flagVerbose bool
)

// cfg holds the loaded configuration, available to all commands.
var cfg file.Config

var rootCmd = &cobra.Command{
	Use:   "docindexer",
	Short: "Index office documents from Google Drive into Qdrant",
	Long: `docindexer walks a Google Drive folder, extracts text from Word,
Excel, PowerPoint and PDF documents, chunks it with structure awareness,
enriches each chunk with document context, and upserts embeddings into a
Qdrant collection.`,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		loaded, err := file.Load(flagConfig)
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default ~/.docindexer/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the CLI with the given build version.
func Execute(buildVersion string) error {
	if buildVersion != "" {
		version = buildVersion
	}
	return rootCmd.Execute()
}
