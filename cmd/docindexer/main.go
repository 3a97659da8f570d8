// Command docindexer indexes office documents from Google Drive into
// a Qdrant vector collection.
package main

import (
	"os"

	"github.com/halcyon-labs/docindexer/internal/adapters/driving/cli"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		os.Exit(1)
	}
}
