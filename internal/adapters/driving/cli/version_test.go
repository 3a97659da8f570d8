package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	buf := new(bytes.Buffer)
	versionCmd.SetOut(buf)

	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, buf.String(), "docindexer version")
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"index", "recreate", "runs", "version"} {
		require.True(t, names[want], "missing subcommand %q", want)
	}
}
