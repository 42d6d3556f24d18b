package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTPU(t *testing.T) {
	cmd := TPU()

	require.NotNil(t, cmd)
	assert.Equal(t, "tpu", cmd.Use)
}

func TestTPU_HasSubcommands(t *testing.T) {
	cmd := TPU()

	subcommands := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		subcommands[sub.Name()] = true
	}

	for _, expected := range []string{"create", "status", "delete"} {
		assert.True(t, subcommands[expected], "Expected subcommand %s not found", expected)
	}
}

func TestTPUCreate_WaitFlag(t *testing.T) {
	cmd := TPU()

	create, _, err := cmd.Find([]string{"create"})
	require.NoError(t, err)

	flag := create.Flags().Lookup("wait")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestTPUDelete_TimeoutFlag(t *testing.T) {
	cmd := TPU()

	del, _, err := cmd.Find([]string{"delete"})
	require.NoError(t, err)

	flag := del.Flags().Lookup("timeout")
	require.NotNil(t, flag)
	assert.Equal(t, "0s", flag.DefValue)
}
