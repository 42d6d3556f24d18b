package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletion(t *testing.T) {
	cmd := Completion()

	require.NotNil(t, cmd)
	assert.Contains(t, cmd.Use, "completion")
	assert.ElementsMatch(t, []string{"bash", "zsh", "fish", "powershell"}, cmd.ValidArgs)
}

func TestCompletion_RejectsUnknownShell(t *testing.T) {
	cmd := Completion()

	err := cmd.Args(cmd, []string{"tcsh"})
	assert.Error(t, err)
}

func TestCompletion_AcceptsKnownShells(t *testing.T) {
	cmd := Completion()

	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		assert.NoError(t, cmd.Args(cmd, []string{shell}), "shell %s should be accepted", shell)
	}
}
