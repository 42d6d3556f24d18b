package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	cmd := Apply()

	require.NotNil(t, cmd)
	assert.Equal(t, "apply", cmd.Use)
	assert.Equal(t, "Provision this host", cmd.Short)
}

func TestApply_ConfigFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag, "config flag should exist")
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

func TestApply_SkipDatasetsFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("skip-datasets")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestApply_MetricsFileFlag(t *testing.T) {
	cmd := Apply()

	flag := cmd.Flags().Lookup("metrics-file")
	require.NotNil(t, flag)
	assert.Equal(t, "", flag.DefValue)
}

func TestApply_RunE(t *testing.T) {
	cmd := Apply()
	assert.NotNil(t, cmd.RunE, "Apply command should have RunE function")
}
