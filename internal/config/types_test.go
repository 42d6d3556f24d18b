package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccelerator_Requirement(t *testing.T) {
	t.Parallel()
	a := Accelerator{Package: "jax[tpu]", Version: "0.2.16"}

	assert.Equal(t, "jax[tpu]==0.2.16", a.Requirement())
}

func TestAccelerator_Requirement_Unpinned(t *testing.T) {
	t.Parallel()
	a := Accelerator{Package: "jax[tpu]"}

	assert.Equal(t, "jax[tpu]", a.Requirement())
}

func TestConfig_SudoEnabled(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	assert.True(t, cfg.SudoEnabled(), "sudo defaults to enabled")

	off := false
	cfg.Sudo = &off
	assert.False(t, cfg.SudoEnabled())

	on := true
	cfg.Sudo = &on
	assert.True(t, cfg.SudoEnabled())
}

func TestConfig_PrerequisitesEnabled(t *testing.T) {
	t.Parallel()
	cfg := &Config{}
	assert.True(t, cfg.PrerequisitesEnabled(), "prerequisite checks default to enabled")

	off := false
	cfg.PrerequisitesCheckEnabled = &off
	assert.False(t, cfg.PrerequisitesEnabled())
}

func TestMirror_Enabled(t *testing.T) {
	t.Parallel()
	assert.False(t, Mirror{}.Enabled())
	assert.False(t, Mirror{Endpoint: "https://storage.example.com"}.Enabled())
	assert.True(t, Mirror{Bucket: "datasets"}.Enabled())
}

func TestDefaultConfig_PinsCanonicalSetup(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()

	assert.Equal(t, "jax[tpu]==0.2.16", cfg.Accelerator.Requirement())
	assert.Equal(t, []string{"enwik8.zip", "enwik9.zip"}, cfg.Datasets.Archives)
	assert.Contains(t, cfg.Libraries, "optax")
	assert.Contains(t, cfg.Libraries, "ray")
	assert.True(t, cfg.TPU.Preemptible)
	assert.NoError(t, cfg.Validate())
}
