package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return DefaultConfig()
}

func TestValidate_DefaultConfig(t *testing.T) {
	t.Parallel()
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyPython(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Python = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "python")
}

func TestValidate_EmptyPip(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Pip = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pip")
}

func TestValidate_EmptyAcceleratorPackage(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Accelerator.Package = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accelerator.package")
}

func TestValidate_RelativeIndexURL(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Accelerator.IndexURL = "releases/libtpu.html"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accelerator.index_url")
}

func TestValidate_EmptyLibraryEntry(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Libraries = []string{"optax", "  "}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "libraries")
}

func TestValidate_EmptyDataDir(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Datasets.Dir = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datasets.dir")
}

func TestValidate_NoArchives(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Datasets.Archives = nil

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datasets.archives")
}

func TestValidate_ArchiveWithPath(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Datasets.Archives = []string{"../enwik8.zip"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bare file names")
}

func TestValidate_InvalidBaseURL(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Datasets.BaseURL = "mattmahoney.net/dc"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datasets.base_url")
}

func TestValidate_MirrorAllowsEmptyBaseURL(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Datasets.BaseURL = ""
	cfg.Datasets.Mirror = Mirror{
		Endpoint: "https://storage.example.com",
		Bucket:   "datasets",
	}

	assert.NoError(t, cfg.Validate())
}

func TestValidate_MirrorRequiresEndpoint(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Datasets.Mirror = Mirror{Bucket: "datasets"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "datasets.mirror.endpoint")
}

func TestValidate_RemoteHostsRequireUser(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Remote = Remote{Hosts: []string{"10.0.0.1"}, KeyFile: "~/.ssh/id_ed25519"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote.user")
}

func TestValidate_RemoteHostsRequireKeyFile(t *testing.T) {
	t.Parallel()
	cfg := validConfig()
	cfg.Remote = Remote{Hosts: []string{"10.0.0.1"}, User: "ubuntu"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "remote.key_file")
}
