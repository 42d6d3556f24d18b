package handlers

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/tpuprep/internal/runner"
	"github.com/imamik/tpuprep/internal/util/prerequisites"
)

// failingRunner fails every executed command.
type failingRunner struct{}

func (failingRunner) Run(context.Context, runner.Command) error { return fmt.Errorf("exit status 1") }

func (failingRunner) Output(context.Context, runner.Command) (string, error) {
	return "", fmt.Errorf("exit status 1")
}

func TestApply_FullRun(t *testing.T) {
	server := datasetServer(t, map[string][]byte{
		"enwik8.zip": zipArchive(t, map[string]string{"enwik8": "wikipedia text"}),
	})
	cfg := testConfig(t, server.URL, "enwik8.zip")

	stubLoadConfig(t, cfg)
	stubPrereqsFound(t)
	stubRunner(t, runner.NewDryRunner())

	metricsFile := filepath.Join(t.TempDir(), "tpuprep.prom")
	err := Apply(context.Background(), ApplyOptions{MetricsFile: metricsFile})
	require.NoError(t, err)

	// Datasets landed on disk
	corpus, err := os.ReadFile(filepath.Join(cfg.Datasets.Dir, "enwik8"))
	require.NoError(t, err)
	assert.Equal(t, "wikipedia text", string(corpus))

	// Metrics were written
	metrics, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "tpuprep_provision_phase_total")
	assert.Contains(t, string(metrics), `result="succeeded"`)
}

func TestApply_SkipDatasets(t *testing.T) {
	cfg := testConfig(t, "http://example.invalid")

	stubLoadConfig(t, cfg)
	stubPrereqsFound(t)
	dry := runner.NewDryRunner()
	stubRunner(t, dry)

	err := Apply(context.Background(), ApplyOptions{SkipDatasets: true})
	require.NoError(t, err)

	// Only the package phases ran, nothing touched the filesystem
	assert.NotEmpty(t, dry.Commands)
	_, statErr := os.Stat(cfg.Datasets.Dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestApply_StopsBeforeDatasetsOnInstallFailure(t *testing.T) {
	cfg := testConfig(t, "http://example.invalid")

	stubLoadConfig(t, cfg)
	stubPrereqsFound(t)
	stubRunner(t, failingRunner{})

	metricsFile := filepath.Join(t.TempDir(), "tpuprep.prom")
	err := Apply(context.Background(), ApplyOptions{MetricsFile: metricsFile})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "remove-conflicts phase failed")

	// Dataset phases never ran
	_, statErr := os.Stat(cfg.Datasets.Dir)
	assert.True(t, os.IsNotExist(statErr))

	// The failed phase still shows up in the metrics textfile
	metrics, readErr := os.ReadFile(metricsFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(metrics), `result="failed"`)
}

func TestApply_PrerequisitesFailure(t *testing.T) {
	cfg := testConfig(t, "http://example.invalid")
	stubLoadConfig(t, cfg)
	stubRunner(t, runner.NewDryRunner())

	orig := checkDefaultPrereqs
	checkDefaultPrereqs = func() *prerequisites.CheckResults {
		return &prerequisites.CheckResults{
			Missing: []prerequisites.Tool{{Name: "pip", Required: true, InstallURL: "https://pip.pypa.io"}},
		}
	}
	t.Cleanup(func() { checkDefaultPrereqs = orig })

	err := Apply(context.Background(), ApplyOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "prerequisites check failed")
	assert.Contains(t, err.Error(), "pip")
}

func TestApply_PrerequisitesCheckDisabled(t *testing.T) {
	cfg := testConfig(t, "http://example.invalid")
	off := false
	cfg.PrerequisitesCheckEnabled = &off

	stubLoadConfig(t, cfg)
	stubRunner(t, runner.NewDryRunner())

	// No prerequisite stub: the check must not run at all
	err := Apply(context.Background(), ApplyOptions{SkipDatasets: true})
	require.NoError(t, err)
}
