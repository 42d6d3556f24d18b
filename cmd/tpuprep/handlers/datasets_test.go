package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/tpuprep/internal/runner"
)

func TestDatasets_FetchesAndExtracts(t *testing.T) {
	server := datasetServer(t, map[string][]byte{
		"enwik8.zip": zipArchive(t, map[string]string{"enwik8": "wikipedia text"}),
	})
	cfg := testConfig(t, server.URL, "enwik8.zip")

	stubLoadConfig(t, cfg)
	stubRunner(t, runner.NewDryRunner())

	err := Datasets(context.Background(), "", false)
	require.NoError(t, err)

	corpus, err := os.ReadFile(filepath.Join(cfg.Datasets.Dir, "enwik8"))
	require.NoError(t, err)
	assert.Equal(t, "wikipedia text", string(corpus))
}

func TestDatasets_RerunKeepsExistingArchives(t *testing.T) {
	requests := 0
	archive := zipArchive(t, map[string]string{"enwik8": "wikipedia text"})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests++
		_, _ = w.Write(archive)
	}))
	t.Cleanup(server.Close)
	cfg := testConfig(t, server.URL, "enwik8.zip")

	stubLoadConfig(t, cfg)
	stubRunner(t, runner.NewDryRunner())

	require.NoError(t, Datasets(context.Background(), "", false))
	require.NoError(t, Datasets(context.Background(), "", false))

	assert.Equal(t, 1, requests, "rerun must keep the existing archive")
}

func TestDatasets_ForceRedownloads(t *testing.T) {
	server := datasetServer(t, map[string][]byte{
		"enwik8.zip": zipArchive(t, map[string]string{"enwik8": "fresh"}),
	})
	cfg := testConfig(t, server.URL, "enwik8.zip")

	stubLoadConfig(t, cfg)
	stubRunner(t, runner.NewDryRunner())

	// Seed a stale archive
	require.NoError(t, os.MkdirAll(cfg.Datasets.Dir, 0750))
	stale := zipArchive(t, map[string]string{"enwik8": "stale"})
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Datasets.Dir, "enwik8.zip"), stale, 0600))

	err := Datasets(context.Background(), "", true)
	require.NoError(t, err)

	corpus, err := os.ReadFile(filepath.Join(cfg.Datasets.Dir, "enwik8"))
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(corpus))
}
