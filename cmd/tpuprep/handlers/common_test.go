package handlers

import (
	"archive/zip"
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/tpuprep/internal/config"
	"github.com/imamik/tpuprep/internal/runner"
	"github.com/imamik/tpuprep/internal/util/prerequisites"
)

// stubLoadConfig replaces config resolution for the duration of a test.
func stubLoadConfig(t *testing.T, cfg *config.Config) {
	t.Helper()
	orig := loadConfig
	loadConfig = func(string) (*config.Config, error) { return cfg, nil }
	t.Cleanup(func() { loadConfig = orig })
}

// stubPrereqsFound makes every prerequisite check succeed.
func stubPrereqsFound(t *testing.T) {
	t.Helper()
	found := func(tools []prerequisites.Tool) *prerequisites.CheckResults {
		results := &prerequisites.CheckResults{}
		for _, tool := range tools {
			results.Results = append(results.Results, prerequisites.CheckResult{
				Tool:  tool,
				Found: true,
				Path:  "/usr/bin/" + tool.Name,
			})
		}
		return results
	}

	origDefault := checkDefaultPrereqs
	origTPU := checkTPUPrereqs
	origDoctor := checkDoctorPrereqs
	checkDefaultPrereqs = func() *prerequisites.CheckResults { return found(prerequisites.DefaultTools()) }
	checkTPUPrereqs = func() *prerequisites.CheckResults {
		return found(append(prerequisites.DefaultTools(), prerequisites.TPUTools()...))
	}
	checkDoctorPrereqs = func() *prerequisites.CheckResults { return found(prerequisites.DoctorTools()) }
	t.Cleanup(func() {
		checkDefaultPrereqs = origDefault
		checkTPUPrereqs = origTPU
		checkDoctorPrereqs = origDoctor
	})
}

// stubRunner replaces the command runner used by apply and datasets.
func stubRunner(t *testing.T, run runner.Runner) {
	t.Helper()
	orig := newRunner
	newRunner = func() runner.Runner { return run }
	t.Cleanup(func() { newRunner = orig })
}

// zipArchive builds an in-memory zip with the given entries.
func zipArchive(t *testing.T, entries map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

// datasetServer serves the given archives over HTTP.
func datasetServer(t *testing.T, archives map[string][]byte) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := filepath.Base(r.URL.Path)
		data, ok := archives[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	t.Cleanup(server.Close)
	return server
}

// testConfig returns a config pointing at a temp data dir and test server.
func testConfig(t *testing.T, baseURL string, archives ...string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Datasets.Dir = filepath.Join(t.TempDir(), "data")
	cfg.Datasets.BaseURL = baseURL
	if len(archives) > 0 {
		cfg.Datasets.Archives = archives
	}
	return cfg
}

// captureStdout runs fn and returns everything it wrote to stdout.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	require.NoError(t, w.Close())
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(data)
}
