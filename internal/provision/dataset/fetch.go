package dataset

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/imamik/tpuprep/internal/provision"
)

// Fetcher retrieves a dataset archive and writes it to a local path.
type Fetcher interface {
	Fetch(ctx *provision.Context, archive, target string) error
}

// HTTPFetcher downloads archives from the configured dataset host.
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using the default HTTP client.
// Downloads carry no explicit timeout; a stalled transfer surfaces as
// whatever error the transport reports.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: http.DefaultClient}
}

// Fetch implements Fetcher. The archive is streamed to a temporary file
// and renamed into place so an interrupted download never leaves a
// truncated artifact behind.
func (f *HTTPFetcher) Fetch(ctx *provision.Context, archive, target string) error {
	url := strings.TrimRight(ctx.Config.Datasets.BaseURL, "/") + "/" + archive

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s downloading %s", resp.Status, url)
	}

	return writeAtomic(target, resp.Body)
}

// writeAtomic streams r to a temp file in the target directory and
// renames it into place.
func writeAtomic(target string, r io.Reader) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, filepath.Base(target)+".partial-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("failed to move archive into place: %w", err)
	}
	return nil
}
