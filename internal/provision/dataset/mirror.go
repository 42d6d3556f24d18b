package dataset

import (
	"fmt"

	"github.com/imamik/tpuprep/internal/config"
	"github.com/imamik/tpuprep/internal/platform/s3"
	"github.com/imamik/tpuprep/internal/provision"
)

// MirrorFetcher retrieves archives from an S3-compatible dataset mirror.
type MirrorFetcher struct {
	client *s3.Client
}

// NewMirrorFetcher creates a fetcher for the configured mirror bucket.
// Credentials are read from the environment.
func NewMirrorFetcher(mirror config.Mirror) (*MirrorFetcher, error) {
	accessKey, secretKey := config.MirrorCredentials()
	if accessKey == "" || secretKey == "" {
		return nil, fmt.Errorf("mirror credentials not set (%s, %s)",
			config.EnvMirrorAccessKey, config.EnvMirrorSecretKey)
	}

	client, err := s3.NewClient(mirror.Endpoint, mirror.Region, mirror.Bucket, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create mirror client: %w", err)
	}
	return &MirrorFetcher{client: client}, nil
}

// Fetch implements Fetcher.
func (f *MirrorFetcher) Fetch(ctx *provision.Context, archive, target string) error {
	body, err := f.client.GetObject(ctx, archive)
	if err != nil {
		return err
	}
	defer body.Close()

	return writeAtomic(target, body)
}
