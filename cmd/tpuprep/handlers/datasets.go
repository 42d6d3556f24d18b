package handlers

import (
	"context"
	"fmt"

	"github.com/imamik/tpuprep/internal/provision"
	"github.com/imamik/tpuprep/internal/provision/dataset"
)

// Datasets runs only the dataset phases: directory creation, download
// and extraction. Archives already on disk are kept unless force is set.
func Datasets(ctx context.Context, configPath string, force bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	opts := []dataset.Option{dataset.WithForce(force)}
	if cfg.Datasets.Mirror.Enabled() {
		fetcher, err := newMirrorFetcher(cfg.Datasets.Mirror)
		if err != nil {
			return fmt.Errorf("failed to configure dataset mirror: %w", err)
		}
		opts = append(opts, dataset.WithFetcher(fetcher))
	}

	pipeline := provision.NewPipeline(dataset.NewProvisioner(opts...).Phases()...)
	pctx := provision.NewContext(ctx, cfg, newRunner())

	if err := pipeline.Run(pctx); err != nil {
		return err
	}

	fmt.Printf("\nDatasets ready in %s\n", pctx.State.DataDir)
	return nil
}
