// Package dataset implements the benchmark dataset phases: data directory
// creation, archive download and archive extraction.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/imamik/tpuprep/internal/provision"
)

// Provisioner builds the dataset phases.
type Provisioner struct {
	fetcher Fetcher

	// force re-downloads archives that already exist on disk.
	force bool

	// dryRun describes the work instead of performing it, for plan mode.
	dryRun bool
}

// Option configures the dataset provisioner.
type Option func(*Provisioner)

// WithFetcher overrides the archive fetcher (e.g. an S3 mirror).
func WithFetcher(f Fetcher) Option {
	return func(p *Provisioner) { p.fetcher = f }
}

// WithForce re-downloads archives even when they already exist.
func WithForce(force bool) Option {
	return func(p *Provisioner) { p.force = force }
}

// WithDryRun reports planned work without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(p *Provisioner) { p.dryRun = dryRun }
}

// NewProvisioner creates a dataset provisioner. The default fetcher
// downloads over HTTP from the configured dataset host.
func NewProvisioner(opts ...Option) *Provisioner {
	p := &Provisioner{fetcher: NewHTTPFetcher()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phases returns the dataset phases in dependency order.
func (p *Provisioner) Phases() []provision.Phase {
	return []provision.Phase{
		&ensureDataDirPhase{dryRun: p.dryRun},
		&fetchDatasetsPhase{fetcher: p.fetcher, force: p.force, dryRun: p.dryRun},
		&extractDatasetsPhase{dryRun: p.dryRun},
	}
}

type ensureDataDirPhase struct {
	dryRun bool
}

func (*ensureDataDirPhase) Name() string { return "ensure-data-dir" }

func (ph *ensureDataDirPhase) Provision(ctx *provision.Context) error {
	dir := ctx.Config.Datasets.Dir

	if ph.dryRun {
		ctx.Observer.Printf("[%s] would create directory %s", ph.Name(), dir)
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("failed to resolve data directory: %w", err)
		}
		ctx.State.DataDir = abs
		return nil
	}

	if info, err := os.Stat(dir); err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		provision.LogArtifactExists(ctx.Observer, ph.Name(), dir)
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
		provision.LogArtifactCreated(ctx.Observer, ph.Name(), dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	ctx.State.DataDir = abs
	return nil
}

type fetchDatasetsPhase struct {
	fetcher Fetcher
	force   bool
	dryRun  bool
}

func (*fetchDatasetsPhase) Name() string { return "fetch-datasets" }

func (ph *fetchDatasetsPhase) Provision(ctx *provision.Context) error {
	datasets := ctx.Config.Datasets

	if ph.dryRun {
		for _, archive := range datasets.Archives {
			target := filepath.Join(datasets.Dir, archive)
			ctx.Observer.Printf("[%s] would download %s to %s", ph.Name(), archive, target)
			ctx.State.Downloaded = append(ctx.State.Downloaded, target)
		}
		return nil
	}

	for i, archive := range datasets.Archives {
		ctx.Observer.Progress(ph.Name(), i, len(datasets.Archives))
		target := filepath.Join(datasets.Dir, archive)

		if !ph.force {
			if _, err := os.Stat(target); err == nil {
				provision.LogArtifactExists(ctx.Observer, ph.Name(), target)
				ctx.State.Downloaded = append(ctx.State.Downloaded, target)
				continue
			}
		}

		if err := ph.fetcher.Fetch(ctx, archive, target); err != nil {
			return fmt.Errorf("failed to fetch %s: %w", archive, err)
		}

		provision.LogArtifactCreated(ctx.Observer, ph.Name(), target)
		ctx.State.Downloaded = append(ctx.State.Downloaded, target)
	}

	ctx.Observer.Progress(ph.Name(), len(datasets.Archives), len(datasets.Archives))
	return nil
}

type extractDatasetsPhase struct {
	dryRun bool
}

func (*extractDatasetsPhase) Name() string { return "extract-datasets" }

func (ph *extractDatasetsPhase) Provision(ctx *provision.Context) error {
	datasets := ctx.Config.Datasets

	if ph.dryRun {
		for _, archive := range datasets.Archives {
			ctx.Observer.Printf("[%s] would extract %s into %s", ph.Name(),
				filepath.Join(datasets.Dir, archive), datasets.Dir)
		}
		return nil
	}

	for _, archive := range datasets.Archives {
		source := filepath.Join(datasets.Dir, archive)

		extracted, err := ExtractZip(source, datasets.Dir)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", archive, err)
		}

		for _, path := range extracted {
			provision.LogArtifactCreated(ctx.Observer, ph.Name(), path)
		}
		ctx.State.Extracted = append(ctx.State.Extracted, extracted...)
	}

	return nil
}
