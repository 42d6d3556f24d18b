package config

// Default values for the zero-config path. These reproduce the canonical
// TPU VM setup: pinned jax TPU build plus the swarm training toolchain,
// and the Hutter Prize benchmark archives.
const (
	DefaultPython = "python3"
	DefaultPip    = "pip"

	DefaultAcceleratorPackage  = "jax[tpu]"
	DefaultAcceleratorVersion  = "0.2.16"
	DefaultAcceleratorIndexURL = "https://storage.googleapis.com/jax-releases/libtpu_releases.html"

	DefaultDataDir        = "data"
	DefaultDatasetBaseURL = "http://mattmahoney.net/dc"
	DefaultTPUZone        = "us-central1-f"
	DefaultTPUAccelerator = "v2-8"
	DefaultTPURuntime     = "tpu-vm-tf-2.12.0"
)

// DefaultLibraries returns the fixed auxiliary library set.
func DefaultLibraries() []string {
	return []string{"optax", "ray", "dm-haiku", "wandb", "fabric", "einops"}
}

// DefaultArchives returns the benchmark archives fetched by default.
func DefaultArchives() []string {
	return []string{"enwik8.zip", "enwik9.zip"}
}

// DefaultConfig returns the complete default configuration.
func DefaultConfig() *Config {
	return &Config{
		Python: DefaultPython,
		Pip:    DefaultPip,
		Accelerator: Accelerator{
			Package:  DefaultAcceleratorPackage,
			Version:  DefaultAcceleratorVersion,
			IndexURL: DefaultAcceleratorIndexURL,
		},
		Libraries: DefaultLibraries(),
		Datasets: Datasets{
			Dir:      DefaultDataDir,
			BaseURL:  DefaultDatasetBaseURL,
			Archives: DefaultArchives(),
		},
		TPU: TPU{
			Zone:            DefaultTPUZone,
			AcceleratorType: DefaultTPUAccelerator,
			RuntimeVersion:  DefaultTPURuntime,
			Preemptible:     true,
		},
	}
}

// applyDefaults fills omitted fields on a loaded config.
func applyDefaults(cfg *Config) {
	if cfg.Python == "" {
		cfg.Python = DefaultPython
	}
	if cfg.Pip == "" {
		cfg.Pip = DefaultPip
	}
	if cfg.Accelerator.Package == "" {
		cfg.Accelerator.Package = DefaultAcceleratorPackage
	}
	if cfg.Accelerator.Version == "" {
		cfg.Accelerator.Version = DefaultAcceleratorVersion
	}
	if cfg.Accelerator.IndexURL == "" {
		cfg.Accelerator.IndexURL = DefaultAcceleratorIndexURL
	}
	if len(cfg.Libraries) == 0 {
		cfg.Libraries = DefaultLibraries()
	}
	if cfg.Datasets.Dir == "" {
		cfg.Datasets.Dir = DefaultDataDir
	}
	if cfg.Datasets.BaseURL == "" {
		cfg.Datasets.BaseURL = DefaultDatasetBaseURL
	}
	if len(cfg.Datasets.Archives) == 0 {
		cfg.Datasets.Archives = DefaultArchives()
	}
	if cfg.TPU.Zone == "" {
		cfg.TPU.Zone = DefaultTPUZone
	}
	if cfg.TPU.AcceleratorType == "" {
		cfg.TPU.AcceleratorType = DefaultTPUAccelerator
	}
	if cfg.TPU.RuntimeVersion == "" {
		cfg.TPU.RuntimeVersion = DefaultTPURuntime
	}
}
