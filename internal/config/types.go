// Package config defines the tpuprep configuration model, defaults,
// loading and validation.
package config

// Config is the full tpuprep configuration.
// Every field has a default; a missing config file yields DefaultConfig().
type Config struct {
	// Python is the python interpreter used to resolve the environment.
	Python string `yaml:"python"`

	// Pip is the package manager binary driven by the install phases.
	Pip string `yaml:"pip"`

	// Sudo runs package removal and installation with elevated privileges,
	// matching TPU VM images where the runtime environment is system-wide.
	// Defaults to enabled when unset.
	Sudo *bool `yaml:"sudo,omitempty"`

	Accelerator Accelerator `yaml:"accelerator"`

	// Libraries is the fixed auxiliary set installed after the accelerator
	// build: optimizer, distributed execution, neural net, experiment
	// logging, remote exec and utility packages.
	Libraries []string `yaml:"libraries"`

	Datasets Datasets `yaml:"datasets"`

	Remote Remote `yaml:"remote"`

	TPU TPU `yaml:"tpu"`

	// PrerequisitesCheckEnabled controls the host tool check before apply.
	// Defaults to enabled when unset.
	PrerequisitesCheckEnabled *bool `yaml:"prerequisites_check_enabled,omitempty"`
}

// SudoEnabled reports whether install phases run under sudo.
func (c *Config) SudoEnabled() bool {
	return c.Sudo == nil || *c.Sudo
}

// PrerequisitesEnabled reports whether the host tool check runs before apply.
func (c *Config) PrerequisitesEnabled() bool {
	return c.PrerequisitesCheckEnabled == nil || *c.PrerequisitesCheckEnabled
}

// Accelerator pins the accelerator-specific numerical library.
type Accelerator struct {
	// Package is the pip requirement name, including extras.
	Package string `yaml:"package"`

	// Version is the exact pinned version.
	Version string `yaml:"version"`

	// IndexURL is the find-links index hosting the accelerator wheels.
	IndexURL string `yaml:"index_url"`
}

// Requirement returns the pinned pip requirement string.
func (a Accelerator) Requirement() string {
	if a.Version == "" {
		return a.Package
	}
	return a.Package + "==" + a.Version
}

// Datasets describes the benchmark archives fetched into the data directory.
type Datasets struct {
	// Dir is the local data directory.
	Dir string `yaml:"dir"`

	// BaseURL is the dataset host serving the archives.
	BaseURL string `yaml:"base_url"`

	// Archives are the archive file names fetched from BaseURL.
	Archives []string `yaml:"archives"`

	// Mirror optionally serves the archives from an S3-compatible bucket
	// instead of BaseURL.
	Mirror Mirror `yaml:"mirror,omitempty"`
}

// Mirror is an optional S3-compatible dataset mirror.
// Credentials come from TPUPREP_MIRROR_ACCESS_KEY / TPUPREP_MIRROR_SECRET_KEY.
type Mirror struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Bucket   string `yaml:"bucket,omitempty"`
}

// Enabled reports whether a mirror is configured.
func (m Mirror) Enabled() bool {
	return m.Bucket != ""
}

// Remote configures SSH execution of the phase sequence on TPU hosts.
type Remote struct {
	User    string   `yaml:"user,omitempty"`
	KeyFile string   `yaml:"key_file,omitempty"`
	Hosts   []string `yaml:"hosts,omitempty"`
}

// TPU configures TPU node management through the Cloud TPU API.
type TPU struct {
	Zone            string `yaml:"zone"`
	AcceleratorType string `yaml:"accelerator_type"`
	RuntimeVersion  string `yaml:"runtime_version"`
	Preemptible     bool   `yaml:"preemptible"`
}
