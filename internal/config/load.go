package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up in the current directory.
const DefaultConfigFile = "tpuprep.yaml"

// Environment variable overrides.
const (
	EnvDataDir         = "TPUPREP_DATA_DIR"
	EnvMirrorAccessKey = "TPUPREP_MIRROR_ACCESS_KEY"
	EnvMirrorSecretKey = "TPUPREP_MIRROR_SECRET_KEY"
)

// LoadFile reads and parses the configuration from a YAML file,
// fills defaults, applies environment overrides and validates.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Load resolves the configuration for a command invocation.
// An explicit path must exist; otherwise tpuprep.yaml is used when present,
// and the zero-config defaults apply when it is not.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}

	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadFile(DefaultConfigFile)
	}

	cfg := DefaultConfig()
	applyEnv(cfg)
	return cfg, nil
}

// applyEnv applies environment variable overrides.
func applyEnv(cfg *Config) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		cfg.Datasets.Dir = dir
	}
}

// MirrorCredentials reads the S3 mirror credentials from the environment.
func MirrorCredentials() (accessKey, secretKey string) {
	return os.Getenv(EnvMirrorAccessKey), os.Getenv(EnvMirrorSecretKey)
}
