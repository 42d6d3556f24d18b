package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate checks the configuration for values the provisioner cannot act on.
func (c *Config) Validate() error {
	if c.Python == "" {
		return fmt.Errorf("python interpreter must not be empty")
	}
	if c.Pip == "" {
		return fmt.Errorf("pip binary must not be empty")
	}
	if c.Accelerator.Package == "" {
		return fmt.Errorf("accelerator.package must not be empty")
	}
	if err := validateURL("accelerator.index_url", c.Accelerator.IndexURL); err != nil {
		return err
	}

	for _, lib := range c.Libraries {
		if strings.TrimSpace(lib) == "" {
			return fmt.Errorf("libraries must not contain empty entries")
		}
	}

	if c.Datasets.Dir == "" {
		return fmt.Errorf("datasets.dir must not be empty")
	}
	if len(c.Datasets.Archives) == 0 {
		return fmt.Errorf("datasets.archives must not be empty")
	}
	for _, archive := range c.Datasets.Archives {
		if strings.ContainsAny(archive, "/\\") {
			return fmt.Errorf("datasets.archives entries must be bare file names, got %q", archive)
		}
	}
	if !c.Datasets.Mirror.Enabled() {
		if err := validateURL("datasets.base_url", c.Datasets.BaseURL); err != nil {
			return err
		}
	}
	if c.Datasets.Mirror.Enabled() && c.Datasets.Mirror.Endpoint == "" {
		return fmt.Errorf("datasets.mirror.endpoint is required when a mirror bucket is set")
	}

	if len(c.Remote.Hosts) > 0 {
		if c.Remote.User == "" {
			return fmt.Errorf("remote.user is required when remote hosts are configured")
		}
		if c.Remote.KeyFile == "" {
			return fmt.Errorf("remote.key_file is required when remote hosts are configured")
		}
	}

	return nil
}

func validateURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s must be an absolute URL, got %q", field, raw)
	}
	return nil
}
