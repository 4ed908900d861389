package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/puchicavos/website/internal/images"
	"github.com/puchicavos/website/internal/pagesync"
)

// EnvPrefix prefixes environment overrides, e.g. PUCHICAVOS_MODE=local.
const EnvPrefix = "PUCHICAVOS_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PUCHICAVOS_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if _, err := images.ParseMode(string(c.Mode)); err != nil {
		return err
	}
	if _, err := pagesync.ParseBinding(c.Binding); err != nil {
		return err
	}

	if c.RemoteBaseURL == "" {
		return fmt.Errorf("remote_base_url is required")
	}
	if u, err := url.Parse(c.RemoteBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid remote_base_url %q: must be an absolute URL", c.RemoteBaseURL)
	}
	if c.LocalBaseURL == "" {
		return fmt.Errorf("local_base_url is required")
	}
	if _, err := url.Parse(c.LocalBaseURL); err != nil {
		return fmt.Errorf("invalid local_base_url %q: %w", c.LocalBaseURL, err)
	}

	if c.SiteDir == "" {
		return fmt.Errorf("site_dir is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	if filepath.Clean(c.SiteDir) == filepath.Clean(c.OutputDir) {
		return fmt.Errorf("output_dir must differ from site_dir")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	return nil
}
