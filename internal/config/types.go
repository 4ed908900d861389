package config

import "github.com/puchicavos/website/internal/images"

// Config is the top-level puchicavos configuration, corresponding to .puchicavos.yml.
type Config struct {
	Mode          images.Mode `yaml:"mode" koanf:"mode"`
	RemoteBaseURL string      `yaml:"remote_base_url" koanf:"remote_base_url"`
	LocalBaseURL  string      `yaml:"local_base_url" koanf:"local_base_url"`
	CatalogFile   string      `yaml:"catalog_file" koanf:"catalog_file"`
	SiteDir       string      `yaml:"site_dir" koanf:"site_dir"`
	OutputDir     string      `yaml:"output_dir" koanf:"output_dir"`
	Port          int         `yaml:"port" koanf:"port"`
	Binding       string      `yaml:"binding" koanf:"binding"`
	Placeholder   string      `yaml:"placeholder" koanf:"placeholder"`
	Include       []string    `yaml:"include" koanf:"include"`
	Exclude       []string    `yaml:"exclude" koanf:"exclude"`
	CORSAllowAll  bool        `yaml:"cors_allow_all" koanf:"cors_allow_all"`
}

// BaseURLs returns the configured remote and local image prefixes.
func (c *Config) BaseURLs() images.BaseURLs {
	return images.BaseURLs{Remote: c.RemoteBaseURL, Local: c.LocalBaseURL}
}
