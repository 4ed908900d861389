package config

import (
	"github.com/puchicavos/website/internal/images"
	"github.com/puchicavos/website/internal/pagesync"
)

// DefaultExcludes are glob patterns never copied into the rendered site.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"**/.DS_Store",
	"*.swp",
	".puchicavos.yml",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	base := images.DefaultBaseURLs()
	return &Config{
		Mode:          images.ModeRemote,
		RemoteBaseURL: base.Remote,
		LocalBaseURL:  base.Local,
		SiteDir:       "site",
		OutputDir:     "dist",
		Port:          8080,
		Binding:       string(pagesync.BindExplicit),
		Include:       []string{"**"},
		Exclude:       DefaultExcludes,
	}
}
