package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/puchicavos/website/internal/config"
	"github.com/puchicavos/website/internal/images"
	"github.com/puchicavos/website/internal/logging"
	"github.com/puchicavos/website/internal/pagesync"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `puchicavos init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger returns the command logger writing to stderr.
func newLogger() *logrus.Logger {
	return logging.New(os.Stderr, verbose)
}

// buildRegistry creates the image registry from the configured catalog,
// base URLs and mode. modeOverride, when set, replaces the configured mode.
func buildRegistry(cfg *config.Config, modeOverride string) (*images.Registry, error) {
	mode := cfg.Mode
	if modeOverride != "" {
		m, err := images.ParseMode(modeOverride)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	catalog := images.DefaultCatalog()
	if cfg.CatalogFile != "" {
		c, err := images.LoadCatalog(cfg.CatalogFile)
		if err != nil {
			return nil, err
		}
		catalog = c
	}
	return images.New(catalog, cfg.BaseURLs(), mode), nil
}

// buildSynchronizer creates a page synchronizer over reg using the
// configured binding and placeholder.
func buildSynchronizer(cfg *config.Config, reg *images.Registry, logger logrus.FieldLogger) (*pagesync.Synchronizer, error) {
	binding, err := pagesync.ParseBinding(cfg.Binding)
	if err != nil {
		return nil, err
	}
	return pagesync.New(reg, pagesync.Options{
		Binding:     binding,
		Placeholder: cfg.Placeholder,
		Logger:      logger,
	}), nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		cmd = exec.Command("open", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	_ = cmd.Start()
}
