package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/puchicavos/website/internal/images"
	"github.com/puchicavos/website/internal/pagesync"
)

// detectSiteDir returns the first well-known directory holding an index.html.
func detectSiteDir() string {
	for _, dir := range []string{"site", "public", "www", "."} {
		if _, err := os.Stat(dir + "/index.html"); err == nil {
			return dir
		}
	}
	return "site"
}

// RunWizard runs an interactive configuration wizard and saves the
// resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to puchicavos! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Image hosting.
	modePrompt := promptui.Select{
		Label: "Where are menu images hosted",
		Items: []string{
			"remote — image CDN (" + cfg.RemoteBaseURL + ")",
			"local  — self-hosted assets",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Mode = []images.Mode{images.ModeRemote, images.ModeLocal}[modeIdx]

	// 2. Local base URL.
	localPrompt := promptui.Prompt{
		Label:   "Base URL for self-hosted images",
		Default: cfg.LocalBaseURL,
	}
	if cfg.LocalBaseURL, err = localPrompt.Run(); err != nil {
		return nil, fmt.Errorf("local base url: %w", err)
	}

	// 3. Site directory.
	sitePrompt := promptui.Prompt{
		Label:   "Directory containing the site pages",
		Default: detectSiteDir(),
	}
	if cfg.SiteDir, err = sitePrompt.Run(); err != nil {
		return nil, fmt.Errorf("site dir: %w", err)
	}

	// 4. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the rendered site",
		Default: cfg.OutputDir,
	}
	if cfg.OutputDir, err = outputPrompt.Run(); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 5. Markup binding.
	bindingPrompt := promptui.Select{
		Label: "How do menu images name their slot",
		Items: []string{
			"explicit   — data-image-slot attributes",
			"positional — Nth .menu-category, Nth .item-image",
			"both       — attributes first, position for the rest",
		},
	}
	bindingIdx, _, err := bindingPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("binding selection: %w", err)
	}
	cfg.Binding = string([]pagesync.Binding{pagesync.BindExplicit, pagesync.BindPositional, pagesync.BindBoth}[bindingIdx])

	// 6. Extra exclude patterns.
	excludePrompt := promptui.Prompt{
		Label:   "Extra exclude patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	excludeStr, err := excludePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	if excludeStr != "" {
		cfg.Exclude = append(append([]string(nil), DefaultExcludes...), splitAndTrim(excludeStr)...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
