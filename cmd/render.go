package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/puchicavos/website/internal/progress"
	"github.com/puchicavos/website/internal/site"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the site with every image slot filled",
	Long: `Renders every HTML and markdown page in the site directory into the
output directory, filling hero and menu images from the catalog, and
copies all other files. An images-manifest.json is written alongside.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("output", "", "override output directory")
	renderCmd.Flags().String("mode", "", "image mode: remote or local (overrides config)")
	renderCmd.Flags().Bool("strict", false, "fail when a page references a slot missing from the catalog")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	mode, _ := cmd.Flags().GetString("mode")
	reg, err := buildRegistry(cfg, mode)
	if err != nil {
		return err
	}
	sync, err := buildSynchronizer(cfg, reg, logger)
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}
	if _, err := os.Stat(cfg.SiteDir); os.IsNotExist(err) {
		return fmt.Errorf("site directory not found at %s\nSet site_dir in %s", cfg.SiteDir, cfgFile)
	}

	gen := site.NewGenerator(cfg.SiteDir, outputDir, sync)
	gen.Include = cfg.Include
	gen.Exclude = cfg.Exclude
	gen.Logger = logger
	gen.Reporter = progress.NewReporter()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := gen.Generate(ctx)
	if err != nil {
		return fmt.Errorf("rendering site: %w", err)
	}

	fmt.Printf("Site rendered: %s (%d pages, %d files copied, %s images)\n",
		outputDir, summary.Pages, summary.Copied, reg.Mode())

	strict, _ := cmd.Flags().GetBool("strict")
	if strict && len(summary.Missing) > 0 {
		return fmt.Errorf("%d image slot(s) missing from the catalog: %s",
			len(summary.Missing), strings.Join(summary.Missing, ", "))
	}
	return nil
}
