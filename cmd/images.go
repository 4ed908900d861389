package cmd

import (
	"fmt"
	"io"
	"os"

	fcolor "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/puchicavos/website/internal/images"
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "Inspect and export the image catalog",
}

var imagesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every image slot with its resolved URL and alt text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registryFromFlags(cmd)
		if err != nil {
			return err
		}
		printImageList(cmd.OutOrStdout(), reg)
		return nil
	},
}

var imagesURLCmd = &cobra.Command{
	Use:   "url <slot>",
	Short: "Print the resolved URL for a slot, e.g. menu.desserts.item2",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := lookupSlot(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.URL)
		return nil
	},
}

var imagesAltCmd = &cobra.Command{
	Use:   "alt <slot>",
	Short: "Print the alt text for a slot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := lookupSlot(cmd, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.AltText)
		return nil
	},
}

var imagesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as CSV or an Excel workbook",
	Long: `Writes every slot with its resolved URL, alt text and both filenames.
The format is taken from --format, or from the --out extension.`,
	Args: cobra.NoArgs,
	RunE: runImagesExport,
}

func init() {
	imagesCmd.PersistentFlags().String("mode", "", "image mode: remote or local (overrides config)")
	imagesExportCmd.Flags().String("format", "", "export format: csv or xlsx")
	imagesExportCmd.Flags().String("out", "", "output file (defaults to stdout, csv only)")

	imagesCmd.AddCommand(imagesListCmd, imagesURLCmd, imagesAltCmd, imagesExportCmd)
	rootCmd.AddCommand(imagesCmd)
}

func registryFromFlags(cmd *cobra.Command) (*images.Registry, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	mode, _ := cmd.Flags().GetString("mode")
	return buildRegistry(cfg, mode)
}

func lookupSlot(cmd *cobra.Command, raw string) (images.Resolution, error) {
	slot, err := images.ParseSlot(raw)
	if err != nil {
		return images.Resolution{}, err
	}
	reg, err := registryFromFlags(cmd)
	if err != nil {
		return images.Resolution{}, err
	}
	res, ok := reg.Lookup(slot)
	if !ok {
		return images.Resolution{}, fmt.Errorf("no image for slot %s", slot)
	}
	return res, nil
}

func printImageList(w io.Writer, reg *images.Registry) {
	bold := fcolor.New(fcolor.Bold)
	found := fcolor.New(fcolor.FgGreen)
	missing := fcolor.New(fcolor.FgRed)

	bold.Fprintf(w, "%s images from %s\n", reg.Mode(), reg.BaseURL())
	for _, res := range reg.All() {
		fmt.Fprintf(w, "  %-26s", res.Slot)
		if res.URL == "" {
			missing.Fprintln(w, " (no file for this mode)")
			continue
		}
		found.Fprintf(w, " %s\n", res.URL)
		if res.AltText != "" {
			fmt.Fprintf(w, "  %-26s %q\n", "", res.AltText)
		}
	}
}

func runImagesExport(cmd *cobra.Command, args []string) error {
	reg, err := registryFromFlags(cmd)
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("out")
	formatFlag, _ := cmd.Flags().GetString("format")

	var format images.ExportFormat
	switch {
	case formatFlag != "":
		format = images.ExportFormat(formatFlag)
	case outPath != "":
		if format, err = images.FormatFromPath(outPath); err != nil {
			return err
		}
	default:
		format = images.FormatCSV
	}

	if outPath == "" {
		if format == images.FormatXLSX {
			return fmt.Errorf("xlsx export needs --out")
		}
		return images.Export(cmd.OutOrStdout(), reg, format)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outPath, err)
	}
	if err := images.Export(f, reg, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d images to %s\n", len(reg.Slots()), outPath)
	return nil
}
