package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "puchicavos",
	Short: "Render and serve the Puchicavos restaurant website",
	Long: `Puchicavos renders the restaurant website from its site directory,
filling every hero and menu image from the image catalog. Images can be
served from the remote CDN or from local files, and the same pages can be
served live for development.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".puchicavos.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

