package cmd

import (
	"github.com/spf13/cobra"

	"github.com/puchicavos/website/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize puchicavos configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure image hosting, the site directory and the dev server, and writes the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
