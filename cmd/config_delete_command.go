package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sauconv/config"
)

var configDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete the active configuration file.",
	Long: `Delete the configuration file currently selected by sauconv and show the
defaults conversions fall back to (output paths, SAA year window, format).

If no configuration file is active, the command returns an error.`,
	Example: `
  # Delete active config
  sauconv config delete

  # Delete config at a custom path
  sauconv --configFile ./custom-sauconv.yaml config delete
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteConfig(cmd.OutOrStdout(), viper.ConfigFileUsed())
	},
}

func deleteConfig(w io.Writer, path string) error {
	if path == "" {
		return fmt.Errorf("no configuration file found")
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("error deleting configuration file: %w", err)
	}
	fmt.Fprintf(w, "Configuration file deleted: %s\n", path)

	defaults, err := config.Defaults()
	if err != nil {
		return err
	}
	printConfig(w, "", defaults)
	return nil
}

func init() {
	configCmd.AddCommand(configDeleteCmd)
}
