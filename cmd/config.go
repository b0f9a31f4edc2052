package cmd

import "github.com/spf13/cobra"

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage sauconv configuration file values.",
	Long: `Create, edit, display, and delete the sauconv configuration file.

The configuration stores defaults applied to every conversion:
- output.format / output.indent
- series.first_year / series.last_year
- ra2020.output / ra2020.metropolitan
- saa.output

Every key can also be set through the environment, e.g. SAUCONV_OUTPUT_FORMAT=csv.`,
	Example: `
  # Create default config in $HOME/.sauconv.yaml
  sauconv config create

  # Show active config and source file
  sauconv config show

  # Open active config in editor (creates example if missing)
  sauconv config edit

  # Delete active config file
  sauconv config delete
`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
