package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sauconv/config"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active configuration values.",
	Long: `Display the currently loaded configuration and the resolved config file path.

This command validates the configuration before printing values.
Defaults are shown when no config file is in use.`,
	Example: `
  # Show active configuration
  sauconv config show
`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Invalid config:", err)
			return
		}
		printConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), cfg)
	},
}

func printConfig(w io.Writer, configPath string, cfg *config.Config) {
	if configPath != "" {
		fmt.Fprintln(w, "Config file loaded from:", configPath)
	} else {
		fmt.Fprintln(w, "No config file in use, showing defaults.")
	}
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "%s: %q\n", config.KeyOutputFormat, cfg.Output.Format)
	fmt.Fprintf(w, "%s: %d\n", config.KeyOutputIndent, cfg.Output.Indent)
	fmt.Fprintf(w, "%s: %d\n", config.KeySeriesFirstYear, cfg.Series.FirstYear)
	fmt.Fprintf(w, "%s: %d\n", config.KeySeriesLastYear, cfg.Series.LastYear)
	fmt.Fprintf(w, "%s: %s\n", config.KeyRA2020Output, cfg.RA2020.Output)
	fmt.Fprintf(w, "%s: %t\n", config.KeyRA2020Metropolitan, cfg.RA2020.Metropolitan)
	fmt.Fprintf(w, "%s: %s\n", config.KeySAAOutput, cfg.SAA.Output)
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
