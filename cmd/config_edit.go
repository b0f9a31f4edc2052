package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sauconv/config"
)

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the active config in an editor and check it.",
	Long: `Open the active sauconv config file in $VISUAL, then $EDITOR, then vi.

A missing config file is first created from the template covering every source.
When the editor exits, the settings are checked and every problem that would
break a conversion is listed, e.g. a series.last_year before series.first_year
or an output.format other than json, csv, excel or sqlite.`,
	Example: `
  # Edit active config
  sauconv config edit
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}
		return editConfig(cmd.OutOrStdout(), path, runEditor)
	},
}

// editConfig lets edit change the file at path, then reports the settings a
// conversion will use or every problem found in them.
func editConfig(w io.Writer, path string, edit func(path string) error) error {
	created, err := writeConfigTemplate(path, "")
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(w, "No config file found. Created example config at: %s\n", path)
	}

	if err := edit(path); err != nil {
		return fmt.Errorf("opening editor failed: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading edited config failed: %w", err)
	}
	cfg, err := config.ValidateYAMLContent(content)
	if err != nil {
		var problems *config.ProblemsError
		if errors.As(err, &problems) {
			fmt.Fprintf(w, "Config %s has %d problem(s):\n", path, len(problems.Problems))
			for _, problem := range problems.Problems {
				fmt.Fprintf(w, "   - %s\n", problem)
			}
		}
		return fmt.Errorf("config validation failed in %s: %w", path, err)
	}

	fmt.Fprintf(w, "Configuration saved and validated: %s\n", path)
	fmt.Fprintf(w, "   - SAA years: %d-%d\n", cfg.Series.FirstYear, cfg.Series.LastYear)
	fmt.Fprintf(w, "   - Outputs: ra2020 -> %s, saa -> %s\n", cfg.RA2020.Output, cfg.SAA.Output)
	return nil
}

func runEditor(path string) error {
	command := editorCommand(os.Getenv("VISUAL"), os.Getenv("EDITOR"), path)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	return command.Run()
}

// editorCommand splits the first non-blank editor setting into a command
// and appends path. vi is used when neither is set.
func editorCommand(visual, editor, path string) *exec.Cmd {
	fields := strings.Fields(visual)
	if len(fields) == 0 {
		fields = strings.Fields(editor)
	}
	if len(fields) == 0 {
		fields = []string{"vi"}
	}
	return exec.Command(fields[0], append(fields[1:], path)...)
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
