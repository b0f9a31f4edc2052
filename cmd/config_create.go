package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"sauconv/config"
	"sauconv/converter"
	"sauconv/importer"
)

var configCreateSource string

var configCreateCmd = &cobra.Command{
	Use:   "create [input_path]",
	Short: "Write a configuration template for a census source.",
	Long: `Write a configuration file holding the settings of one source.

The source comes from --source, or is detected from the sheets of input_path.
Without either, the template covers ra2020 and saa.
An existing configuration file is never overwritten.`,
	Example: `
  # Template for both sources at $HOME/.sauconv.yaml
  sauconv config create

  # Template with the SAA year window only
  sauconv config create --source saa

  # Template for whatever source this workbook is
  sauconv config create RA2020_001_TranchesSAU.xlsx
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cfgFile, viper.ConfigFileUsed())
		if err != nil {
			return err
		}

		inputPath := ""
		if len(args) == 1 {
			inputPath = args[0]
		}
		source, err := templateSource(configCreateSource, inputPath)
		if err != nil {
			return err
		}
		return createConfig(cmd.OutOrStdout(), path, source)
	},
}

// templateSource picks the source whose settings go into a new config file:
// the flag, then the source detected from the workbook, else every source.
func templateSource(flagValue, inputPath string) (string, error) {
	if strings.TrimSpace(flagValue) != "" {
		conv, err := converter.ByName(flagValue, converter.DefaultOptions())
		if err != nil {
			return "", err
		}
		return conv.Name(), nil
	}
	if strings.TrimSpace(inputPath) == "" {
		return "", nil
	}

	workbook, err := importer.OpenWorkbook(inputPath)
	if err != nil {
		return "", err
	}
	defer workbook.Close()

	conv, err := converter.Detect(workbook.SheetNames(), converter.DefaultOptions())
	if err != nil {
		return "", fmt.Errorf("detect source of %s: %w", inputPath, err)
	}
	return conv.Name(), nil
}

func createConfig(w io.Writer, path, source string) error {
	created, err := writeConfigTemplate(path, source)
	if err != nil {
		return err
	}
	if !created {
		fmt.Fprintf(w, "Config file already exists at: %s\n", path)
		return nil
	}

	sources := source
	if sources == "" {
		sources = strings.Join(converter.SupportedNames(), ", ")
	}
	fmt.Fprintf(w, "New config file for %s created at: %s\n", sources, path)
	return nil
}

// writeConfigTemplate writes the source template to path unless a file is
// already there. It reports whether the file was written.
func writeConfigTemplate(path, source string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("checking config file failed: %w", err)
	}

	template, err := config.TemplateYAML(source)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory failed: %w", err)
	}
	if err := os.WriteFile(path, []byte(template), 0o600); err != nil {
		return false, fmt.Errorf("writing config template failed: %w", err)
	}
	return true, nil
}

// configFilePath resolves the file the config commands work on: the
// --configFile flag, the file viper loaded, then $HOME/.sauconv.yaml.
func configFilePath(configFileFlag, configFileUsed string) (string, error) {
	if strings.TrimSpace(configFileFlag) != "" {
		return configFileFlag, nil
	}
	if strings.TrimSpace(configFileUsed) != "" {
		return configFileUsed, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".sauconv.yaml"), nil
}

func init() {
	configCmd.AddCommand(configCreateCmd)

	configCreateCmd.Flags().StringVarP(&configCreateSource, "source", "s", "", "Source whose settings the template holds: "+strings.Join(converter.SupportedNames(), "|"))
}
