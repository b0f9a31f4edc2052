package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"sauconv/converter"
	"sauconv/importer"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input_path>",
	Short: "List the sheets of a workbook and the matching source",
	Long: `Print every sheet of a workbook with its row count and the converter whose
sheets are all present. Useful to check a new source edition before converting.`,
	Example: `
  # Show sheets of the RA2020 workbook
  sauconv inspect RA2020_001_TranchesSAU.xlsx
`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspectWorkbook(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func inspectWorkbook(w io.Writer, path string) error {
	workbook, err := importer.OpenWorkbook(path)
	if err != nil {
		return err
	}
	defer workbook.Close()

	names := workbook.SheetNames()
	fmt.Fprintf(w, "Workbook: %s\n", path)
	for _, name := range names {
		grid, err := workbook.Sheet(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "   - %s: %d rows\n", name, len(grid))
	}

	conv, err := converter.Detect(names, converter.DefaultOptions())
	if err != nil {
		fmt.Fprintln(w, "Source: unknown")
		return nil
	}
	fmt.Fprintf(w, "Source: %s (%s), default output %s\n", conv.Name(), conv.Description(), conv.DefaultOutput())
	return nil
}
