package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"sauconv/config"
	"sauconv/converter"
	"sauconv/importer"
	"sauconv/output"
)

var (
	convertSource       string
	convertFormat       string
	convertMetropolitan bool
	convertFirstYear    int
	convertLastYear     int
)

var convertCmd = &cobra.Command{
	Use:   "convert <input_path> [output_path]",
	Short: "Convert one Agreste workbook into one dataset file",
	Long: `Read one source workbook, normalize size classes and geographic codes,
aggregate the metrics and write one dataset file.

Sources:
- ra2020: sheets FRANCE (or FRMETRO with --metro), REGION(avec DOM), DEP
- saa:    sheet TER, rows "28 - SURFACE AGRICOLE UTILISÉE DES EXPLOITATIONS"

When --source is omitted, the source is detected from the workbook sheet names.
When output_path is omitted, the configured default of the source is used
(ra2020.json or sau_by_department_year.json).
Rows whose count or area is not numeric are skipped; a department label without
the " - " separator aborts the run.`,
	Example: `
  # Convert the RA2020 size-class workbook into ./ra2020.json
  sauconv convert RA2020_001_TranchesSAU.xlsx

  # Convert the SAA workbook for 2020-2024 into a custom path
  sauconv convert SAA_2010-2024_definitives_donnees_departementales.xlsx ./sau.json --source saa --from 2020 --to 2024

  # Write metropolitan RA2020 figures as an Excel workbook
  sauconv convert RA2020_001_TranchesSAU.xlsx ./ra2020.xlsx --metro
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadAndValidate()
		if err != nil {
			return err
		}

		options := converter.Options{
			FirstYear:    cfg.Series.FirstYear,
			LastYear:     cfg.Series.LastYear,
			Metropolitan: convertMetropolitan || cfg.RA2020.Metropolitan,
		}
		if cmd.Flags().Changed("from") {
			options.FirstYear = convertFirstYear
		}
		if cmd.Flags().Changed("to") {
			options.LastYear = convertLastYear
		}

		conv, err := resolveConverter(convertSource, args[0], options)
		if err != nil {
			return err
		}

		outputPath := cfg.OutputFor(conv.Name())
		if outputPath == "" {
			outputPath = conv.DefaultOutput()
		}
		if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
			outputPath = args[1]
		}

		return runConversion(cmd.Context(), cmd.OutOrStdout(), conv, args[0], outputPath, resolveOutputFormat(convertFormat, cfg.Output.Format, outputPath), cfg.Output.Indent)
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&convertSource, "source", "s", "", "Source workbook kind: ra2020|saa (optional, detected from sheet names)")
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "", "Output format: "+strings.Join(output.SupportedFormats(), "|")+" (default: output extension, then output.format from config, then json)")
	convertCmd.Flags().BoolVar(&convertMetropolitan, "metro", false, "ra2020: read national figures from the FRMETRO sheet")
	convertCmd.Flags().IntVar(&convertFirstYear, "from", converter.DefaultFirstYear, "saa: first year of the series (inclusive)")
	convertCmd.Flags().IntVar(&convertLastYear, "to", converter.DefaultLastYear, "saa: last year of the series (inclusive)")
}

// runConversion executes one converter: load, convert, write, summarize.
func runConversion(ctx context.Context, w io.Writer, conv converter.Converter, inputPath, outputPath, format string, indent int) error {
	writer, err := output.WriterForFormat(format, output.Options{Indent: indent})
	if err != nil {
		return err
	}

	slog.Debug("converting", "converter", conv.Name(), "input", inputPath, "output", outputPath, "format", format)
	result, err := conv.Convert(ctx, inputPath)
	if err != nil {
		return fmt.Errorf("convert %s: %w", inputPath, err)
	}

	if err := writer.Write(outputPath, result.Dataset); err != nil {
		return err
	}
	slog.Debug("wrote dataset", "output", outputPath)

	printSummary(w, result.Summary, outputPath, format)
	return nil
}

func resolveConverter(source, inputPath string, options converter.Options) (converter.Converter, error) {
	if strings.TrimSpace(source) != "" {
		return converter.ByName(source, options)
	}

	workbook, err := importer.OpenWorkbook(inputPath)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	conv, err := converter.Detect(workbook.SheetNames(), options)
	if err != nil {
		return nil, fmt.Errorf("detect source of %s: %w", inputPath, err)
	}
	slog.Debug("detected source", "converter", conv.Name(), "input", inputPath)
	return conv, nil
}

// resolveOutputFormat prefers the flag, then a known output extension, then
// the configured format, then json.
func resolveOutputFormat(flagValue, configValue, outputPath string) string {
	if value := strings.TrimSpace(flagValue); value != "" {
		return value
	}
	if format, ok := output.FormatFromExtension(outputPath); ok {
		return format
	}
	if value := strings.TrimSpace(configValue); value != "" {
		return value
	}
	return output.DetectFormat(outputPath)
}

// summaryPrinter groups thousands in the printed counts (416,054).
var summaryPrinter = message.NewPrinter(language.English)

func printSummary(w io.Writer, summary converter.Summary, outputPath, format string) {
	fmt.Fprintf(w, "Conversion completed (%s).\n", summary.Converter)
	if summary.NationalHoldings != nil {
		summaryPrinter.Fprintf(w, "   - National: %d exploitations\n", *summary.NationalHoldings)
	}
	for _, count := range summary.Counts {
		fmt.Fprintf(w, "   - %s: %d\n", count.Label, count.Value)
	}
	if area := summary.Area; area.N > 0 {
		fmt.Fprintf(w, "   - %s: n=%d sum=%.2f mean=%.2f median=%.2f min=%.2f max=%.2f\n",
			area.Label, area.N, area.Sum, area.Mean, area.Median, area.Min, area.Max)
	}
	fmt.Fprintf(w, "   - Output: %s (%s)\n", outputPath, format)
}
