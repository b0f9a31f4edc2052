package config

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyOutputFormat       = "output.format"
	KeyOutputIndent       = "output.indent"
	KeySeriesFirstYear    = "series.first_year"
	KeySeriesLastYear     = "series.last_year"
	KeyRA2020Output       = "ra2020.output"
	KeyRA2020Metropolitan = "ra2020.metropolitan"
	KeySAAOutput          = "saa.output"

	EnvPrefix = "SAUCONV"
)

type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Series SeriesConfig `mapstructure:"series"`
	RA2020 RA2020Config `mapstructure:"ra2020"`
	SAA    SAAConfig    `mapstructure:"saa"`
}

type OutputConfig struct {
	// Format is empty when it should be inferred from the output extension.
	Format string `mapstructure:"format" validate:"omitempty,oneof=json csv excel sqlite"`
	Indent int    `mapstructure:"indent" validate:"gte=1,lte=8"`
}

type SeriesConfig struct {
	FirstYear int `mapstructure:"first_year" validate:"gte=2010"`
	LastYear  int `mapstructure:"last_year" validate:"gtefield=FirstYear"`
}

type RA2020Config struct {
	Output       string `mapstructure:"output" validate:"required"`
	Metropolitan bool   `mapstructure:"metropolitan"`
}

type SAAConfig struct {
	Output string `mapstructure:"output" validate:"required"`
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// Defaults returns the configuration in effect when no file or environment
// variable sets a key.
func Defaults() (*Config, error) {
	local := viper.New()
	setDefaults(local)
	return loadAndValidateFromViper(local)
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the configuration template covering every source.
func ExampleYAML() string {
	template, _ := TemplateYAML("")
	return template
}

// TemplateYAML returns the configuration template for one source (ra2020 or
// saa). An empty source yields the template covering both.
func TemplateYAML(source string) (string, error) {
	var sections []string
	switch source {
	case "":
		sections = []string{outputSection, seriesSection, ra2020Section, saaSection}
	case "ra2020":
		sections = []string{outputSection, ra2020Section}
	case "saa":
		sections = []string{outputSection, seriesSection, saaSection}
	default:
		return "", fmt.Errorf("no configuration template for source %q", source)
	}

	header := "# sauconv configuration\n"
	if source != "" {
		header = fmt.Sprintf("# sauconv configuration (source: %s)\n", source)
	}
	return header + strings.Join(sections, "\n"), nil
}

const (
	outputSection = `output:
  # json | csv | excel | sqlite, used when the output path has no known extension
  format: ""
  indent: 2
`
	seriesSection = `series:
  # SAA year columns SURF_<year>, inclusive
  first_year: 2016
  last_year: 2024
`
	ra2020Section = `ra2020:
  output: "ra2020.json"
  # read national figures from FRMETRO instead of FRANCE
  metropolitan: false
`
	saaSection = `saa:
  output: "sau_by_department_year.json"
`
)

// ProblemsError lists every invalid setting of one configuration.
type ProblemsError struct {
	Problems []string
}

func (e *ProblemsError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			return nil, &ProblemsError{Problems: describeProblems(cfg, fieldErrors)}
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return &cfg, nil
}

func describeProblems(cfg Config, fieldErrors validator.ValidationErrors) []string {
	problems := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		var problem string
		switch fieldError.StructNamespace() {
		case "Config.Output.Format":
			problem = fmt.Sprintf("%s %q is not one of json, csv, excel, sqlite", KeyOutputFormat, cfg.Output.Format)
		case "Config.Output.Indent":
			problem = fmt.Sprintf("%s %d must be between 1 and 8", KeyOutputIndent, cfg.Output.Indent)
		case "Config.Series.FirstYear":
			problem = fmt.Sprintf("%s %d is before 2010, the first SAA year", KeySeriesFirstYear, cfg.Series.FirstYear)
		case "Config.Series.LastYear":
			problem = fmt.Sprintf("%s %d is before %s %d", KeySeriesLastYear, cfg.Series.LastYear, KeySeriesFirstYear, cfg.Series.FirstYear)
		case "Config.RA2020.Output":
			problem = fmt.Sprintf("%s must name an output file", KeyRA2020Output)
		case "Config.SAA.Output":
			problem = fmt.Sprintf("%s must name an output file", KeySAAOutput)
		default:
			problem = fmt.Sprintf("%s fails %q", fieldError.Namespace(), fieldError.Tag())
		}
		problems = append(problems, problem)
	}
	return problems
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyOutputFormat, "")
	v.SetDefault(KeyOutputIndent, 2)
	v.SetDefault(KeySeriesFirstYear, 2016)
	v.SetDefault(KeySeriesLastYear, 2024)
	v.SetDefault(KeyRA2020Output, "ra2020.json")
	v.SetDefault(KeyRA2020Metropolitan, false)
	v.SetDefault(KeySAAOutput, "sau_by_department_year.json")
}

// OutputFor returns the configured default output path of a converter, or
// an empty string when the converter has none.
func (c Config) OutputFor(converterName string) string {
	switch converterName {
	case "ra2020":
		return c.RA2020.Output
	case "saa":
		return c.SAA.Output
	default:
		return ""
	}
}
