package converter

import (
	"context"

	"sauconv/aggregate"
	"sauconv/census"
	"sauconv/importer"
	"sauconv/internal/label"
)

const (
	sheetNational       = "FRANCE"
	sheetMetropolitan   = "FRMETRO"
	sheetRegions        = "REGION(avec DOM)"
	sheetDepartments    = "DEP"
	columnCode          = "code"
	columnName          = "name"
	columnRegionName    = "region_name"
	agresteURL          = "https://agreste.agriculture.gouv.fr/"
	ra2020DefaultOutput = "ra2020.json"
)

// RA2020 "tranches de SAU" workbook. Row 0 holds the sheet title, row 1 the
// column header.
var (
	nationalLayout = importer.Layout{
		Name:      "national",
		Sheet:     sheetNational,
		HeaderRow: 1,
		DataStart: 2,
		DataEnd:   8,
		Columns:   []string{aggregate.ColumnClass, aggregate.ColumnHoldings, aggregate.ColumnArea},
	}
	regionLayout = importer.Layout{
		Name:      "regions",
		Sheet:     sheetRegions,
		HeaderRow: 1,
		DataStart: 2,
		Columns:   []string{columnCode, columnName, aggregate.ColumnClass, aggregate.ColumnHoldings, aggregate.ColumnArea},
		KeyColumn: columnCode,
	}
	departmentLayout = importer.Layout{
		Name:      "departments",
		Sheet:     sheetDepartments,
		HeaderRow: 1,
		DataStart: 2,
		Columns:   []string{columnRegionName, columnCode, aggregate.ColumnClass, aggregate.ColumnHoldings, aggregate.ColumnArea},
		KeyColumn: columnCode,
	}
)

// ClassConverter converts the RA2020 size-class workbook.
type ClassConverter struct {
	national importer.Layout
}

func NewClassConverter(options Options) *ClassConverter {
	national := nationalLayout
	if options.Metropolitan {
		national.Sheet = sheetMetropolitan
	}
	return &ClassConverter{national: national}
}

func (c *ClassConverter) Name() string {
	return "ra2020"
}

func (c *ClassConverter) Description() string {
	return "Recensement Agricole 2020: holdings and SAU by farm-size class"
}

func (c *ClassConverter) DefaultOutput() string {
	return ra2020DefaultOutput
}

func (c *ClassConverter) Sheets() []string {
	return []string{c.national.Sheet, regionLayout.Sheet, departmentLayout.Sheet}
}

func (c *ClassConverter) Convert(ctx context.Context, path string) (*Result, error) {
	workbook, err := importer.OpenWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	nationalRecords, err := locate(ctx, workbook, c.national)
	if err != nil {
		return nil, err
	}
	regionRecords, err := locate(ctx, workbook, regionLayout)
	if err != nil {
		return nil, err
	}
	departmentRecords, err := locate(ctx, workbook, departmentLayout)
	if err != nil {
		return nil, err
	}

	regionEntities, err := aggregate.Breakdown(regionRecords, aggregate.CodeColumn(columnCode, columnName))
	if err != nil {
		return nil, err
	}
	departmentEntities, err := aggregate.Breakdown(departmentRecords, aggregate.CodeColumn(columnCode, columnRegionName))
	if err != nil {
		return nil, err
	}

	regions := make([]census.Region, 0, len(regionEntities))
	for _, entity := range regionEntities {
		regions = append(regions, census.Region{Code: entity.Code, Name: entity.Name, ByClass: entity.ByClass, Total: entity.Total})
	}
	departments := make([]census.Department, 0, len(departmentEntities))
	for _, entity := range departmentEntities {
		departments = append(departments, census.Department{Code: entity.Code, RegionName: entity.Name, ByClass: entity.ByClass, Total: entity.Total})
	}

	dataset := census.ClassDataset{
		Metadata: census.ClassMetadata{
			Source:      "Agreste - Recensement Agricole 2020",
			Description: "Nombre d'exploitations agricoles et SAU selon classe de SAU",
			URL:         agresteURL,
			SauClasses:  label.SizeClasses(),
			Indicators: census.Indicators{
				Holdings: "Nombre d'exploitations",
				Area:     "Superficie Agricole Utilisée (hectares)",
			},
		},
		National:    aggregate.National(nationalRecords),
		Regions:     regions,
		Departments: departments,
	}

	return &Result{Dataset: dataset, Summary: summarizeClasses(c.Name(), dataset)}, nil
}
