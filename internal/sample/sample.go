// Package sample builds a small workbook laid out like the published
// outpatient activity summary. It backs cmd/mkfixture and the tests.
package sample

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet names and ranges of the two summary tables.
const (
	OutcomesSheet = "Outcomes"
	OutcomesRange = "B3:H8"
	AgeSexSheet   = "AgeSex"
	AgeSexRange   = "B3:E12"
)

// OutcomeRow is one year of the appointments-by-outcome table.
type OutcomeRow struct {
	Year           string
	Attendances    float64
	Missed         float64
	PatientCancel  float64
	HospitalCancel float64
	Unknown        float64
}

// Total is the published total column for the row.
func (r OutcomeRow) Total() float64 {
	return r.Attendances + r.Missed + r.PatientCancel + r.HospitalCancel + r.Unknown
}

// Outcomes are appointment counts in thousands.
var Outcomes = []OutcomeRow{
	{"2015-16", 85373, 7057, 6214, 7391, 170},
	{"2016-17", 87871, 7223, 6402, 7650, 162},
	{"2017-18", 89491, 7421, 6680, 7808, 133},
	{"2018-19", 93037, 7640, 6937, 8121, 118},
	{"2019-20", 92345, 7514, 7180, 8417, 97},
}

// AgeSexRow is one age band of the attendances-by-age-and-sex table.
type AgeSexRow struct {
	Age             string
	Male            float64
	Female          float64
	FemaleMaternity float64
}

// AgeSex are attendances in thousands.
var AgeSex = []AgeSexRow{
	{"0-4", 2110, 1725, 0},
	{"5-14", 2893, 2541, 0},
	{"15-24", 2204, 3218, 1402},
	{"25-34", 2689, 4377, 4115},
	{"35-44", 3312, 5024, 1388},
	{"45-54", 4783, 6311, 0},
	{"55-64", 5602, 6476, 0},
	{"65-74", 6914, 7088, 0},
	{"75+", 7412, 8671, 0},
}

// Workbook returns a new workbook holding both tables. The caller closes it.
func Workbook() (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", OutcomesSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AgeSexSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("new sheet: %w", err)
	}

	f.SetCellValue(OutcomesSheet, "A1", "Outpatient appointments by attendance type, thousands")
	if err := f.SetSheetRow(OutcomesSheet, "B3", &[]any{"Year", "Attendances", "Missed", "PatientCancel", "HospitalCancel", "Unknown", "Total"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("write outcomes header: %w", err)
	}
	for i, r := range Outcomes {
		cell, _ := excelize.CoordinatesToCellName(2, 4+i)
		row := []any{r.Year, r.Attendances, r.Missed, r.PatientCancel, r.HospitalCancel, r.Unknown, r.Total()}
		if err := f.SetSheetRow(OutcomesSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write outcomes row %s: %w", r.Year, err)
		}
	}
	f.SetCellValue(OutcomesSheet, "B10", "Source: Hospital Outpatient Activity")

	f.SetCellValue(AgeSexSheet, "A1", "Outpatient attendances by age and sex, thousands")
	if err := f.SetSheetRow(AgeSexSheet, "B3", &[]any{"Age", "Male", "Female", "FemaleMaternity"}); err != nil {
		f.Close()
		return nil, fmt.Errorf("write age/sex header: %w", err)
	}
	for i, r := range AgeSex {
		cell, _ := excelize.CoordinatesToCellName(2, 4+i)
		row := []any{r.Age, r.Male, r.Female, r.FemaleMaternity}
		if err := f.SetSheetRow(AgeSexSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write age/sex row %s: %w", r.Age, err)
		}
	}
	return f, nil
}

// Write saves the sample workbook to path.
func Write(path string) error {
	f, err := Workbook()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
