package loader

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"github.com/gyeh/apptstats/internal/model"
	"github.com/gyeh/apptstats/internal/sample"
)

func openSample(t *testing.T) *Workbook {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	if err := sample.Write(path); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { wb.Close() })
	return wb
}

func TestReadRegion_Outcomes(t *testing.T) {
	wb := openSample(t)

	got, err := wb.ReadRegion(Region{Sheet: sample.OutcomesSheet, Range: sample.OutcomesRange})
	if err != nil {
		t.Fatalf("ReadRegion: %v", err)
	}

	want := model.WideTable{
		IDColumn: "Year",
		Columns:  []string{"Attendances", "Missed", "PatientCancel", "HospitalCancel", "Unknown", "Total"},
	}
	for _, r := range sample.Outcomes {
		want.Rows = append(want.Rows, model.WideRow{
			ID:     r.Year,
			Values: []float64{r.Attendances, r.Missed, r.PatientCancel, r.HospitalCancel, r.Unknown, r.Total()},
		})
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRegion_AgeSex(t *testing.T) {
	wb := openSample(t)

	got, err := wb.ReadRegion(Region{Sheet: sample.AgeSexSheet, Range: sample.AgeSexRange})
	if err != nil {
		t.Fatalf("ReadRegion: %v", err)
	}
	if got.IDColumn != "Age" {
		t.Errorf("IDColumn: got %q, want Age", got.IDColumn)
	}
	if len(got.Rows) != len(sample.AgeSex) {
		t.Fatalf("expected %d rows, got %d", len(sample.AgeSex), len(got.Rows))
	}
	if got.Rows[8].ID != "75+" || got.Rows[8].Values[1] != 8671 {
		t.Errorf("unexpected last row: %+v", got.Rows[8])
	}
}

func TestReadRegion_SkipsBlankRowsAndNormalizes(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	s := "Sheet1"
	f.SetCellValue(s, "A1", "Year")
	f.SetCellValue(s, "B1", "Patient\ncancellations")
	f.SetCellValue(s, "A2", 2017)
	f.SetCellValue(s, "B2", "1,250")
	f.SetCellValue(s, "A4", 2018)
	f.SetCellValue(s, "B4", 900)

	path := filepath.Join(t.TempDir(), "t.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	wb, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer wb.Close()

	got, err := wb.ReadRegion(Region{Sheet: s, Range: "A1:B5"})
	if err != nil {
		t.Fatalf("ReadRegion: %v", err)
	}
	want := model.WideTable{
		IDColumn: "Year",
		Columns:  []string{"Patient cancellations"},
		Rows: []model.WideRow{
			{ID: "2017", Values: []float64{1250}},
			{ID: "2018", Values: []float64{900}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestReadRegion_Errors(t *testing.T) {
	wb := openSample(t)

	tests := []struct {
		name     string
		region   Region
		wantCell string
	}{
		{"missing sheet", Region{Sheet: "Nope", Range: "B3:H8"}, ""},
		{"bad range", Region{Sheet: sample.OutcomesSheet, Range: "B3"}, ""},
		{"single column", Region{Sheet: sample.OutcomesSheet, Range: "B3:B8"}, ""},
		{"blank header", Region{Sheet: sample.OutcomesSheet, Range: "B3:I8"}, "I3"},
		{"blank id header", Region{Sheet: sample.OutcomesSheet, Range: "A3:H8"}, "A3"},
		{"footer in range", Region{Sheet: sample.OutcomesSheet, Range: "B3:H10"}, "C10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := wb.ReadRegion(tt.region)
			var re *RegionError
			if !errors.As(err, &re) {
				t.Fatalf("expected *RegionError, got %v", err)
			}
			if re.Cell != tt.wantCell {
				t.Errorf("cell: got %q, want %q (%v)", re.Cell, tt.wantCell, err)
			}
		})
	}
}

func TestSheets(t *testing.T) {
	wb := openSample(t)
	if diff := cmp.Diff([]string{sample.OutcomesSheet, sample.AgeSexSheet}, wb.Sheets()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
}
