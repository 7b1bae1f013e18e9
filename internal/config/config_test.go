package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromFile_Valid(t *testing.T) {
	path := writeConfig(t, `
source_url: https://example.org/hosp-outp-act.xlsx
datasets:
  - name: outcomes
    sheet: Summary 1
    range: A5:G12
    id_column: Year
    merge:
      - target: Cancelled
        sources: [Patient cancellations, Hospital cancellations]
    rename: {Attendances: Attended}
    percentage: {base: group, denominator: Total}
    drop: [Total]
    order: [Unknown, Missed, Cancelled, Attended]
style:
  title: Appointments
  palette:
    Attended: "#000000"
`)

	c := Default()
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Source != "https://example.org/hosp-outp-act.xlsx" {
		t.Errorf("Source: got %q", c.Source)
	}
	if len(c.Datasets) != 1 {
		t.Fatalf("expected 1 dataset, got %d", len(c.Datasets))
	}
	d := c.Datasets[0]
	if d.Sheet != "Summary 1" || d.Range != "A5:G12" {
		t.Errorf("region: got %+v", d.Region)
	}
	if len(d.Merge) != 1 || d.Merge[0].Sources[1] != "Hospital cancellations" {
		t.Errorf("merge: got %+v", d.Merge)
	}
	r := d.Recipe()
	if r.Base != "group" || r.Denominator != "Total" || r.Rename["Attendances"] != "Attended" {
		t.Errorf("recipe: got %+v", r)
	}

	// style keys override the defaults one by one
	if c.Style.Title != "Appointments" || c.Style.Palette["Attended"] != "#000000" {
		t.Errorf("style override not applied: %+v", c.Style)
	}
	if c.Style.Palette["Missed"] != "#DA291C" || c.Style.Width != 10 {
		t.Errorf("style defaults lost: %+v", c.Style)
	}
}

func TestLoadFromFile_SourceFlagWins(t *testing.T) {
	path := writeConfig(t, "source_url: https://example.org/a.xlsx\n")
	c := Default()
	c.Source = "local.xlsx"
	if err := c.LoadFromFile(path); err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if c.Source != "local.xlsx" {
		t.Errorf("Source: got %q, want local.xlsx", c.Source)
	}
	if len(c.Datasets) != 2 {
		t.Errorf("built-in datasets should be kept, got %d", len(c.Datasets))
	}
}

func TestLoadFromFile_InvalidDatasets(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing denominator", "datasets:\n  - {name: a, sheet: S, range: 'A1:B2', id_column: Y, percentage: {base: group}}\n"},
		{"unknown base", "datasets:\n  - {name: a, sheet: S, range: 'A1:B2', id_column: Y, percentage: {base: median}}\n"},
		{"global with denominator", "datasets:\n  - {name: a, sheet: S, range: 'A1:B2', id_column: Y, percentage: {base: global, denominator: Total}}\n"},
		{"no id column", "datasets:\n  - {name: a, sheet: S, range: 'A1:B2', percentage: {base: global}}\n"},
		{"duplicate name", "datasets:\n  - {name: a, sheet: S, range: 'A1:B2', id_column: Y, percentage: {base: global}}\n  - {name: a, sheet: S, range: 'A1:B2', id_column: Y, percentage: {base: global}}\n"},
		{"bad yaml", "datasets: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			if err := c.LoadFromFile(writeConfig(t, tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	c := Default()
	if err := c.LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	c := Default()
	if err := c.Validate(); err == nil {
		t.Error("expected error without source")
	}

	c.Source = "book.xlsx"
	if err := c.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := c.ValidateWithDSN(); err == nil {
		t.Error("expected error without DSN")
	}

	c.ChartFormat = "gif"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unsupported chart format")
	}

	c = Default()
	c.Source = "book.xlsx"
	c.Style.Palette = map[string]string{"Attended": "navy"}
	if err := c.Validate(); err == nil {
		t.Error("expected error for bad palette color")
	}
}
