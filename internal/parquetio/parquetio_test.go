package parquetio

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gyeh/apptstats/internal/model"
)

func TestWriteLong_ReadLong(t *testing.T) {
	want := model.LongTable{
		GroupColumn: "Year",
		HasPct:      true,
		Order:       []string{"Unknown", "Missed", "Cancelled", "Attended"},
		Records: []model.LongRecord{
			{Group: "2016", Category: "Attended", Count: 80, Pct: 80},
			{Group: "2016", Category: "Missed", Count: 10, Pct: 10},
			{Group: "2016", Category: "Cancelled", Count: 9, Pct: 9},
			{Group: "2016", Category: "Unknown", Count: 1, Pct: 1},
		},
	}
	path := filepath.Join(t.TempDir(), "outcomes.parquet")
	if err := WriteLong(path, "outcomes", want); err != nil {
		t.Fatalf("WriteLong: %v", err)
	}

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if r.NumRows() != 4 {
		t.Errorf("NumRows: got %d, want 4", r.NumRows())
	}
	if r.Dataset() != "outcomes" {
		t.Errorf("Dataset: got %q, want outcomes", r.Dataset())
	}
	r.Close()

	got, err := ReadLong(path)
	if err != nil {
		t.Fatalf("ReadLong: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteLong_Unordered(t *testing.T) {
	l := model.LongTable{
		GroupColumn: "Age",
		HasPct:      true,
		Records:     []model.LongRecord{{Group: "0-4", Category: "Male", Count: 1, Pct: 100}},
	}
	path := filepath.Join(t.TempDir(), "age.parquet")
	if err := WriteLong(path, "age_sex", l); err != nil {
		t.Fatalf("WriteLong: %v", err)
	}
	got, err := ReadLong(path)
	if err != nil {
		t.Fatalf("ReadLong: %v", err)
	}
	if len(got.Order) != 0 {
		t.Errorf("expected no order, got %v", got.Order)
	}
}

func TestWriteAgeSex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "age_sex_records.parquet")
	recs := []model.AgeSexRecord{{AgeBand: "15-24", Sex: "Female", Maternity: true, Count: 5, Pct: 50}}
	if err := WriteAgeSex(path, "age_sex", recs); err != nil {
		t.Fatalf("WriteAgeSex: %v", err)
	}
}

func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadLong_KeepsEmptyLevelsAndCountOnly(t *testing.T) {
	want := model.LongTable{
		GroupColumn: "Year",
		HasPct:      false,
		Order:       []string{"Unknown", "Missed", "Attended"},
		Records: []model.LongRecord{
			{Group: "2016", Category: "Attended", Count: 80},
			{Group: "2016", Category: "Missed", Count: 10},
		},
	}
	path := filepath.Join(t.TempDir(), "outcomes.parquet")
	if err := WriteLong(path, "outcomes", want); err != nil {
		t.Fatalf("WriteLong: %v", err)
	}

	got, err := ReadLong(path)
	if err != nil {
		t.Fatalf("ReadLong: %v", err)
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}
