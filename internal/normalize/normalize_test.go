package normalize

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHeader(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Attendances", "Attendances"},
		{"  Patient\ncancellations ", "Patient cancellations"},
		{"Did  not\tattend", "Did not attend"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Header(tt.input); got != tt.expected {
			t.Errorf("Header(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2017", "2017"},
		{"2017.0", "2017"},
		{" 2015-16 ", "2015-16"},
		{"0.0", "0"},
		{"15.5", "15.5"},
		{"Age .0", "Age .0"},
	}
	for _, tt := range tests {
		if got := Label(tt.input); got != tt.expected {
			t.Errorf("Label(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestCount(t *testing.T) {
	tests := []struct {
		input   string
		want    float64
		wantErr bool
	}{
		{"123", 123, false},
		{"1,234,567", 1234567, false},
		{" 42.5 ", 42.5, false},
		{"", 0, true},
		{"*", 0, true},
		{"n/a", 0, true},
	}
	for _, tt := range tests {
		got, err := Count(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Count(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Count(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := FileHash(path)
	if err != nil {
		t.Fatalf("FileHash: %v", err)
	}
	want := "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got != want {
		t.Errorf("FileHash = %s, want %s", got, want)
	}

	if _, err := FileHash(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing file")
	}
}
