// mkfixture writes a small workbook laid out like the published outpatient
// activity summary, for local runs and tests.
// Usage: go run ./cmd/mkfixture --out testdata/hosp-outp-act-sample.xlsx
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gyeh/apptstats/internal/loader"
	"github.com/gyeh/apptstats/internal/sample"
)

func main() {
	out := flag.String("out", "testdata/hosp-outp-act-sample.xlsx", "output workbook")
	check := flag.Bool("check", false, "read the written workbook back and print its tables")
	flag.Parse()

	if err := sample.Write(*out); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *out)

	if !*check {
		return
	}

	wb, err := loader.Open(*out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(1)
	}
	defer wb.Close()

	for _, r := range []loader.Region{
		{Sheet: sample.OutcomesSheet, Range: sample.OutcomesRange},
		{Sheet: sample.AgeSexSheet, Range: sample.AgeSexRange},
	} {
		t, err := wb.ReadRegion(r)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", r.Sheet, err)
			os.Exit(1)
		}
		fmt.Printf("\n%s!%s: %s + %v\n", r.Sheet, r.Range, t.IDColumn, t.Columns)
		for _, row := range t.Rows {
			fmt.Printf("  %-8s %v\n", row.ID, row.Values)
		}
	}
}
