package model

// AgeSexRecord is one (age band, sex, maternity) cell of the age/sex table.
// Pct is relative to the grand total over all records, not to a per-band total.
type AgeSexRecord struct {
	AgeBand   string  `parquet:"age_band"`
	Sex       string  `parquet:"sex"`
	Maternity bool    `parquet:"maternity"`
	Count     float64 `parquet:"count"`
	Pct       float64 `parquet:"pct"`
}
