package model

import "time"

// DatasetSummary captures metrics for one dataset within a run.
type DatasetSummary struct {
	Name        string
	RowsWide    int
	RowsLong    int
	RowsAgeSex  int
	ChartPath   string
	HTMLPath    string
	ParquetPath string
	Duration    time.Duration
}

// RunSummary captures metrics from a single pipeline run.
type RunSummary struct {
	RunID           string
	SourcePath      string
	SourceSHA256    string
	Datasets        []DatasetSummary
	RowsPublished   int64
	DurationFetch   time.Duration
	DurationPublish time.Duration
	DurationTotal   time.Duration
}
