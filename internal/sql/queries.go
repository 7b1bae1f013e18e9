package sql

import (
	"embed"
)

//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/delete_runs_by_source.sql
var DeleteRunsBySource string

//go:embed queries/insert_run.sql
var InsertRun string

//go:embed queries/count_published.sql
var CountPublished string
