package migrations

import _ "embed"

//go:embed 0002_create_plays.sql
var createPlaysSQL string

func init() {
	Migrations.MustRegister(sqlSteps(createPlaysSQL, "plays"))
}
