package migrations

import _ "embed"

//go:embed 0001_create_quizzes.sql
var createQuizzesSQL string

func init() {
	Migrations.MustRegister(sqlSteps(createQuizzesSQL, "quiz_items", "quizzes"))
}
