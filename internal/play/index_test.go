package play

import (
	"testing"

	"trivia-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexMapsAnswersAndAliases(t *testing.T) {
	idx := BuildIndex(teamsQuiz())

	id, ok := lookup(idx, "LAKERS")
	require.True(t, ok)
	assert.Equal(t, "i1", id)

	id, ok = lookup(idx, "celts")
	require.True(t, ok)
	assert.Equal(t, "i2", id)
	assert.Equal(t, "Celtics", idx.Answer(id))

	_, ok = lookup(idx, "knicks")
	assert.False(t, ok)
	assert.Equal(t, 3, idx.Len())
}

func TestBuildIndexIsDeterministic(t *testing.T) {
	quiz := teamsQuiz()
	assert.Equal(t, BuildIndex(quiz), BuildIndex(quiz))
}

func TestBuildIndexLastWriteWins(t *testing.T) {
	quiz := domain.Quiz{Items: []domain.QuizItem{
		{ID: "a", Answer: "Tim Duncan", Aliases: []string{"TD"}},
		{ID: "b", Answer: "Tony Parker", Aliases: []string{"td", "Tony Parker"}},
	}}
	idx := BuildIndex(quiz)

	id, ok := lookup(idx, "TD")
	require.True(t, ok)
	assert.Equal(t, "b", id)

	id, _ = lookup(idx, "tony parker")
	assert.Equal(t, "b", id)
}

func TestBuildIndexSkipsEmptyKeys(t *testing.T) {
	quiz := domain.Quiz{Items: []domain.QuizItem{
		{ID: "a", Answer: "!!!", Aliases: []string{"", "  ", "Real"}},
	}}
	idx := BuildIndex(quiz)

	assert.Equal(t, 1, idx.Len())
	_, ok := lookup(idx, "")
	assert.False(t, ok)
}

func teamsQuiz() domain.Quiz {
	return domain.Quiz{
		ID:           "quiz-1",
		Title:        "NBA Teams",
		TimeLimitSec: 60,
		Items: []domain.QuizItem{
			{ID: "i1", Answer: "Lakers"},
			{ID: "i2", Answer: "Celtics", Aliases: []string{"Celts"}},
		},
	}
}

func lookup(idx Index, raw string) (string, bool) {
	return idx.lookupKey(Normalize(raw))
}
