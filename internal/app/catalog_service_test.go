package app_test

import (
	"context"
	"testing"
	"time"

	"trivia-service/internal/app"
	"trivia-service/internal/domain"
	"trivia-service/internal/infra/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalog() (*app.CatalogService, *memory.QuizStore, *memory.QuizRepository, *memory.ResultStore) {
	store := memory.NewQuizStore()
	cache := memory.NewQuizRepository(store, time.Hour)
	results := memory.NewResultStore()
	return app.NewCatalogService(store, cache, results, nil), store, cache, results
}

func draftQuiz() domain.Quiz {
	return domain.Quiz{
		Title: "  Big cities ",
		Items: []domain.QuizItem{
			{Answer: "Paris"},
			{Answer: "paris "},
			{Answer: "Tokyo"},
			{Answer: "Lima"},
		},
	}
}

func TestSaveQuizPreparesAndValidates(t *testing.T) {
	ctx := context.Background()
	catalog, store, _, _ := newCatalog()

	saved, err := catalog.SaveQuiz(ctx, draftQuiz())
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "Big cities", saved.Title)
	assert.Equal(t, domain.DifficultyNormal, saved.Difficulty)
	assert.Equal(t, 240, saved.TimeLimitSec)
	assert.Len(t, saved.Items, 3)

	loaded, err := store.LoadQuiz(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.Items, loaded.Items)

	bad := draftQuiz()
	bad.Items = bad.Items[:2]
	_, err = catalog.SaveQuiz(ctx, bad)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveQuizKeepsCreatedAtAndRefreshesCache(t *testing.T) {
	ctx := context.Background()
	catalog, _, cache, _ := newCatalog()

	saved, err := catalog.SaveQuiz(ctx, draftQuiz())
	require.NoError(t, err)

	cached, err := cache.GetQuiz(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Big cities", cached.Title)

	saved.Title = "Capitals"
	updated, err := catalog.SaveQuiz(ctx, saved)
	require.NoError(t, err)
	assert.True(t, updated.CreatedAt.Equal(saved.CreatedAt))

	cached, err = cache.GetQuiz(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Capitals", cached.Title)
}

func TestImportBulkAppendsItems(t *testing.T) {
	ctx := context.Background()
	catalog, _, _, _ := newCatalog()

	saved, err := catalog.SaveQuiz(ctx, draftQuiz())
	require.NoError(t, err)

	updated, err := catalog.ImportBulk(ctx, saved.ID, "Egypt | Cairo\nItaly | Rome | Roma\nTokyo\n")
	require.NoError(t, err)
	require.Len(t, updated.Items, 5)
	assert.Equal(t, "Cairo", updated.Items[3].Answer)
	assert.Equal(t, []string{"Roma"}, updated.Items[4].Aliases)

	_, err = catalog.ImportBulk(ctx, saved.ID, "   \n")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = catalog.ImportBulk(ctx, "missing", "A | B")
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
}

func TestDeleteQuizDropsCache(t *testing.T) {
	ctx := context.Background()
	catalog, _, cache, _ := newCatalog()

	saved, err := catalog.SaveQuiz(ctx, draftQuiz())
	require.NoError(t, err)
	_, err = cache.GetQuiz(ctx, saved.ID)
	require.NoError(t, err)

	require.NoError(t, catalog.DeleteQuiz(ctx, saved.ID))
	_, err = cache.GetQuiz(ctx, saved.ID)
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)
	assert.ErrorIs(t, catalog.DeleteQuiz(ctx, saved.ID), domain.ErrQuizNotFound)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	ctx := context.Background()
	catalog, _, _, _ := newCatalog()

	n, err := catalog.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = catalog.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	quizzes, err := catalog.ListQuizzes(ctx)
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)
}

func TestPlayHistory(t *testing.T) {
	ctx := context.Background()
	catalog, _, _, results := newCatalog()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, results.AddPlay(ctx, domain.PlayResult{ID: "p1", QuizID: "q1", EndedAt: base}))
	require.NoError(t, results.AddPlay(ctx, domain.PlayResult{ID: "p2", QuizID: "q1", EndedAt: base.Add(time.Minute)}))

	plays, err := catalog.ListPlays(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, plays, 2)
	assert.Equal(t, "p2", plays[0].ID)

	got, err := catalog.GetPlay(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "q1", got.QuizID)

	_, err = catalog.GetPlay(ctx, "p9")
	assert.ErrorIs(t, err, domain.ErrPlayNotFound)
}

func TestSaveQuizGivesRepeatedItemIDsFreshOnes(t *testing.T) {
	ctx := context.Background()
	catalog, _, cache, results := newCatalog()

	saved, err := catalog.SaveQuiz(ctx, domain.Quiz{
		Title: "Capitals",
		Items: []domain.QuizItem{
			{ID: "x", Answer: "Paris"},
			{ID: "x", Answer: "Tokyo"},
			{ID: "y", Answer: "Lima"},
		},
	})
	require.NoError(t, err)
	require.Len(t, saved.Items, 3)
	assert.Equal(t, "x", saved.Items[0].ID)
	assert.NotEqual(t, "x", saved.Items[1].ID)
	assert.Equal(t, "y", saved.Items[2].ID)

	service := app.NewPlayService(memory.NewSessionStore(0), cache, app.NewResultSink(nil, results))
	view, err := service.Start(ctx, saved.ID, "")
	require.NoError(t, err)

	var reply app.SubmitReply
	for _, answer := range []string{"paris", "tokyo", "lima"} {
		reply, err = service.Submit(ctx, view.SessionID, answer)
		require.NoError(t, err)
		require.NotNil(t, reply.Outcome, answer)
		assert.Equal(t, "hit", reply.Outcome.Kind.String(), answer)
	}

	require.NotNil(t, reply.Result)
	assert.Equal(t, domain.EndComplete, reply.Result.EndedReason)
	assert.Equal(t, 100, reply.Result.ScorePct)
	assert.Equal(t, 3, reply.Result.FoundCount)
	assert.ElementsMatch(t, []string{saved.Items[0].ID, saved.Items[1].ID, "y"}, reply.Result.FoundIDs)
	assert.Empty(t, reply.Result.MissedAnswers)
}
