package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsvs/backend/internal/domain/exam"
	"github.com/tsvs/backend/internal/domain/shared"
)

type examFixture struct {
	categories *GormCategoryRepository
	types      *GormTypeSelectionRepository
	questions  *GormQuestionRepository
	category   *exam.Category
	typeSel    *exam.TypeSelection
}

func newExamFixture(t *testing.T) *examFixture {
	t.Helper()
	ctx := context.Background()
	db := newTestDB(t)

	f := &examFixture{
		categories: NewGormCategoryRepository(db),
		types:      NewGormTypeSelectionRepository(db),
		questions:  NewGormQuestionRepository(db),
	}

	var err error
	f.category, err = exam.NewCategory("Math")
	require.NoError(t, err)
	require.NoError(t, f.categories.Create(ctx, f.category))

	f.typeSel, err = exam.NewTypeSelection("Single choice")
	require.NoError(t, err)
	require.NoError(t, f.types.Create(ctx, f.typeSel))

	return f
}

func (f *examFixture) newQuestion(t *testing.T, title string) *exam.Question {
	t.Helper()
	q, err := exam.NewQuestion(title, f.category.ID, f.typeSel.ID, []exam.AnswerInput{
		{Text: "3"},
		{Text: "4", IsCorrect: true},
	})
	require.NoError(t, err)
	require.NoError(t, f.questions.Create(context.Background(), q))
	return q
}

func TestGormCategoryRepository(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture(t)

	t.Run("title is unique", func(t *testing.T) {
		dup, err := exam.NewCategory("Math")
		require.NoError(t, err)
		assert.ErrorIs(t, f.categories.Create(ctx, dup), shared.ErrAlreadyExists)

		exists, err := f.categories.ExistsByTitle(ctx, "Math", uuid.Nil)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = f.categories.ExistsByTitle(ctx, "Math", f.category.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("rename persists", func(t *testing.T) {
		require.NoError(t, f.category.Rename("Algebra"))
		require.NoError(t, f.categories.Update(ctx, f.category))

		found, err := f.categories.FindByID(ctx, f.category.ID)
		require.NoError(t, err)
		assert.Equal(t, "Algebra", found.Title)
	})

	t.Run("referenced category cannot be deleted", func(t *testing.T) {
		f.newQuestion(t, "2 + 2")
		err := f.categories.Delete(ctx, f.category.ID)
		assert.Equal(t, "INVALID_REFERENCE", shared.CodeOf(err))

		_, err = f.categories.FindByID(ctx, f.category.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown category delete is not found", func(t *testing.T) {
		assert.ErrorIs(t, f.categories.Delete(ctx, uuid.New()), shared.ErrNotFound)
	})
}

func TestGormTypeSelectionRepository(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture(t)

	other, err := exam.NewTypeSelection("Multiple choice")
	require.NoError(t, err)
	require.NoError(t, f.types.Create(ctx, other))

	all, err := f.types.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Multiple choice", all[0].Title)

	require.NoError(t, f.types.Delete(ctx, other.ID))
	_, err = f.types.FindByID(ctx, other.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	f.newQuestion(t, "3 + 3")
	err = f.types.Delete(ctx, f.typeSel.ID)
	assert.Equal(t, "INVALID_REFERENCE", shared.CodeOf(err))
	_, err = f.types.FindByID(ctx, f.typeSel.ID)
	assert.NoError(t, err)
}

func TestGormQuestionRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture(t)
	q := f.newQuestion(t, "2 + 2 = ?")

	found, err := f.questions.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Title, found.Title)
	require.Len(t, found.Answers, 2)
	assert.True(t, found.IsAnsweredCorrectly([]uuid.UUID{q.Answers[1].ID}))

	t.Run("unknown category is rejected", func(t *testing.T) {
		bad, err := exam.NewQuestion("Q", uuid.New(), f.typeSel.ID, nil)
		require.NoError(t, err)
		err = f.questions.Create(ctx, bad)
		assert.Equal(t, "INVALID_REFERENCE", shared.CodeOf(err))
	})

	t.Run("find by ids skips unknown", func(t *testing.T) {
		list, err := f.questions.FindByIDs(ctx, []uuid.UUID{q.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Len(t, list[0].Answers, 2)

		empty, err := f.questions.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("filters by category", func(t *testing.T) {
		other := uuid.New()
		list, err := f.questions.FindAll(ctx, exam.QuestionFilter{CategoryID: &other})
		require.NoError(t, err)
		assert.Empty(t, list)

		list, err = f.questions.FindAll(ctx, exam.QuestionFilter{CategoryID: &f.category.ID})
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}

func TestGormQuestionRepository_Save(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture(t)
	q := f.newQuestion(t, "2 + 2 = ?")

	stored, err := f.questions.FindByID(ctx, q.ID)
	require.NoError(t, err)
	keep := stored.Answers[1]

	diff, err := stored.Update("2 + 2 equals", f.category.ID, f.typeSel.ID, []exam.AnswerInput{
		{ID: &keep.ID, Text: "four", IsCorrect: true},
		{Text: "22"},
	})
	require.NoError(t, err)
	require.NoError(t, f.questions.Save(ctx, stored, diff))

	reloaded, err := f.questions.FindByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "2 + 2 equals", reloaded.Title)
	require.Len(t, reloaded.Answers, 2)

	texts := []string{reloaded.Answers[0].Text, reloaded.Answers[1].Text}
	assert.ElementsMatch(t, []string{"four", "22"}, texts)

	_, err = f.questions.FindAnswer(ctx, q.ID, q.Answers[0].ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormQuestionRepository_Answers(t *testing.T) {
	ctx := context.Background()
	f := newExamFixture(t)
	q := f.newQuestion(t, "2 + 2 = ?")

	a, err := q.NewAnswer("5", false)
	require.NoError(t, err)
	require.NoError(t, f.questions.CreateAnswer(ctx, a))

	answers, err := f.questions.FindAnswers(ctx, q.ID)
	require.NoError(t, err)
	assert.Len(t, answers, 3)

	a.Text = "five"
	require.NoError(t, f.questions.UpdateAnswer(ctx, a))
	found, err := f.questions.FindAnswer(ctx, q.ID, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "five", found.Text)

	t.Run("answer of another question is not found", func(t *testing.T) {
		_, err := f.questions.FindAnswer(ctx, uuid.New(), a.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.ErrorIs(t, f.questions.DeleteAnswer(ctx, uuid.New(), a.ID), shared.ErrNotFound)
	})

	require.NoError(t, f.questions.DeleteAnswer(ctx, q.ID, a.ID))

	t.Run("delete question removes answers", func(t *testing.T) {
		require.NoError(t, f.questions.Delete(ctx, q.ID))
		answers, err := f.questions.FindAnswers(ctx, q.ID)
		require.NoError(t, err)
		assert.Empty(t, answers)
		assert.ErrorIs(t, f.questions.Delete(ctx, q.ID), shared.ErrNotFound)
	})
}
