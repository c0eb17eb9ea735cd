package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Title:   "Como usar goroutines em Go?",
		Content: "Quero entender como funcionam as goroutines na prática.",
		Tags:    []string{" Go ", "concorrencia", "go"},
	}
}

func TestCreateQuestion_Defaults(t *testing.T) {
	rec := newCountingRecorder()
	store := newTestStore(WithRecorder(rec))

	q, err := store.CreateQuestion(validDraft(), maria)
	require.NoError(t, err)

	assert.Equal(t, int64(7), q.ID)
	assert.Equal(t, "Maria Silva", q.Author)
	assert.Equal(t, RoleStudent, q.AuthorRole)
	assert.Equal(t, []string{"go", "concorrencia"}, q.Tags)
	assert.Zero(t, q.Likes)
	assert.Zero(t, q.Answers)
	assert.False(t, q.IsResolved)
	assert.Equal(t, day(testNow), q.CreatedAt)
	assert.Equal(t, day(testNow), q.LastActivity)

	all := store.Questions()
	require.Len(t, all, 7)
	assert.Equal(t, int64(7), all[0].ID, "new questions are prepended")
	assert.Equal(t, 1, rec.questions)

	next, err := store.CreateQuestion(validDraft(), carlos)
	require.NoError(t, err)
	assert.Equal(t, int64(8), next.ID)
}

func TestCreateQuestion_ValidationFailureSavesNothing(t *testing.T) {
	store := newTestStore()

	_, err := store.CreateQuestion(Draft{Title: "curto", Content: "pouco texto"}, maria)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Título deve ter pelo menos 10 caracteres", verr.Fields["title"])
	assert.Equal(t, "Descrição deve ter pelo menos 20 caracteres", verr.Fields["content"])
	assert.Equal(t, "Adicione pelo menos uma tag", verr.Fields["tags"])
	assert.Len(t, store.Questions(), 6)
}

func TestCreateQuestion_KeepsAngleBracketText(t *testing.T) {
	store := newTestStore()
	d := Draft{
		Title:   "  Como usar List<String> em Java?  ",
		Content: "Tenho um ArrayList<Integer> e quero saber a diferença entre <div> e <span>?",
		Tags:    []string{"java"},
	}

	q, err := store.CreateQuestion(d, maria)
	require.NoError(t, err)

	assert.Equal(t, "Como usar List<String> em Java?", q.Title)
	assert.Equal(t, "Tenho um ArrayList<Integer> e quero saber a diferença entre <div> e <span>?", q.Content)

	cfg := DefaultFilter()
	cfg.SearchTerm = "list<string>"
	assert.Equal(t, []int64{q.ID}, ids(store.Visible(cfg)))
}

func TestCreateQuestion_ValidatesSubmittedText(t *testing.T) {
	store := newTestStore()
	d := validDraft()
	d.Title = "<template> vs <slot>?"

	q, err := store.CreateQuestion(d, maria)
	require.NoError(t, err)
	assert.Equal(t, "<template> vs <slot>?", q.Title)
}

func TestAddComment_KeepsAngleBracketText(t *testing.T) {
	store := newTestStore()

	c, err := store.AddComment(3, "Use List<String> e não <T> cru.", carlos)
	require.NoError(t, err)
	assert.Equal(t, "Use List<String> e não <T> cru.", c.Content)

	comments, err := store.Comments(3)
	require.NoError(t, err)
	assert.Equal(t, "Use List<String> e não <T> cru.", comments[len(comments)-1].Content)
}

func TestToggleLikeQuestion_IsSymmetric(t *testing.T) {
	store := newTestStore()
	likes := NewLikeSet()

	q, err := store.ToggleLikeQuestion(1, likes)
	require.NoError(t, err)
	assert.Equal(t, 16, q.Likes)
	assert.True(t, likes.LikesQuestion(1))

	q, err = store.ToggleLikeQuestion(1, likes)
	require.NoError(t, err)
	assert.Equal(t, 15, q.Likes)
	assert.False(t, likes.LikesQuestion(1))
	assert.Zero(t, likes.Len())
}

func TestToggleLikeQuestion_SeparateViewersShareTheCounter(t *testing.T) {
	store := newTestStore()
	alice, bob := NewLikeSet(), NewLikeSet()

	_, err := store.ToggleLikeQuestion(4, alice)
	require.NoError(t, err)
	q, err := store.ToggleLikeQuestion(4, bob)
	require.NoError(t, err)

	assert.Equal(t, 20, q.Likes)
}

func TestToggleLikeComment_IsSymmetric(t *testing.T) {
	store := newTestStore()
	likes := NewLikeSet()

	c, err := store.ToggleLikeComment(1, 2, likes)
	require.NoError(t, err)
	assert.Equal(t, 9, c.Likes)
	assert.True(t, likes.LikesComment(1, 2))
	assert.False(t, likes.LikesComment(2, 2), "comment ids are scoped to their question")

	c, err = store.ToggleLikeComment(1, 2, likes)
	require.NoError(t, err)
	assert.Equal(t, 8, c.Likes)
	assert.Zero(t, likes.Len())
}

func TestToggleLike_NotFound(t *testing.T) {
	store := newTestStore()
	likes := NewLikeSet()

	_, err := store.ToggleLikeQuestion(99, likes)
	assert.True(t, IsNotFound(err))

	_, err = store.ToggleLikeComment(1, 99, likes)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, ErrCodeCommentNotFound, apiErr.Code)
	assert.Zero(t, likes.Len(), "failed toggles leave membership untouched")
}

func TestAddComment_UpdatesAnswersAndActivity(t *testing.T) {
	rec := newCountingRecorder()
	store := newTestStore(WithRecorder(rec))
	before, err := store.Question(3)
	require.NoError(t, err)

	c, err := store.AddComment(3, "Use índices compostos para as colunas do WHERE.", carlos)
	require.NoError(t, err)

	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, int64(3), c.QuestionID)
	assert.Equal(t, "Prof. Carlos", c.Author)
	assert.Equal(t, RoleTeacher, c.AuthorRole)
	assert.False(t, c.IsAccepted)

	after, err := store.Question(3)
	require.NoError(t, err)
	comments, err := store.Comments(3)
	require.NoError(t, err)
	assert.Equal(t, before.Answers+1, after.Answers)
	assert.Equal(t, len(comments), after.Answers)
	assert.Equal(t, day(testNow), after.LastActivity)
	assert.Equal(t, 1, rec.comments)
}

func TestAddComment_RejectsBlankContent(t *testing.T) {
	store := newTestStore()

	_, err := store.AddComment(3, "   ", carlos)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	q, err := store.Question(3)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Answers)
}

func TestAddComment_UnknownQuestion(t *testing.T) {
	_, err := newTestStore().AddComment(42, "olá pessoal", carlos)
	assert.True(t, IsNotFound(err))
}

func TestToggleAcceptAnswer_SingleAcceptance(t *testing.T) {
	store := newTestStore()

	q, comments, err := store.ToggleAcceptAnswer(1, 2, maria)
	require.NoError(t, err)

	assert.False(t, comments[0].IsAccepted)
	assert.True(t, comments[1].IsAccepted)
	assert.False(t, comments[2].IsAccepted)
	assert.True(t, q.IsResolved)
}

func TestToggleAcceptAnswer_UnacceptClearsResolution(t *testing.T) {
	rec := newCountingRecorder()
	store := newTestStore(WithRecorder(rec))

	q, comments, err := store.ToggleAcceptAnswer(1, 1, maria)
	require.NoError(t, err)

	for _, c := range comments {
		assert.False(t, c.IsAccepted)
	}
	assert.False(t, q.IsResolved)
	assert.Equal(t, []bool{false}, rec.accepted)
}

func TestToggleAcceptAnswer_NonAuthorIsIgnored(t *testing.T) {
	store := newTestStore()

	q, comments, err := store.ToggleAcceptAnswer(1, 2, carlos)
	require.NoError(t, err)

	assert.True(t, comments[0].IsAccepted)
	assert.False(t, comments[1].IsAccepted)
	assert.True(t, q.IsResolved)
}

func TestToggleAcceptAnswer_ResolvesOpenQuestion(t *testing.T) {
	store := newTestStore()
	ana := Identity{ID: 9, Name: "Ana Costa", Email: "ana@email.com", Role: RoleStudent}

	c, err := store.AddComment(4, "useLayoutEffect roda antes da pintura da tela.", carlos)
	require.NoError(t, err)
	q, _, err := store.ToggleAcceptAnswer(4, c.ID, ana)
	require.NoError(t, err)

	assert.True(t, q.IsResolved)
	resolved := store.Visible(FilterConfig{SelectedTag: AllTags, Status: StatusResolved})
	assert.Contains(t, ids(resolved), int64(4))
}

func TestToggleAcceptAnswer_NotFound(t *testing.T) {
	store := newTestStore()

	_, _, err := store.ToggleAcceptAnswer(1, 77, maria)
	assert.True(t, IsNotFound(err))

	_, _, err = store.ToggleAcceptAnswer(77, 1, maria)
	assert.True(t, IsNotFound(err))
}

func TestSeededStore_Invariants(t *testing.T) {
	store := newTestStore()

	for _, q := range store.Questions() {
		comments, err := store.Comments(q.ID)
		require.NoError(t, err)
		assert.Equal(t, len(comments), q.Answers, "question %d", q.ID)

		accepted := 0
		for _, c := range comments {
			if c.IsAccepted {
				accepted++
			}
		}
		assert.LessOrEqual(t, accepted, 1, "question %d", q.ID)
		assert.Equal(t, accepted == 1, q.IsResolved, "question %d", q.ID)
	}
}

func TestQuestions_ReturnsSnapshot(t *testing.T) {
	store := newTestStore()

	snapshot := store.Questions()
	snapshot[0].Likes = 1000
	snapshot[0].Tags[0] = "mutated"

	q, err := store.Question(snapshot[0].ID)
	require.NoError(t, err)
	assert.NotEqual(t, 1000, q.Likes)
	assert.NotEqual(t, "mutated", q.Tags[0])
}
