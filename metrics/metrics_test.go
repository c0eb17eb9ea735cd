package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rexlx/academicoqa/forum"
)

var _ forum.Recorder = (*Collector)(nil)

func TestCollector_Counts(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())

	c.RecordQuestionCreated()
	c.RecordCommentAdded()
	c.RecordCommentAdded()
	c.RecordLike("question", true)
	c.RecordLike("question", false)
	c.RecordLike("comment", true)
	c.RecordAnswerAccepted(true)
	c.RecordAuthAttempt("login", false)
	c.RecordAuthAttempt("login", true)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.questionsCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.commentsAdded))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.likes.WithLabelValues("question", "like")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.likes.WithLabelValues("question", "unlike")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.likes.WithLabelValues("comment", "like")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.answersAccepted.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authAttempts.WithLabelValues("login", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authAttempts.WithLabelValues("login", "success")))
}

func TestCollector_WiredIntoContentStore(t *testing.T) {
	c := NewCollector(prometheus.NewRegistry())
	store := forum.NewSeededContentStore(forum.WithRecorder(c))

	_, err := store.ToggleLikeQuestion(1, forum.NewLikeSet())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.likes.WithLabelValues("question", "like")))
}

func TestHandler_ServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordQuestionCreated()

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "academicoqa_questions_created_total 1")
}
