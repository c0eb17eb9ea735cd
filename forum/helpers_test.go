package forum

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testNow = time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

var (
	maria  = Identity{ID: 1, Name: "Maria Silva", Email: "maria@email.com", Role: RoleStudent}
	carlos = Identity{ID: 2, Name: "Prof. Carlos", Email: "carlos@email.com", Role: RoleTeacher}
)

func newTestStore(opts ...ContentOption) *ContentStore {
	opts = append([]ContentOption{WithClock(func() time.Time { return testNow })}, opts...)
	return NewSeededContentStore(opts...)
}

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	d, err := NewDirectory(bcrypt.MinCost)
	require.NoError(t, err)
	return d
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ids(questions []Question) []int64 {
	out := make([]int64, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

type countingRecorder struct {
	questions int
	comments  int
	likes     map[string]int
	accepted  []bool
	auth      map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{likes: map[string]int{}, auth: map[string]int{}}
}

func (r *countingRecorder) RecordQuestionCreated() { r.questions++ }
func (r *countingRecorder) RecordCommentAdded()    { r.comments++ }
func (r *countingRecorder) RecordLike(target string, liked bool) {
	if liked {
		r.likes[target]++
	} else {
		r.likes[target]--
	}
}
func (r *countingRecorder) RecordAnswerAccepted(accepted bool) { r.accepted = append(r.accepted, accepted) }
func (r *countingRecorder) RecordAuthAttempt(op string, ok bool) {
	if ok {
		r.auth[op+":ok"]++
	} else {
		r.auth[op+":fail"]++
	}
}
