package forum

import (
	"strings"
	"sync"
	"time"
)

// ContentStore owns every question and comment. All mutation goes through its
// methods; each call runs to completion under the store lock.
type ContentStore struct {
	mu        sync.RWMutex
	questions []*Question // newest first
	comments  map[int64][]*Comment
	nextID    int64

	now      func() time.Time
	recorder Recorder
}

type ContentOption func(*ContentStore)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) ContentOption {
	return func(s *ContentStore) { s.now = now }
}

func WithRecorder(r Recorder) ContentOption {
	return func(s *ContentStore) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithSeed loads questions (given newest first) and their comments. Answer
// counts and resolution are derived from the comments.
func WithSeed(questions []Question, comments map[int64][]Comment) ContentOption {
	return func(s *ContentStore) {
		for _, q := range questions {
			q := q.clone()
			for _, c := range comments[q.ID] {
				c := c
				c.QuestionID = q.ID
				s.comments[q.ID] = append(s.comments[q.ID], &c)
			}
			s.questions = append(s.questions, &q)
			s.refresh(&q)
			if q.ID >= s.nextID {
				s.nextID = q.ID + 1
			}
		}
	}
}

func NewContentStore(opts ...ContentOption) *ContentStore {
	s := &ContentStore{
		comments: make(map[int64][]*Comment),
		nextID:   1,
		now:      time.Now,
		recorder: nopRecorder{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *ContentStore) today() time.Time {
	return day(s.now())
}

// Questions returns a snapshot in raw (newest first) order.
func (s *ContentStore) Questions() []Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Question, 0, len(s.questions))
	for _, q := range s.questions {
		out = append(out, q.clone())
	}
	return out
}

func (s *ContentStore) Question(id int64) (Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q := s.find(id)
	if q == nil {
		return Question{}, NewQuestionNotFoundError(id)
	}
	return q.clone(), nil
}

// Comments returns the comments of a question in posting order.
func (s *ContentStore) Comments(questionID int64) ([]Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.find(questionID) == nil {
		return nil, NewQuestionNotFoundError(questionID)
	}
	return s.snapshotComments(questionID), nil
}

// Tags is the current tag vocabulary.
func (s *ContentStore) Tags() []string {
	return TagVocabulary(s.Questions())
}

// Visible applies the query engine to the current collection.
func (s *ContentStore) Visible(cfg FilterConfig) []Question {
	return VisibleQuestions(s.Questions(), cfg)
}

// CreateQuestion validates and stores a new question authored by author.
// Title and content are stored as submitted, minus surrounding whitespace.
// On a validation failure nothing is stored.
func (s *ContentStore) CreateQuestion(d Draft, author Identity) (Question, error) {
	clean := Draft{
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
	}
	for _, t := range d.Tags {
		clean.AddTag(t)
	}
	if err := ValidateDraft(clean); err != nil {
		return Question{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.today()
	q := &Question{
		ID:           s.nextID,
		Title:        clean.Title,
		Content:      clean.Content,
		Author:       author.Name,
		AuthorRole:   author.Role,
		Tags:         clean.Tags,
		CreatedAt:    today,
		LastActivity: today,
	}
	s.nextID++
	s.questions = append([]*Question{q}, s.questions...)
	s.recorder.RecordQuestionCreated()
	return q.clone(), nil
}

// ToggleLikeQuestion flips the viewer's like on a question and moves the
// shared counter by one in the same direction.
func (s *ContentStore) ToggleLikeQuestion(id int64, likes *LikeSet) (Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.find(id)
	if q == nil {
		return Question{}, NewQuestionNotFoundError(id)
	}
	liked := likes.flipQuestion(id)
	q.Likes = bump(q.Likes, liked)
	s.recorder.RecordLike("question", liked)
	return q.clone(), nil
}

func (s *ContentStore) ToggleLikeComment(questionID, commentID int64, likes *LikeSet) (Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.findComment(questionID, commentID)
	if err != nil {
		return Comment{}, err
	}
	liked := likes.flipComment(questionID, commentID)
	c.Likes = bump(c.Likes, liked)
	s.recorder.RecordLike("comment", liked)
	return *c, nil
}

// AddComment appends a comment, bumps the answer count and the question's last activity.
func (s *ContentStore) AddComment(questionID int64, content string, author Identity) (Comment, error) {
	content = strings.TrimSpace(content)
	if err := validateComment(content); err != nil {
		return Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.find(questionID)
	if q == nil {
		return Comment{}, NewQuestionNotFoundError(questionID)
	}

	var maxID int64
	for _, c := range s.comments[questionID] {
		if c.ID > maxID {
			maxID = c.ID
		}
	}
	today := s.today()
	c := &Comment{
		ID:         maxID + 1,
		QuestionID: questionID,
		Content:    content,
		Author:     author.Name,
		AuthorRole: author.Role,
		CreatedAt:  today,
	}
	s.comments[questionID] = append(s.comments[questionID], c)
	s.refresh(q)
	q.LastActivity = today
	s.recorder.RecordCommentAdded()
	return *c, nil
}

// ToggleAcceptAnswer flips the accepted flag of one comment, clearing it on
// every sibling. Only the question's author may do this; anyone else gets the
// unchanged state back and no error. The question is resolved exactly when one
// of its comments is accepted.
func (s *ContentStore) ToggleAcceptAnswer(questionID, commentID int64, actor Identity) (Question, []Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.find(questionID)
	if q == nil {
		return Question{}, nil, NewQuestionNotFoundError(questionID)
	}
	target, err := s.findComment(questionID, commentID)
	if err != nil {
		return Question{}, nil, err
	}

	if actor.Name == q.Author {
		accept := !target.IsAccepted
		for _, c := range s.comments[questionID] {
			c.IsAccepted = false
		}
		target.IsAccepted = accept
		s.refresh(q)
		s.recorder.RecordAnswerAccepted(accept)
	}
	return q.clone(), s.snapshotComments(questionID), nil
}

// refresh re-derives the fields that follow from the comment list.
func (s *ContentStore) refresh(q *Question) {
	comments := s.comments[q.ID]
	q.Answers = len(comments)
	q.IsResolved = false
	for _, c := range comments {
		if c.IsAccepted {
			q.IsResolved = true
			break
		}
	}
}

func (s *ContentStore) find(id int64) *Question {
	for _, q := range s.questions {
		if q.ID == id {
			return q
		}
	}
	return nil
}

func (s *ContentStore) findComment(questionID, commentID int64) (*Comment, error) {
	if s.find(questionID) == nil {
		return nil, NewQuestionNotFoundError(questionID)
	}
	for _, c := range s.comments[questionID] {
		if c.ID == commentID {
			return c, nil
		}
	}
	return nil, NewCommentNotFoundError(questionID, commentID)
}

func (s *ContentStore) snapshotComments(questionID int64) []Comment {
	out := make([]Comment, 0, len(s.comments[questionID]))
	for _, c := range s.comments[questionID] {
		out = append(out, *c)
	}
	return out
}

func bump(n int, up bool) int {
	if up {
		return n + 1
	}
	if n > 0 {
		return n - 1
	}
	return 0
}
