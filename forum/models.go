// forum/models.go
package forum

import (
	"time"
)

// Role is the single authorization flag carried by an identity.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// Identity is the authenticated user as seen by everything outside the auth directory.
type Identity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Question author fields are copied at creation time and never follow later identity changes.
type Question struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Author       string    `json:"author"`
	AuthorRole   Role      `json:"author_role"`
	Tags         []string  `json:"tags"`
	Likes        int       `json:"likes"`
	Answers      int       `json:"answers"`
	IsResolved   bool      `json:"is_resolved"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity"`
}

// HasTag reports whether tag (case-folded) is one of the question's tags.
func (q *Question) HasTag(tag string) bool {
	tag = NormalizeTag(tag)
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (q Question) clone() Question {
	q.Tags = append([]string(nil), q.Tags...)
	return q
}

// Comment IDs are only unique within their question.
type Comment struct {
	ID         int64     `json:"id"`
	QuestionID int64     `json:"question_id"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	AuthorRole Role      `json:"author_role"`
	Likes      int       `json:"likes"`
	CreatedAt  time.Time `json:"created_at"`
	IsAccepted bool      `json:"is_accepted"`
}

// Draft is a question as typed by its author, before validation.
type Draft struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

// AddTag appends the normalized tag unless it is empty or already present.
func (d *Draft) AddTag(tag string) bool {
	tag = NormalizeTag(tag)
	if tag == "" {
		return false
	}
	for _, t := range d.Tags {
		if t == tag {
			return false
		}
	}
	d.Tags = append(d.Tags, tag)
	return true
}

// RemoveTag drops tag, normalized the same way AddTag stores it.
func (d *Draft) RemoveTag(tag string) {
	tag = NormalizeTag(tag)
	kept := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	d.Tags = kept
}

// Status filters questions by resolution.
type Status string

const (
	StatusAll        Status = "all"
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
)

// SortKey selects the ordering of the visible set.
type SortKey string

const (
	SortRecent  SortKey = "recent"
	SortLikes   SortKey = "likes"
	SortAnswers SortKey = "answers"
)

// AllTags is the SelectedTag value that disables tag filtering.
const AllTags = "all"

// FilterConfig is the transient view configuration; it is never persisted.
type FilterConfig struct {
	SearchTerm  string  `json:"search_term"`
	SelectedTag string  `json:"selected_tag"`
	Status      Status  `json:"status"`
	SortKey     SortKey `json:"sort_key"`
}

// DefaultFilter shows everything, most recent activity first.
func DefaultFilter() FilterConfig {
	return FilterConfig{SelectedTag: AllTags, Status: StatusAll, SortKey: SortRecent}
}

// ParseStatus accepts "" as StatusAll.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusResolved, StatusUnresolved:
		return Status(s), nil
	}
	return "", NewInvalidFilterError("status", s)
}

// ParseSortKey accepts "" as SortRecent.
func ParseSortKey(s string) (SortKey, error) {
	switch SortKey(s) {
	case "", SortRecent:
		return SortRecent, nil
	case SortLikes, SortAnswers:
		return SortKey(s), nil
	}
	return "", NewInvalidFilterError("sort", s)
}

// day truncates t to its UTC calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustDate(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}
