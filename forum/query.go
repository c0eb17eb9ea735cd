package forum

import (
	"sort"
	"strings"
)

// VisibleQuestions filters and orders questions for cfg. It never mutates its
// input and returns the same sequence for the same arguments. Ties keep the
// relative order of the input.
func VisibleQuestions(questions []Question, cfg FilterConfig) []Question {
	term := strings.ToLower(cfg.SearchTerm)
	tag := NormalizeTag(cfg.SelectedTag)

	visible := make([]Question, 0, len(questions))
	for _, q := range questions {
		if !matchesSearch(q, term) || !matchesTag(q, tag) || !matchesStatus(q, cfg.Status) {
			continue
		}
		visible = append(visible, q.clone())
	}

	var less func(a, b Question) bool
	switch cfg.SortKey {
	case SortLikes:
		less = func(a, b Question) bool { return a.Likes > b.Likes }
	case SortAnswers:
		less = func(a, b Question) bool { return a.Answers > b.Answers }
	default:
		less = func(a, b Question) bool { return day(a.LastActivity).After(day(b.LastActivity)) }
	}
	sort.SliceStable(visible, func(i, j int) bool { return less(visible[i], visible[j]) })
	return visible
}

func matchesSearch(q Question, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(q.Title), term) || strings.Contains(strings.ToLower(q.Content), term) {
		return true
	}
	for _, t := range q.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

func matchesTag(q Question, tag string) bool {
	return tag == "" || tag == AllTags || q.HasTag(tag)
}

func matchesStatus(q Question, status Status) bool {
	switch status {
	case StatusResolved:
		return q.IsResolved
	case StatusUnresolved:
		return !q.IsResolved
	}
	return true
}
