package forum

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer renders stored plain text as HTML for clients that display
// markup. Stored titles, bodies and comments are never rewritten; text that
// looks like a tag (List<String>, <div>) is escaped, not dropped.
type Sanitizer struct {
	policy *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{policy: bluemonday.UGCPolicy()}
}

// HTML escapes text, wraps blank-line separated blocks in <p> and single
// newlines in <br>, then runs the result through the UGC policy.
func (s *Sanitizer) HTML(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}
	var b strings.Builder
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(l)
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return s.policy.Sanitize(b.String())
}
