package forum

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizerHTML(t *testing.T) {
	s := NewSanitizer()

	assert.Equal(t, "", s.HTML("  \n "))
	assert.Equal(t, "<p>Como usar List&lt;String&gt; em Java?</p>", s.HTML("Como usar List<String> em Java?"))
	assert.Equal(t, "<p>linha um<br>linha dois</p><p>outro bloco</p>", s.HTML("linha um\nlinha dois\n\noutro bloco"))
	assert.Equal(t, "<p>if (n &lt;= 1) return 1 &amp;&amp; ok</p>", s.HTML("if (n <= 1) return 1 && ok"))
}

func TestSanitizerHTML_NeverEmitsSubmittedMarkup(t *testing.T) {
	s := NewSanitizer()

	out := s.HTML(`<img src=x onerror=alert(1)>olá <script>alert(1)</script>`)

	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "olá")
}
