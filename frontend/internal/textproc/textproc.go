// Package textproc turns user-submitted plain text into safe HTML for the
// page templates. Content is escaped, newlines become <br>, and a strict
// sanitizer backstops the result.
package textproc

import (
	"html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

type TextProcessor struct {
	policy *bluemonday.Policy
}

func New() *TextProcessor {
	// Only line breaks survive; everything else a user types is text.
	policy := bluemonday.NewPolicy()
	policy.AllowElements("br")
	return &TextProcessor{policy: policy}
}

// Render produces HTML that preserves the author's line breaks and nothing
// else.
func (tp *TextProcessor) Render(content string) template.HTML {
	escaped := html.EscapeString(content)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	withBreaks := strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(tp.policy.Sanitize(withBreaks))
}
