package pipeline

import (
	"regexp"
	"strings"
)

// whitespaceRun matches spaces, tabs and line breaks. Non-breaking spaces are
// typographic content and are not matched.
var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeParagraphs cleans whitespace inside every pOpen...pClose pair:
// leading and trailing whitespace is removed, a brTag right before pClose is
// dropped, and inner whitespace runs collapse to a single space.
func NormalizeParagraphs(text, pOpen, pClose, brTag string) string {
	if pOpen == "" || pClose == "" {
		return text
	}
	open := regexp.QuoteMeta(pOpen)
	closing := regexp.QuoteMeta(pClose)

	text = compileLiteral(open+`\s+`).ReplaceAllLiteralString(text, pOpen)
	if brTag != "" {
		br := regexp.QuoteMeta(brTag)
		text = compileLiteral(`(?i)\s*`+br+`\s*`+closing).ReplaceAllLiteralString(text, pClose)
	}
	text = compileLiteral(`\s+`+closing).ReplaceAllLiteralString(text, pClose)

	paragraph := compileLiteral(`(?s)` + open + `(.*?)` + closing)
	return paragraph.ReplaceAllStringFunc(text, func(m string) string {
		content := m[len(pOpen) : len(m)-len(pClose)]
		content = whitespaceRun.ReplaceAllString(content, " ")
		return pOpen + strings.Trim(content, " ") + pClose
	})
}
