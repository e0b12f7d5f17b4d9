package pipeline

import "regexp"

// NormalizeLineBreaks collapses runs of brTag into one and removes a trailing
// brTag (with surrounding whitespace and non-breaking spaces) at the end of
// the text. brTag is matched literally and case-insensitively.
func NormalizeLineBreaks(text, brTag string) string {
	if brTag == "" {
		return text
	}
	br := regexp.QuoteMeta(brTag)

	consecutive := compileLiteral(`(?i)(` + br + `)(?:\s*` + br + `)+`)
	text = consecutive.ReplaceAllString(text, "${1}")

	trailing := compileLiteral(`(?i)(?:\x{00A0}|\s)*` + br + `\s*$`)
	return trailing.ReplaceAllLiteralString(text, "")
}
