// Package preview renders processed markup as plain text, the way a browser
// would display it.
package preview

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PlainText tokenizes markup and returns its visible text.
// A br becomes a newline and paragraph boundaries become a blank line. Other
// tags are dropped, entities are decoded, and runs of ASCII whitespace
// collapse to one space. Non-breaking spaces are kept.
func PlainText(markup string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(markup))
	pendingSpace := false

	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Trim(b.String(), " \n")

		case html.TextToken:
			for _, r := range string(z.Text()) {
				if isCollapsible(r) {
					pendingSpace = true
					continue
				}
				if pendingSpace && b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
					b.WriteByte(' ')
				}
				pendingSpace = false
				b.WriteRune(r)
			}

		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Br:
				b.WriteByte('\n')
				pendingSpace = false
			case atom.P:
				paragraphBreak(&b)
				pendingSpace = false
			}
		}
	}
}

// paragraphBreak ends the current block with exactly one blank line.
func paragraphBreak(b *strings.Builder) {
	if b.Len() == 0 {
		return
	}
	s := b.String()
	for !strings.HasSuffix(s, "\n\n") {
		s += "\n"
	}
	b.Reset()
	b.WriteString(s)
}

// isCollapsible reports HTML inter-element whitespace. U+00A0 is not part of it.
func isCollapsible(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
