package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder markers are drawn from the Unicode Private Use Areas. The first
// rune not present in the text is used, so a placeholder can never collide
// with document content.
const (
	privateUseStart = '\uE000'
	privateUseEnd   = '\uF8FF'

	supplementaryPrivateUseStart = '\U000F0000'
	supplementaryPrivateUseEnd   = '\U000FFFFD'
)

// Precompiled tag patterns.
var (
	paragraphTag = regexp.MustCompile(`(?i)</?p[^>]*>`)
	nobrTag      = regexp.MustCompile(`(?i)</?nobr[^>]*>`)
	anyTag       = regexp.MustCompile(`<[^>]+>`)
)

// StripTags removes all markup except the literal strings in allow.
// Allowed tags are shielded with placeholders during the strip pass and
// restored afterwards. The result is trimmed.
func StripTags(text string, allow []string) string {
	tags := nonEmpty(allow)
	if len(tags) == 0 {
		return stripAll(text)
	}

	marker := string(unusedMarker(text))
	shield := make([]string, 0, 2*len(tags))
	restore := make([]string, 0, 2*len(tags))
	for i, tag := range tags {
		placeholder := marker + strconv.Itoa(i) + marker
		shield = append(shield, tag, placeholder)
		restore = append(restore, placeholder, tag)
	}

	shielded := strings.NewReplacer(shield...).Replace(text)
	stripped := stripAll(shielded)
	return strings.NewReplacer(restore...).Replace(stripped)
}

// stripAll removes paragraph, nobr and then any remaining tag, then trims.
func stripAll(text string) string {
	text = paragraphTag.ReplaceAllString(text, "")
	text = nobrTag.ReplaceAllString(text, "")
	text = anyTag.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// unusedMarker returns the first private use rune absent from text.
func unusedMarker(text string) rune {
	for r := privateUseStart; r <= privateUseEnd; r++ {
		if !strings.ContainsRune(text, r) {
			return r
		}
	}
	for r := supplementaryPrivateUseStart; r <= supplementaryPrivateUseEnd; r++ {
		if !strings.ContainsRune(text, r) {
			return r
		}
	}
	// A text holding every private use rune is over a million runes long,
	// far beyond the input limit.
	return supplementaryPrivateUseEnd
}

func nonEmpty(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
