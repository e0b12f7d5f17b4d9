package pipeline

import "strings"

// QuoteStyle names a pair of quotation glyphs.
type QuoteStyle string

// Quote styles.
const (
	QuoteFrench        QuoteStyle = "french"         // « »
	QuoteGerman        QuoteStyle = "german"         // „ “
	QuoteEnglishDouble QuoteStyle = "english-double" // “ ”
	QuoteProgrammer    QuoteStyle = "programmer"     // " "
	QuoteEnglishSingle QuoteStyle = "english-single" // ‘ ’
)

// QuotePair holds opening and closing quotes as named entities, so the output
// format decides how they are finally rendered.
type QuotePair struct {
	Open  string
	Close string
}

// Glyphs returns the literal characters of the pair.
func (p QuotePair) Glyphs() (string, string) {
	return entityGlyph(p.Open), entityGlyph(p.Close)
}

func entityGlyph(entity string) string {
	if code, ok := entityTable[entity]; ok {
		return string(code)
	}
	return entity
}

// ResolveQuotePair maps a style to its pair. Unknown styles get the french pair.
func ResolveQuotePair(style QuoteStyle) QuotePair {
	switch style {
	case QuoteGerman:
		return QuotePair{Open: "&bdquo;", Close: "&ldquo;"}
	case QuoteEnglishDouble:
		return QuotePair{Open: "&ldquo;", Close: "&rdquo;"}
	case QuoteProgrammer:
		return QuotePair{Open: "&quot;", Close: "&quot;"}
	case QuoteEnglishSingle:
		return QuotePair{Open: "&lsquo;", Close: "&rsquo;"}
	default:
		return QuotePair{Open: "&laquo;", Close: "&raquo;"}
	}
}

// quoteRole is the position a source glyph takes in the output.
type quoteRole int

const (
	primaryOpen quoteRole = iota
	primaryClose
	secondaryOpen
	secondaryClose
)

// quoteRule assigns a source glyph or entity to a role.
type quoteRule struct {
	source string
	role   quoteRole
}

// quoteRules is evaluated in order. The service reuses “ (and &ldquo;) both
// as German closer and English opener; the German reading comes first and
// owns the glyph, the English rules only see what it left.
var quoteRules = []quoteRule{
	// French « »
	{"&laquo;", primaryOpen},
	{"&raquo;", primaryClose},
	{"«", primaryOpen},
	{"»", primaryClose},

	// Single guillemets ‹ ›
	{"&lsaquo;", secondaryOpen},
	{"&rsaquo;", secondaryClose},
	{"‹", secondaryOpen},
	{"›", secondaryClose},

	// German „ “
	{"&bdquo;", secondaryOpen},
	{"&ldquo;", secondaryClose},
	{"„", secondaryOpen},
	{"“", secondaryClose},

	// English “ ”
	{"&ldquo;", primaryOpen},
	{"&rdquo;", primaryClose},
	{"“", primaryOpen},
	{"”", primaryClose},

	// English ‘ ’ and low ‚
	{"&lsquo;", secondaryOpen},
	{"&rsquo;", secondaryClose},
	{"‘", secondaryOpen},
	{"’", secondaryClose},
	{"&sbquo;", secondaryOpen},
	{"‚", secondaryOpen},
}

// NormalizeQuotes rewrites every known quote variant to the primary or
// secondary pair. The text is scanned once, so replacements are never
// re-matched by later rules.
func NormalizeQuotes(text string, primary, secondary QuotePair) string {
	targets := [...]string{
		primaryOpen:    primary.Open,
		primaryClose:   primary.Close,
		secondaryOpen:  secondary.Open,
		secondaryClose: secondary.Close,
	}

	seen := make(map[string]bool, len(quoteRules))
	oldnew := make([]string, 0, 2*len(quoteRules))
	for _, r := range quoteRules {
		if seen[r.source] {
			continue
		}
		seen[r.source] = true
		oldnew = append(oldnew, r.source, targets[r.role])
	}

	return strings.NewReplacer(oldnew...).Replace(text)
}
