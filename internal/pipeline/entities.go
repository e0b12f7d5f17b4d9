package pipeline

import (
	"regexp"
	"strconv"
	"strings"
)

// OutputFormat selects how recognized entities are rendered.
type OutputFormat string

// Output formats.
const (
	FormatNamed   OutputFormat = "named"   // &laquo;
	FormatNumeric OutputFormat = "numeric" // &#171;
	FormatUnicode OutputFormat = "unicode" // «
)

// entityTable maps the named entities the service produces to code points.
var entityTable = map[string]rune{
	"&laquo;":  171,
	"&raquo;":  187,
	"&lsaquo;": 8249,
	"&rsaquo;": 8250,
	"&bdquo;":  8222,
	"&ldquo;":  8220,
	"&rdquo;":  8221,
	"&lsquo;":  8216,
	"&rsquo;":  8217,
	"&sbquo;":  8218,
	"&quot;":   34,
	"&amp;":    38,
	"&lt;":     60,
	"&gt;":     62,
	"&nbsp;":   160,
	"&mdash;":  8212,
	"&ndash;":  8211,
}

// namedEntity matches the lexical form of a named entity.
var namedEntity = regexp.MustCompile(`&[a-zA-Z]+;`)

// htmlEntityDecodings lists the decodings applied by DecodeHTMLEntities.
// Ampersand is last so that "&amp;lt;" decodes to "&lt;", not "<".
var htmlEntityDecodings = [...][2]string{
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&#39;", "'"},
	{"&amp;", "&"},
}

// DecodeHTMLEntities decodes &lt; &gt; &quot; &#39; and &amp;.
// Other entities are left untouched.
func DecodeHTMLEntities(text string) string {
	for _, d := range htmlEntityDecodings {
		text = strings.ReplaceAll(text, d[0], d[1])
	}
	return text
}

// ConvertFormat renders every known named entity in the requested format.
// Unknown entities pass through unchanged.
func ConvertFormat(text string, format OutputFormat) string {
	if format == FormatNamed {
		return text
	}

	return namedEntity.ReplaceAllStringFunc(text, func(m string) string {
		code, ok := entityTable[m]
		if !ok {
			return m
		}
		switch format {
		case FormatNumeric:
			return "&#" + strconv.Itoa(int(code)) + ";"
		case FormatUnicode:
			return string(code)
		default:
			return m
		}
	})
}

// EntityCodePoint returns the code point of a named entity such as "&laquo;".
func EntityCodePoint(entity string) (rune, bool) {
	code, ok := entityTable[entity]
	return code, ok
}
