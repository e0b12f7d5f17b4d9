package pipeline

import "strings"

// xmlEscaper escapes in a single pass, so "&" produced by one replacement is
// never escaped again.
var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// Escape encodes & < > for embedding text in an XML request envelope.
func Escape(text string) string {
	return xmlEscaper.Replace(text)
}

// DecodeOneLayer removes one layer of transport escaping.
// "&amp;laquo;" becomes "&laquo;"; "&amp;amp;" becomes "&amp;".
func DecodeOneLayer(text string) string {
	return strings.ReplaceAll(text, "&amp;", "&")
}
