package pipeline

import "regexp"

// Service tag patterns.
var (
	serviceBreak     = regexp.MustCompile(`(?i)<br\s*/?>`)
	serviceParaOpen  = regexp.MustCompile(`(?i)<p(?:\s[^>]*)?>`)
	serviceParaClose = regexp.MustCompile(`(?i)</p\s*>`)
)

// RemapServiceTags replaces the service's own <br> and <p> markup with the
// caller's delimiters. Replacements are literal: "$" in a delimiter is kept.
func RemapServiceTags(text string, cfg Config) string {
	if cfg.UseBr {
		text = serviceBreak.ReplaceAllLiteralString(text, cfg.brTag())
	}
	if cfg.UseP {
		text = serviceParaOpen.ReplaceAllLiteralString(text, cfg.pOpen())
		text = serviceParaClose.ReplaceAllLiteralString(text, cfg.pClose())
	}
	return text
}
