package pipeline

// Default delimiters used when the caller leaves a tag empty.
const (
	DefaultBrTag  = "<br />"
	DefaultPOpen  = "<p>"
	DefaultPClose = "</p>"
)

// Config holds the caller's rendering choices.
type Config struct {
	Quotes1 QuoteStyle   // primary (outer) quotes
	Quotes2 QuoteStyle   // secondary (nested) quotes
	Format  OutputFormat // entity rendering
	UseBr   bool
	BrTag   string // "" = DefaultBrTag
	UseP    bool
	POpen   string // "" = DefaultPOpen
	PClose  string // "" = DefaultPClose
}

func (c Config) brTag() string  { return orDefault(c.BrTag, DefaultBrTag) }
func (c Config) pOpen() string  { return orDefault(c.POpen, DefaultPOpen) }
func (c Config) pClose() string { return orDefault(c.PClose, DefaultPClose) }

// AllowList returns the delimiters that survive tag stripping.
func (c Config) AllowList() []string {
	var tags []string
	if c.UseBr {
		tags = append(tags, c.brTag())
	}
	if c.UseP {
		tags = append(tags, c.pOpen(), c.pClose())
	}
	return tags
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Render turns a raw service fragment into the final text.
// Stage order matters: entities are decoded before tags are remapped, and
// quotes are normalized before the entity format is applied.
func Render(raw string, cfg Config) string {
	text := DecodeOneLayer(raw)
	text = DecodeHTMLEntities(text)
	text = RemapServiceTags(text, cfg)
	text = StripTags(text, cfg.AllowList())
	text = NormalizeQuotes(text, ResolveQuotePair(cfg.Quotes1), ResolveQuotePair(cfg.Quotes2))
	text = ConvertFormat(text, cfg.Format)

	if cfg.UseBr {
		text = NormalizeLineBreaks(text, cfg.brTag())
	}
	if cfg.UseP {
		text = NormalizeParagraphs(text, cfg.pOpen(), cfg.pClose(), cfg.brTag())
	}
	return text
}
