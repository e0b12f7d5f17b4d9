package typograf

import (
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/alnah/go-typograf/internal/pipeline"
	"github.com/alnah/go-typograf/internal/remote"
)

// MaxInputLength is the largest input, in runes, sent to the service.
// Longer texts are truncated.
const MaxInputLength = 65536

// QuoteStyle names a pair of quotation glyphs.
type QuoteStyle = pipeline.QuoteStyle

// Quote styles.
const (
	QuoteFrench        = pipeline.QuoteFrench
	QuoteGerman        = pipeline.QuoteGerman
	QuoteEnglishDouble = pipeline.QuoteEnglishDouble
	QuoteProgrammer    = pipeline.QuoteProgrammer
	QuoteEnglishSingle = pipeline.QuoteEnglishSingle
)

// OutputFormat selects how entities are rendered in the result.
type OutputFormat = pipeline.OutputFormat

// Output formats.
const (
	FormatNamed   = pipeline.FormatNamed
	FormatNumeric = pipeline.FormatNumeric
	FormatUnicode = pipeline.FormatUnicode
)

// Default delimiters.
const (
	DefaultBrTag  = pipeline.DefaultBrTag
	DefaultPOpen  = pipeline.DefaultPOpen
	DefaultPClose = pipeline.DefaultPClose
)

// QuoteStyles lists every supported quote style.
var QuoteStyles = []QuoteStyle{
	QuoteFrench,
	QuoteGerman,
	QuoteEnglishDouble,
	QuoteProgrammer,
	QuoteEnglishSingle,
}

// OutputFormats lists every supported output format.
var OutputFormats = []OutputFormat{FormatNamed, FormatNumeric, FormatUnicode}

// Options controls how the service result is re-rendered.
// Empty fields take their defaults.
type Options struct {
	Quotes1 QuoteStyle   // first-level quotes (default french)
	Quotes2 QuoteStyle   // nested quotes (default german)
	Format  OutputFormat // default named

	UseBr bool
	BrTag string // default "<br />"

	UseP   bool
	POpen  string // default "<p>"
	PClose string // default "</p>"

	// MaxNobr is forwarded to the service. Zero disables the nobr wrapping
	// of short words.
	MaxNobr int
}

// DefaultOptions returns the options used when Input.Options is nil.
func DefaultOptions() *Options {
	return &Options{
		Quotes1: QuoteFrench,
		Quotes2: QuoteGerman,
		Format:  FormatNamed,
		BrTag:   DefaultBrTag,
		POpen:   DefaultPOpen,
		PClose:  DefaultPClose,
	}
}

// Validate checks quote styles, format and maxNobr.
func (o *Options) Validate() error {
	if o == nil {
		return nil
	}

	if o.Quotes1 != "" && !IsValidQuoteStyle(o.Quotes1) {
		return fmt.Errorf("%w: quotes1 %q", ErrInvalidQuoteStyle, o.Quotes1)
	}
	if o.Quotes2 != "" && !IsValidQuoteStyle(o.Quotes2) {
		return fmt.Errorf("%w: quotes2 %q", ErrInvalidQuoteStyle, o.Quotes2)
	}
	if o.Format != "" && !IsValidOutputFormat(o.Format) {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, o.Format)
	}
	if o.MaxNobr < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidMaxNobr, o.MaxNobr)
	}
	return nil
}

// IsValidQuoteStyle reports whether s is a supported quote style.
func IsValidQuoteStyle(s QuoteStyle) bool {
	for _, known := range QuoteStyles {
		if s == known {
			return true
		}
	}
	return false
}

// IsValidOutputFormat reports whether f is a supported output format.
func IsValidOutputFormat(f OutputFormat) bool {
	for _, known := range OutputFormats {
		if f == known {
			return true
		}
	}
	return false
}

// pipelineConfig maps options onto the render stage.
func (o *Options) pipelineConfig() pipeline.Config {
	cfg := pipeline.Config{
		Quotes1: o.Quotes1,
		Quotes2: o.Quotes2,
		Format:  o.Format,
		UseBr:   o.UseBr,
		BrTag:   o.BrTag,
		UseP:    o.UseP,
		POpen:   o.POpen,
		PClose:  o.PClose,
	}
	if cfg.Quotes2 == "" {
		cfg.Quotes2 = QuoteGerman
	}
	if cfg.Format == "" {
		cfg.Format = FormatNamed
	}
	return cfg
}

// remoteRequest builds the service call for text. The service always gets
// the french/german pair so its quotes can be read back unambiguously; the
// caller's styles are applied locally.
func (o *Options) remoteRequest(text string) remote.Request {
	return remote.Request{
		Text:       text,
		EntityType: remote.EntityHTML,
		UseBr:      o.UseBr,
		UseP:       o.UseP,
		MaxNobr:    o.MaxNobr,
		Quotes1:    string(QuoteFrench),
		Quotes2:    string(QuoteGerman),
	}
}

// Input is one conversion request.
type Input struct {
	Text    string
	Options *Options // nil = DefaultOptions()

	// Preview also renders the result as browser-visible plain text.
	Preview bool
}

// Result is the outcome of one conversion.
type Result struct {
	Text string // re-rendered text
	Raw  string // service fragment as received

	// Preview is set when Input.Preview was requested.
	Preview string

	// Truncated reports that the input exceeded MaxInputLength runes.
	Truncated      bool
	OriginalLength int // input length in runes

	// RequestID identifies the conversion in log records.
	RequestID string
}

// Option configures a Converter.
type Option func(*converterConfig)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	endpoint   string
	timeout    time.Duration
	retries    int
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *log.Logger
	cache      *ResultCache
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = remote.DefaultTimeout

// WithEndpoint overrides the service URL.
func WithEndpoint(url string) Option {
	return func(c *converterConfig) {
		c.endpoint = url
	}
}

// WithTimeout sets the per-request timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("typograf: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithRetries sets how many times a failed service call is retried.
func WithRetries(n int) Option {
	return func(c *converterConfig) {
		c.retries = n
	}
}

// WithRateLimiter makes every service call wait on l. Share one limiter
// between converters to bound the total request rate.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *converterConfig) {
		c.limiter = l
	}
}

// WithHTTPClient sets the HTTP client used for service calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *converterConfig) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger. Conversions log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(c *converterConfig) {
		c.logger = l
	}
}

// WithResultCache reuses service results for identical requests.
func WithResultCache(rc *ResultCache) Option {
	return func(c *converterConfig) {
		c.cache = rc
	}
}
