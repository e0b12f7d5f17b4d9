package typograf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/alnah/go-typograf/internal/pipeline"
	"github.com/alnah/go-typograf/internal/preview"
	"github.com/alnah/go-typograf/internal/remote"
)

// textProcessor performs the remote ProcessText call.
type textProcessor interface {
	ProcessText(ctx context.Context, req remote.Request) (string, error)
}

// Compile-time interface implementation check.
var _ textProcessor = (*remote.Client)(nil)

// Converter sends text to the service and re-renders the result.
// Create with NewConverter(), use Convert() for conversion, and Close() when done.
// Safe for concurrent use.
type Converter struct {
	cfg    converterConfig
	client textProcessor
	closer func()
	logger *log.Logger
}

// NewConverter creates a Converter with default configuration.
// Returns ErrInvalidEndpoint if WithEndpoint was given a malformed URL.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg, err := newConverterConfig(opts)
	if err != nil {
		return nil, err
	}
	return newConverter(cfg), nil
}

// newConverterConfig applies opts over the defaults and validates them.
func newConverterConfig(opts []Option) (converterConfig, error) {
	cfg := converterConfig{
		endpoint: remote.DefaultEndpoint,
		timeout:  defaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if err := validateEndpoint(cfg.endpoint); err != nil {
		return converterConfig{}, err
	}
	return cfg, nil
}

// newConverter builds a Converter from a validated configuration.
func newConverter(cfg converterConfig) *Converter {
	client := remote.New(
		remote.WithEndpoint(cfg.endpoint),
		remote.WithTimeout(cfg.timeout),
		remote.WithRetries(cfg.retries),
		remote.WithRateLimiter(cfg.limiter),
		remote.WithHTTPClient(cfg.httpClient),
		remote.WithLogger(cfg.logger),
	)
	return &Converter{
		cfg:    cfg,
		client: client,
		closer: client.Close,
		logger: cfg.logger,
	}
}

// validateEndpoint requires an absolute http(s) URL with a host.
func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidEndpoint, endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host in %q", ErrInvalidEndpoint, endpoint)
	}
	return nil
}

// Endpoint returns the service URL used by the converter.
func (c *Converter) Endpoint() string {
	return c.cfg.endpoint
}

// Convert sends input.Text to the service and re-renders the result.
// Texts longer than MaxInputLength runes are truncated and Result.Truncated is
// set. Service failures wrap ErrServiceCall; a reply without a result element
// returns ErrInvalidResponse. Recovers from internal panics to prevent crashes
// from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	opts, err := c.validateInput(input)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := c.logger.With("request_id", id)

	text, originalLength, truncated := truncate(input.Text, MaxInputLength)
	if truncated {
		logger.Warn("input truncated", "length", originalLength, "limit", MaxInputLength)
	}
	text = norm.NFC.String(text)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := c.fetch(ctx, opts.remoteRequest(text), logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Text:           pipeline.Render(raw, opts.pipelineConfig()),
		Raw:            raw,
		Truncated:      truncated,
		OriginalLength: originalLength,
		RequestID:      id,
	}
	if input.Preview {
		res.Preview = preview.PlainText(res.Text)
	}

	logger.Debug("converted", "runes", utf8.RuneCountInString(res.Text))
	return res, nil
}

// fetch returns the service fragment for req, consulting the result cache.
func (c *Converter) fetch(ctx context.Context, req remote.Request, logger *log.Logger) (string, error) {
	if c.cfg.cache != nil {
		if raw, ok := c.cfg.cache.get(req); ok {
			logger.Debug("result cache hit")
			return raw, nil
		}
	}

	logger.Debug("calling service", "endpoint", c.cfg.endpoint)
	raw, err := c.client.ProcessText(ctx, req)
	if err != nil {
		if errors.Is(err, ErrInvalidResponse) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrServiceCall, err)
	}

	if c.cfg.cache != nil {
		c.cfg.cache.add(req, raw)
	}
	return raw, nil
}

// Close releases idle connections.
func (c *Converter) Close() error {
	if c.closer != nil {
		c.closer()
	}
	return nil
}

// validateInput checks the text and resolves the options.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their options validated earlier by Config.Validate().
func (c *Converter) validateInput(input Input) (*Options, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrEmptyInput
	}
	opts := input.Options
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// truncate cuts text to at most limit runes.
// Returns the (possibly cut) text, the original rune count and whether it was cut.
func truncate(text string, limit int) (string, int, bool) {
	n := utf8.RuneCountInString(text)
	if n <= limit {
		return text, n, false
	}
	i := 0
	for pos := range text {
		if i == limit {
			return text[:pos], n, true
		}
		i++
	}
	return text, n, false
}
