// Package remote talks to the Typograf SOAP web service.
//
// The client only transports text: it escapes the outbound document, posts a
// ProcessText envelope and returns the ProcessTextResult fragment exactly as
// received. Decoding and rewriting the fragment is the pipeline's job.
package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/alnah/go-typograf/internal/pipeline"
)

// Service constants.
const (
	DefaultEndpoint = "https://typograf.artlebedev.ru/webservices/typograf.asmx"
	SOAPAction      = `"http://typograf.artlebedev.ru/webservices/ProcessText"`
	DefaultTimeout  = 30 * time.Second

	// EntityHTML asks the service for named HTML entities.
	EntityHTML = 1
)

// Retry backoff bounds.
const (
	retryWaitTime    = 200 * time.Millisecond
	retryMaxWaitTime = 2 * time.Second
)

const (
	resultOpen  = "<ProcessTextResult>"
	resultClose = "</ProcessTextResult>"
)

// Sentinel errors.
var (
	ErrRequest         = errors.New("typography service request failed")
	ErrInvalidResponse = errors.New("invalid response from typography service")
)

// Request holds the ProcessText parameters.
type Request struct {
	Text       string
	EntityType int
	UseBr      bool
	UseP       bool
	MaxNobr    int
	Quotes1    string
	Quotes2    string
}

// Client posts ProcessText requests. Safe for concurrent use.
type Client struct {
	http     *resty.Client
	endpoint string
	limiter  *rate.Limiter
}

// clientConfig collects options before the resty client is built.
type clientConfig struct {
	endpoint   string
	timeout    time.Duration
	retries    int
	limiter    *rate.Limiter
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*clientConfig)

// WithEndpoint overrides the service URL.
func WithEndpoint(url string) Option {
	return func(c *clientConfig) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithTimeout sets the per-attempt timeout.
// Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("remote: WithTimeout duration must be positive")
	}
	return func(c *clientConfig) {
		c.timeout = d
	}
}

// WithRetries sets how many times a failed call is retried.
// Only transport errors and 5xx statuses are retried.
func WithRetries(n int) Option {
	return func(c *clientConfig) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithRateLimiter makes every call wait on l first. The limiter may be shared
// between clients.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(c *clientConfig) {
		c.limiter = l
	}
}

// WithHTTPClient sets the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithLogger routes transport diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// New creates a Client.
func New(opts ...Option) *Client {
	cfg := clientConfig{
		endpoint: DefaultEndpoint,
		timeout:  DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}

	var hc *resty.Client
	if cfg.httpClient != nil {
		hc = resty.NewWithClient(cfg.httpClient)
	} else {
		hc = resty.New()
	}
	hc.SetTimeout(cfg.timeout).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetHeader("SOAPAction", SOAPAction).
		SetLogger(cfg.logger).
		SetRetryCount(cfg.retries).
		SetRetryWaitTime(retryWaitTime).
		SetRetryMaxWaitTime(retryMaxWaitTime).
		AddRetryCondition(retryCondition)

	return &Client{
		http:     hc,
		endpoint: cfg.endpoint,
		limiter:  cfg.limiter,
	}
}

// retryCondition retries transport failures and server errors.
func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= http.StatusInternalServerError
}

// Endpoint returns the service URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ProcessText sends req and returns the raw result fragment.
func (c *Client) ProcessText(ctx context.Context, req Request) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %w", ErrRequest, err)
		}
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(BuildEnvelope(req)).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: %s", ErrRequest, resp.Status())
	}

	return ExtractResult(resp.String())
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// BuildEnvelope renders the SOAP 1.1 ProcessText envelope for req.
func BuildEnvelope(req Request) string {
	entityType := req.EntityType
	if entityType == 0 {
		entityType = EntityHTML
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<soap:Envelope xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"` +
		` xmlns:xsd="http://www.w3.org/2001/XMLSchema"` +
		` xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">` + "\n")
	b.WriteString("<soap:Body>\n")
	b.WriteString(` <ProcessText xmlns="http://typograf.artlebedev.ru/webservices/">` + "\n")
	fmt.Fprintf(&b, "  <text>%s</text>\n", pipeline.Escape(req.Text))
	fmt.Fprintf(&b, "  <entityType>%d</entityType>\n", entityType)
	fmt.Fprintf(&b, "  <useBr>%d</useBr>\n", boolInt(req.UseBr))
	fmt.Fprintf(&b, "  <useP>%d</useP>\n", boolInt(req.UseP))
	fmt.Fprintf(&b, "  <maxNobr>%d</maxNobr>\n", req.MaxNobr)
	fmt.Fprintf(&b, "  <quotes1>%s</quotes1>\n", pipeline.Escape(req.Quotes1))
	fmt.Fprintf(&b, "  <quotes2>%s</quotes2>\n", pipeline.Escape(req.Quotes2))
	b.WriteString(" </ProcessText>\n")
	b.WriteString("</soap:Body>\n")
	b.WriteString("</soap:Envelope>")
	return b.String()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// ExtractResult returns the text between the first ProcessTextResult
// markers of body, undecoded.
func ExtractResult(body string) (string, error) {
	start := strings.Index(body, resultOpen)
	end := strings.Index(body, resultClose)
	if start == -1 || end == -1 || end < start+len(resultOpen) {
		return "", ErrInvalidResponse
	}
	return body[start+len(resultOpen) : end], nil
}
