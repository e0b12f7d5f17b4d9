package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"
	"golang.org/x/time/rate"

	typograf "github.com/alnah/go-typograf"
	"github.com/alnah/go-typograf/internal/config"
	"github.com/alnah/go-typograf/internal/fileutil"
	"github.com/alnah/go-typograf/internal/hints"
	"github.com/alnah/go-typograf/internal/remote"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrNoInput     = errors.New("no input specified")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// previewSeparator precedes the plain text preview on stdout.
const previewSeparator = "--- preview ---"

// source is the resolved input of a process run. Exactly one of text
// (already read) or dir is meaningful.
type source struct {
	text string
	name string // file path, "-" for stdin, "" for --text
	dir  string
}

// runProcess orchestrates a single or batch run.
func runProcess(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseProcessFlags(args, env.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	configureMaxProcs(logger.Debugf)
	warnUnknownEnvVars(logger)

	envCfg := loadEnvConfig(logger)
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	cfg, err := resolveConfig(configName)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	src, err := resolveSource(flags.text, positional, env)
	if err != nil {
		return err
	}

	if src.dir != "" {
		outDir := flags.output
		if outDir == "" {
			outDir = cfg.Output.DefaultDir
		}
		return runBatch(ctx, src.dir, outDir, cfg, flags.common, logger, env)
	}
	return runSingle(ctx, src, flags.output, cfg, flags.common, logger, env)
}

// resolveConfig loads the named config, or the defaults when name is empty.
func resolveConfig(name string) (*config.Config, error) {
	if name == "" {
		return config.DefaultConfig(), nil
	}
	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *processFlags, cfg *config.Config) {
	// Quotes and format
	if flags.quotes.primary != "" {
		cfg.Quotes.Primary = flags.quotes.primary
	}
	if flags.quotes.secondary != "" {
		cfg.Quotes.Secondary = flags.quotes.secondary
	}
	if flags.format != "" {
		cfg.Output.Format = flags.format
	}

	// Line breaks: a custom tag turns breaks on unless --br was given
	if flags.markup.brTag != "" {
		cfg.Breaks.Tag = flags.markup.brTag
		cfg.Breaks.Enabled = true
	}
	if flags.changed("br") {
		cfg.Breaks.Enabled = flags.markup.br
	}

	// Paragraphs: same rule for custom delimiters
	if flags.markup.pOpen != "" {
		cfg.Paragraphs.Open = flags.markup.pOpen
		cfg.Paragraphs.Enabled = true
	}
	if flags.markup.pClose != "" {
		cfg.Paragraphs.Close = flags.markup.pClose
		cfg.Paragraphs.Enabled = true
	}
	if flags.changed("p") {
		cfg.Paragraphs.Enabled = flags.markup.p
	}

	// Output
	if flags.preview {
		cfg.Output.Preview = true
	}
	if flags.copy {
		cfg.Output.Copy = true
	}

	// Service
	if flags.service.endpoint != "" {
		cfg.Service.Endpoint = flags.service.endpoint
	}
	if flags.changed("timeout") {
		cfg.Service.Timeout = flags.service.timeout
	}
	if flags.changed("retries") {
		cfg.Service.Retries = flags.service.retries
	}
	if flags.changed("rate-limit") {
		cfg.Service.RateLimit = flags.service.rateLimit
	}
	if flags.changed("max-nobr") {
		cfg.Service.MaxNobr = flags.markup.maxNobr
	}
	if flags.changed("workers") {
		cfg.Batch.Workers = flags.workers
	}
}

// resolveSource picks the input: --text, a file or directory argument,
// "-" for stdin, or piped stdin when no argument is given.
func resolveSource(text string, positional []string, env *Environment) (*source, error) {
	if len(positional) > 1 {
		return nil, fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(positional))
	}

	if text != "" {
		if len(positional) > 0 {
			return nil, fmt.Errorf("%w: --text cannot be combined with %s", ErrUsage, positional[0])
		}
		return &source{text: text}, nil
	}

	if len(positional) == 0 {
		if !env.StdinPiped() {
			return nil, fmt.Errorf("%w: pass a file, a directory, --text or pipe text to stdin", ErrNoInput)
		}
		return readStdin(env)
	}

	arg := positional[0]
	if arg == "-" {
		return readStdin(env)
	}

	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if info.IsDir() {
		return &source{dir: arg}, nil
	}

	data, err := os.ReadFile(arg) // #nosec G304 -- input path is user-provided
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	return &source{text: string(data), name: arg}, nil
}

// readStdin reads the whole of stdin.
func readStdin(env *Environment) (*source, error) {
	data, err := io.ReadAll(env.Stdin)
	if err != nil {
		return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
	}
	return &source{text: string(data), name: "-"}, nil
}

// buildOptions maps config onto library options.
func buildOptions(cfg *config.Config) *typograf.Options {
	return &typograf.Options{
		Quotes1: typograf.QuoteStyle(cfg.Quotes.Primary),
		Quotes2: typograf.QuoteStyle(cfg.Quotes.Secondary),
		Format:  typograf.OutputFormat(cfg.Output.Format),
		UseBr:   cfg.Breaks.Enabled,
		BrTag:   cfg.Breaks.Tag,
		UseP:    cfg.Paragraphs.Enabled,
		POpen:   cfg.Paragraphs.Open,
		PClose:  cfg.Paragraphs.Close,
		MaxNobr: cfg.Service.MaxNobr,
	}
}

// converterOptions maps config onto converter options. A positive rate
// limit gets one limiter shared by every converter built from the result.
// cache may be nil.
func converterOptions(cfg *config.Config, logger *log.Logger, cache *typograf.ResultCache) []typograf.Option {
	opts := []typograf.Option{
		typograf.WithRetries(cfg.Service.Retries),
		typograf.WithLogger(logger),
	}
	if cfg.Service.Endpoint != "" {
		opts = append(opts, typograf.WithEndpoint(cfg.Service.Endpoint))
	}
	if cfg.Service.Timeout > 0 {
		opts = append(opts, typograf.WithTimeout(cfg.Service.Timeout))
	}
	if cfg.Service.RateLimit > 0 {
		opts = append(opts, typograf.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.Service.RateLimit), 1)))
	}
	if cache != nil {
		opts = append(opts, typograf.WithResultCache(cache))
	}
	return opts
}

// runSingle processes one text and writes it to stdout or outputPath.
func runSingle(ctx context.Context, src *source, outputPath string, cfg *config.Config, common commonFlags, logger *log.Logger, env *Environment) error {
	conv, err := typograf.NewConverter(converterOptions(cfg, logger, nil)...)
	if err != nil {
		return err
	}
	defer conv.Close()

	res, err := conv.Convert(ctx, typograf.Input{
		Text:    src.text,
		Options: buildOptions(cfg),
		Preview: cfg.Output.Preview,
	})
	if err != nil {
		if src.name != "" && src.name != "-" {
			err = fmt.Errorf("%s: %w", src.name, err)
		}
		return withServiceHint(err, conv.Endpoint())
	}

	if res.Truncated && !common.quiet {
		fmt.Fprintf(env.Stderr, "warning: input truncated from %d to %d characters%s\n",
			res.OriginalLength, typograf.MaxInputLength, hints.ForTruncation(typograf.MaxInputLength))
	}

	if outputPath != "" {
		if err := fileutil.WriteFile(outputPath, ensureNewline(res.Text)); err != nil {
			return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
		}
		if !common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
		}
	} else {
		fmt.Fprint(env.Stdout, ensureNewline(res.Text))
	}

	if cfg.Output.Preview {
		fmt.Fprintln(env.Stdout, previewSeparator)
		fmt.Fprint(env.Stdout, ensureNewline(res.Preview))
	}

	if cfg.Output.Copy {
		if err := env.CopyToClipboard(res.Text); err != nil {
			logger.Warn("clipboard copy failed: "+err.Error()+hints.ForClipboard())
		} else {
			logger.Debug("copied result to clipboard")
		}
	}

	return nil
}

// withServiceHint appends troubleshooting hints to service errors.
func withServiceHint(err error, endpoint string) error {
	switch {
	case isTimeout(err):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, typograf.ErrInvalidResponse):
		return fmt.Errorf("%w%s", err, hints.ForInvalidResponse())
	case errors.Is(err, typograf.ErrServiceCall):
		return fmt.Errorf("%w%s", err, hints.ForServiceCall(endpoint, remote.DefaultEndpoint))
	}
	return err
}

// isTimeout reports deadline and client timeout errors.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// ensureNewline terminates s with a newline.
func ensureNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
