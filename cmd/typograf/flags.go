package main

import (
	"io"
	"time"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// quoteFlags holds quote style flags.
type quoteFlags struct {
	primary   string
	secondary string
}

// markupFlags holds line break and paragraph flags.
type markupFlags struct {
	br      bool
	brTag   string
	p       bool
	pOpen   string
	pClose  string
	maxNobr int
}

// serviceFlags holds remote service flags.
type serviceFlags struct {
	endpoint  string
	timeout   time.Duration
	retries   int
	rateLimit float64
}

// processFlags holds all flags for the process command.
type processFlags struct {
	common  commonFlags
	text    string
	output  string
	format  string
	preview bool
	copy    bool
	workers int
	quotes  quoteFlags
	markup  markupFlags
	service serviceFlags

	// set records flags given explicitly, so zero values can override config.
	set map[string]bool
}

// changed reports whether the named flag was given on the command line.
func (f *processFlags) changed(name string) bool {
	return f.set[name]
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs")
}

// addQuoteFlags adds quote style flags to a FlagSet.
func addQuoteFlags(fs *flag.FlagSet, f *quoteFlags) {
	fs.StringVar(&f.primary, "quotes1", "", "first-level quotes: french, german, english-double, programmer, english-single")
	fs.StringVar(&f.secondary, "quotes2", "", "nested quotes (same styles)")
}

// addMarkupFlags adds line break and paragraph flags to a FlagSet.
func addMarkupFlags(fs *flag.FlagSet, f *markupFlags) {
	fs.BoolVar(&f.br, "br", false, "mark line breaks")
	fs.StringVar(&f.brTag, "br-tag", "", "line break delimiter (default \"<br />\")")
	fs.BoolVar(&f.p, "p", false, "wrap paragraphs")
	fs.StringVar(&f.pOpen, "p-open", "", "paragraph opening delimiter (default \"<p>\")")
	fs.StringVar(&f.pClose, "p-close", "", "paragraph closing delimiter (default \"</p>\")")
	fs.IntVar(&f.maxNobr, "max-nobr", 0, "keep words up to this length unbroken (0 = off)")
}

// addServiceFlags adds remote service flags to a FlagSet.
func addServiceFlags(fs *flag.FlagSet, f *serviceFlags) {
	fs.StringVar(&f.endpoint, "endpoint", "", "typography service URL")
	fs.DurationVarP(&f.timeout, "timeout", "t", 0, "request timeout (e.g., 10s, 1m)")
	fs.IntVar(&f.retries, "retries", 0, "retries for failed requests (0-10)")
	fs.Float64Var(&f.rateLimit, "rate-limit", 0, "max requests per second (0 = unlimited)")
}

// parseProcessFlags parses process command flags and returns positional args.
// Parse errors and usage go to w.
func parseProcessFlags(args []string, w io.Writer) (*processFlags, []string, error) {
	fs := flag.NewFlagSet("process", flag.ContinueOnError)
	fs.SetOutput(w)
	f := &processFlags{set: make(map[string]bool)}

	// I/O flags
	fs.StringVar(&f.text, "text", "", "text to process instead of a file")
	fs.StringVarP(&f.output, "output", "o", "", "output file (single input) or directory (batch)")
	fs.StringVarP(&f.format, "format", "f", "", "entity format: named, numeric, unicode")
	fs.BoolVar(&f.preview, "preview", false, "also print the result as plain text")
	fs.BoolVar(&f.copy, "copy", false, "copy the result to the clipboard")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directories (0 = auto)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addQuoteFlags(fs, &f.quotes)
	addMarkupFlags(fs, &f.markup)
	addServiceFlags(fs, &f.service)

	fs.Usage = func() { printProcessUsage(w) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, fs.Args(), nil
}
