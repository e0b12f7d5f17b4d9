package main

import (
	"errors"
	"io"
	"testing"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-typograf/internal/config"
)

// ---------------------------------------------------------------------------
// TestParseProcessFlags
// ---------------------------------------------------------------------------

func TestParseProcessFlags(t *testing.T) {
	t.Parallel()

	args := []string{
		"in.txt",
		"--quotes1", "english-double", "--quotes2", "programmer",
		"-f", "numeric", "--br", "--p=false", "--br-tag", "<br>",
		"--max-nobr", "3", "-t", "15s", "--retries", "2", "--rate-limit", "0.5",
		"-w", "4", "-o", "out", "-c", "work", "-v",
	}

	f, positional, err := parseProcessFlags(args, io.Discard)
	if err != nil {
		t.Fatalf("parseProcessFlags() error = %v", err)
	}

	if len(positional) != 1 || positional[0] != "in.txt" {
		t.Errorf("positional = %v, want [in.txt]", positional)
	}
	if f.quotes.primary != "english-double" || f.quotes.secondary != "programmer" {
		t.Errorf("quotes = %+v", f.quotes)
	}
	if f.format != "numeric" || f.output != "out" || f.workers != 4 {
		t.Errorf("io flags = format %q output %q workers %d", f.format, f.output, f.workers)
	}
	if !f.markup.br || f.markup.p || f.markup.brTag != "<br>" || f.markup.maxNobr != 3 {
		t.Errorf("markup = %+v", f.markup)
	}
	if f.service.timeout != 15*time.Second || f.service.retries != 2 || f.service.rateLimit != 0.5 {
		t.Errorf("service = %+v", f.service)
	}
	if f.common.config != "work" || !f.common.verbose || f.common.quiet {
		t.Errorf("common = %+v", f.common)
	}
	for _, name := range []string{"br", "p", "max-nobr", "timeout", "retries", "rate-limit", "workers"} {
		if !f.changed(name) {
			t.Errorf("changed(%q) = false", name)
		}
	}
	if f.changed("preview") {
		t.Error(`changed("preview") = true, want false`)
	}
}

func TestParseProcessFlags_Errors(t *testing.T) {
	t.Parallel()

	if _, _, err := parseProcessFlags([]string{"--unknown"}, io.Discard); err == nil {
		t.Error("expected error for unknown flag")
	}
	if _, _, err := parseProcessFlags([]string{"--timeout", "soon"}, io.Discard); err == nil {
		t.Error("expected error for malformed duration")
	}
	if _, _, err := parseProcessFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("-h error = %v, want ErrHelp", err)
	}
}

func TestParseProcessFlags_Stdin(t *testing.T) {
	t.Parallel()

	_, positional, err := parseProcessFlags([]string{"-", "-q"}, io.Discard)
	if err != nil {
		t.Fatalf("parseProcessFlags() error = %v", err)
	}
	if len(positional) != 1 || positional[0] != "-" {
		t.Errorf("positional = %v, want [-]", positional)
	}
}

// ---------------------------------------------------------------------------
// TestMergeFlags - CLI values override config values
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		args  []string
		setup func(*config.Config)
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keep config",
			setup: func(c *config.Config) {
				c.Breaks.Enabled = true
				c.Service.Retries = 4
			},
			check: func(t *testing.T, c *config.Config) {
				if !c.Breaks.Enabled || c.Service.Retries != 4 {
					t.Errorf("config changed: %+v", c)
				}
			},
		},
		{
			name: "explicit false disables config value",
			args: []string{"--br=false", "--p=false"},
			setup: func(c *config.Config) {
				c.Breaks.Enabled = true
				c.Paragraphs.Enabled = true
			},
			check: func(t *testing.T, c *config.Config) {
				if c.Breaks.Enabled || c.Paragraphs.Enabled {
					t.Errorf("breaks %v paragraphs %v, want both off", c.Breaks.Enabled, c.Paragraphs.Enabled)
				}
			},
		},
		{
			name: "custom delimiters enable their stage",
			args: []string{"--br-tag", "$br$", "--p-open", "[[", "--p-close", "]]"},
			check: func(t *testing.T, c *config.Config) {
				if !c.Breaks.Enabled || c.Breaks.Tag != "$br$" {
					t.Errorf("Breaks = %+v", c.Breaks)
				}
				if !c.Paragraphs.Enabled || c.Paragraphs.Open != "[[" || c.Paragraphs.Close != "]]" {
					t.Errorf("Paragraphs = %+v", c.Paragraphs)
				}
			},
		},
		{
			name: "explicit zero overrides config",
			args: []string{"--retries", "0", "--rate-limit", "0", "-w", "0", "--max-nobr", "0"},
			setup: func(c *config.Config) {
				c.Service.Retries = 3
				c.Service.RateLimit = 2
				c.Service.MaxNobr = 3
				c.Batch.Workers = 8
			},
			check: func(t *testing.T, c *config.Config) {
				if c.Service.Retries != 0 || c.Service.RateLimit != 0 || c.Service.MaxNobr != 0 || c.Batch.Workers != 0 {
					t.Errorf("zero flags ignored: service %+v batch %+v", c.Service, c.Batch)
				}
			},
		},
		{
			name: "typography and service",
			args: []string{"--quotes1", "german", "--quotes2", "french", "-f", "unicode", "--endpoint", "http://x/soap", "-t", "3s", "--preview", "--copy"},
			check: func(t *testing.T, c *config.Config) {
				if c.Quotes.Primary != "german" || c.Quotes.Secondary != "french" || c.Output.Format != "unicode" {
					t.Errorf("typography = %+v %+v", c.Quotes, c.Output)
				}
				if c.Service.Endpoint != "http://x/soap" || c.Service.Timeout != 3*time.Second {
					t.Errorf("Service = %+v", c.Service)
				}
				if !c.Output.Preview || !c.Output.Copy {
					t.Errorf("Output = %+v", c.Output)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _, err := parseProcessFlags(tt.args, io.Discard)
			if err != nil {
				t.Fatalf("parseProcessFlags() error = %v", err)
			}
			cfg := config.DefaultConfig()
			if tt.setup != nil {
				tt.setup(cfg)
			}
			mergeFlags(f, cfg)
			tt.check(t, cfg)
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuildOptions / TestConverterOptions
// ---------------------------------------------------------------------------

func TestBuildOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Paragraphs.Enabled = true
	cfg.Service.MaxNobr = 2

	opts := buildOptions(cfg)
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if opts.Quotes1 != "french" || opts.Quotes2 != "german" || opts.Format != "named" {
		t.Errorf("typography = %+v", opts)
	}
	if opts.UseBr || !opts.UseP || opts.POpen != "<p>" || opts.MaxNobr != 2 {
		t.Errorf("markup = %+v", opts)
	}
}

func TestConverterOptions(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	base := len(converterOptions(cfg, discardLogger(), nil))

	cfg.Service.RateLimit = 5
	if got := len(converterOptions(cfg, discardLogger(), nil)); got != base+1 {
		t.Errorf("rate limit option count = %d, want %d", got, base+1)
	}

	cfg.Service.Endpoint = ""
	cfg.Service.Timeout = 0
	if got := len(converterOptions(cfg, discardLogger(), nil)); got != base-1 {
		t.Errorf("empty endpoint/timeout option count = %d, want %d", got, base-1)
	}
}
