package main

// Notes:
// - exitCodeFor: we test sentinel errors from the library, config and CLI,
//   plus wrapped errors to verify the errors.Is() chain.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	typograf "github.com/alnah/go-typograf"
	"github.com/alnah/go-typograf/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Service errors (exit 4)
		{"service call", typograf.ErrServiceCall, ExitService},
		{"invalid response", typograf.ErrInvalidResponse, ExitService},
		{"wrapped service call", fmt.Errorf("a.txt: %w", typograf.ErrServiceCall), ExitService},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"wrapped file not exist", fmt.Errorf("%w: %w", ErrReadInput, os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid config", config.ErrInvalidConfig, ExitUsage},
		{"empty input", typograf.ErrEmptyInput, ExitUsage},
		{"invalid quote style", typograf.ErrInvalidQuoteStyle, ExitUsage},
		{"invalid format", typograf.ErrInvalidOutputFormat, ExitUsage},
		{"invalid maxNobr", typograf.ErrInvalidMaxNobr, ExitUsage},
		{"invalid endpoint", typograf.ErrInvalidEndpoint, ExitUsage},
		{"wrapped config", fmt.Errorf("loading config: %w", config.ErrConfigParse), ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"canceled", context.Canceled, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 || ExitGeneral != 1 || ExitUsage != 2 {
		t.Errorf("Unix conventions broken: success=%d general=%d usage=%d", ExitSuccess, ExitGeneral, ExitUsage)
	}
	for _, code := range []int{ExitIO, ExitService} {
		if code >= 126 {
			t.Errorf("custom exit code %d must be below 126", code)
		}
	}
}
