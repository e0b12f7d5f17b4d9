package main

import (
	"errors"
	"os"

	typograf "github.com/alnah/go-typograf"
	"github.com/alnah/go-typograf/internal/config"
)

// Exit codes for the typograf CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful processing
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or input
	ExitIO      = 3 // File not found, permission denied
	ExitService = 4 // Typography service unreachable or malformed reply
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Service errors (exit 4)
	if errors.Is(err, typograf.ErrServiceCall) ||
		errors.Is(err, typograf.ErrInvalidResponse) {
		return ExitService
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, typograf.ErrEmptyInput) ||
		errors.Is(err, typograf.ErrInvalidQuoteStyle) ||
		errors.Is(err, typograf.ErrInvalidOutputFormat) ||
		errors.Is(err, typograf.ErrInvalidMaxNobr) ||
		errors.Is(err, typograf.ErrInvalidEndpoint) {
		return ExitUsage
	}

	return ExitGeneral
}
