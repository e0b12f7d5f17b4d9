package typograf

import (
	"errors"

	"github.com/alnah/go-typograf/internal/remote"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput  = errors.New("input text cannot be empty")
	ErrServiceCall = errors.New("typography service call failed")

	// ErrInvalidResponse is returned when the service reply has no
	// ProcessTextResult element.
	ErrInvalidResponse = remote.ErrInvalidResponse

	// Options validation errors.
	ErrInvalidQuoteStyle   = errors.New("invalid quote style")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidMaxNobr      = errors.New("invalid maxNobr")

	// Converter configuration errors.
	ErrInvalidEndpoint = errors.New("invalid service endpoint")
)
