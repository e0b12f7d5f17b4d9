// Package pipeline implements the markup re-rendering pipeline.
//
// The remote typography service returns a fragment of HTML-like markup with
// its own choice of entities, quote glyphs and tags. This package rewrites
// that fragment into the caller's preferred surface syntax:
//   - Transport layer decoding and HTML entity decoding
//   - Service tag remapping (<br>, <p>) onto caller-defined delimiters
//   - Stripping of every other tag, shielding the caller's delimiters
//   - Quote glyph normalization per nesting level
//   - Entity format conversion (named, numeric, literal unicode)
//   - Line break and paragraph whitespace cleanup
//
// Every stage is a total function over strings: absence of a match is a
// no-op and no stage returns an error. Caller-supplied delimiters are always
// matched as literal text, never as patterns.
//
// The remote call itself lives in internal/remote. This separation keeps the
// pipeline pure and testable without a network.
package pipeline
