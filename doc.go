// Package typograf runs text through the Typograf web service and re-renders
// the result in the caller's preferred surface syntax.
//
// # Quick Start
//
// Create a converter, convert text, and close when done:
//
//	conv, err := typograf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, typograf.Input{
//	    Text: `He said "hello" - twice`,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text)
//
// # Conversion Pipeline
//
// Each conversion follows these stages:
//
//  1. Input truncation to MaxInputLength runes and NFC normalization
//  2. ProcessText SOAP call to the remote service
//  3. Entity decoding and service tag remapping
//  4. Tag stripping, keeping only the caller's delimiters
//  5. Quote normalization per nesting level
//  6. Entity format conversion and break/paragraph cleanup
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := typograf.NewConverter(
//	    typograf.WithTimeout(10 * time.Second),
//	    typograf.WithRetries(2),
//	    typograf.WithLogger(logger),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, typograf.Input{
//	    Text: content,
//	    Options: &typograf.Options{
//	        Quotes1: typograf.QuoteEnglishDouble,
//	        Quotes2: typograf.QuoteEnglishSingle,
//	        Format:  typograf.FormatUnicode,
//	        UseP:    true,
//	    },
//	})
//
// # Parallel Processing
//
// For batch conversion, use ConverterPool. Converters share one rate limiter
// and one result cache when given the same options:
//
//	pool, err := typograf.NewConverterPool(4, typograf.WithRateLimiter(limiter))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
package typograf
