package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	typograf "github.com/alnah/go-typograf"
	"github.com/alnah/go-typograf/internal/config"
	"github.com/alnah/go-typograf/internal/fileutil"
	"github.com/alnah/go-typograf/internal/hints"
)

// outputSuffix marks processed files: notes.txt becomes notes.typograf.txt.
const outputSuffix = "typograf"

// inputExtensions lists the file types picked up in a directory.
var inputExtensions = []string{".txt", ".html", ".htm", ".md"}

// ErrPoolClosed is reported for files left when no converter is available.
var ErrPoolClosed = errors.New("converter pool closed")

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input typograf.Input) (*typograf.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*typograf.Converter)(nil)

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
}

// poolAdapter exposes a *typograf.ConverterPool as a Pool.
type poolAdapter struct {
	pool *typograf.ConverterPool
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() CLIConverter {
	if conv := a.pool.Acquire(); conv != nil {
		return conv
	}
	return nil
}

// Release panics on a converter the pool did not hand out (programmer error).
func (a *poolAdapter) Release(c CLIConverter) {
	conv, ok := c.(*typograf.Converter)
	if !ok {
		panic(fmt.Sprintf("poolAdapter.Release: unexpected type %T", c))
	}
	a.pool.Release(conv)
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// FileToProcess represents a single file to process.
type FileToProcess struct {
	InputPath  string
	OutputPath string
}

// ProcessResult holds the outcome of a single file.
type ProcessResult struct {
	InputPath  string
	OutputPath string
	Truncated  bool
	Err        error
	Duration   time.Duration
}

// runBatch processes every matching file under dir in parallel.
func runBatch(ctx context.Context, dir, outDir string, cfg *config.Config, common commonFlags, logger *log.Logger, env *Environment) error {
	files, err := discoverFiles(dir, outDir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no .txt, .html, .htm or .md files in %s", ErrNoInput, dir)
	}

	var cache *typograf.ResultCache
	if cfg.Batch.CacheSize > 0 {
		cache, err = typograf.NewResultCache(cfg.Batch.CacheSize)
		if err != nil {
			return err
		}
	}

	size := min(typograf.ResolvePoolSize(cfg.Batch.Workers), len(files))
	logger.Debug("starting batch", "files", len(files), "workers", size)

	pool, err := typograf.NewConverterPool(size, converterOptions(cfg, logger, cache)...)
	if err != nil {
		return err
	}
	defer pool.Close()

	results := processBatch(ctx, &poolAdapter{pool: pool}, files, buildOptions(cfg))

	failed := printResults(results, common.quiet, common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
	}
	return nil
}

// discoverFiles walks dir for input files. Outputs go next to each source,
// or under outDir mirroring the source tree. Files carrying the output
// suffix are skipped so reruns do not reprocess results.
func discoverFiles(dir, outDir string) ([]FileToProcess, error) {
	var files []FileToProcess
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !fileutil.HasExtension(path, inputExtensions) || fileutil.IsSuffixed(path, outputSuffix) {
			return nil
		}

		target := ""
		if outDir != "" {
			target = outDir
			if rel, err := filepath.Rel(dir, filepath.Dir(path)); err == nil {
				target = filepath.Join(outDir, rel)
			}
		}
		outPath, err := fileutil.SuffixedPath(path, outputSuffix, target)
		if err != nil {
			return err
		}
		files = append(files, FileToProcess{InputPath: path, OutputPath: outPath})
		return nil
	})
	return files, err
}

// processBatch processes files concurrently using the converter pool.
func processBatch(ctx context.Context, pool Pool, files []FileToProcess, opts *typograf.Options) []ProcessResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))

	results := make([]ProcessResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv == nil {
				for idx := range jobs {
					results[idx] = ProcessResult{InputPath: files[idx].InputPath, Err: ErrPoolClosed}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ProcessResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = processFile(ctx, conv, files[idx], opts)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// processFile processes a single file and returns the result.
func processFile(ctx context.Context, conv CLIConverter, f FileToProcess, opts *typograf.Options) (result ProcessResult) {
	start := time.Now()
	result = ProcessResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}
	defer func() { result.Duration = time.Since(start) }()

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadInput, err)
		return result
	}

	res, err := conv.Convert(ctx, typograf.Input{Text: string(content), Options: opts})
	if err != nil {
		result.Err = err
		return result
	}
	result.Truncated = res.Truncated

	if err := fileutil.WriteFile(f.OutputPath, ensureNewline(res.Text)); err != nil {
		result.Err = fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	return result
}

// ResultSummary holds the count of succeeded and failed files.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Truncated int
}

// countResults tallies the outcome of a batch.
func countResults(results []ProcessResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		default:
			summary.Succeeded++
			if r.Truncated {
				summary.Truncated++
			}
		}
	}
	return summary
}

// printResults outputs per-file outcomes and returns the failure count.
// Failures always go to stderr; quiet hides the rest.
func printResults(results []ProcessResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if r.Truncated && !quiet {
			fmt.Fprintf(env.Stderr, "warning: %s truncated to %d characters\n", r.InputPath, typograf.MaxInputLength)
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}
