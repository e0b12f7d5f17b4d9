package main

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger writing to w.
// Warnings by default, debug with verbose, errors only with quiet.
func newLogger(w io.Writer, quiet, verbose bool) *log.Logger {
	level := log.WarnLevel
	switch {
	case quiet:
		level = log.ErrorLevel
	case verbose:
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: "typograf",
	})
}
