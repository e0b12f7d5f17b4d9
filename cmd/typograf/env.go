package main

import (
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
)

// Environment holds injectable dependencies for testability.
// Includes I/O streams, terminal detection and the system clipboard.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinPiped reports whether input is piped rather than typed.
	StdinPiped func() bool

	// CopyToClipboard writes text to the system clipboard.
	CopyToClipboard func(text string) error

	// ClipboardAvailable reports whether a clipboard backend exists.
	ClipboardAvailable func() bool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:              os.Stdin,
		Stdout:             os.Stdout,
		Stderr:             os.Stderr,
		StdinPiped:         stdinPiped,
		CopyToClipboard:    clipboard.WriteAll,
		ClipboardAvailable: func() bool { return !clipboard.Unsupported },
	}
}

// stdinPiped reports whether stdin is not an interactive terminal.
func stdinPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}
