package main

import (
	"io"
	"os"
	"time"

	docx2html "github.com/alnah/go-docx2html"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// NewConverter builds the conversion service; tests swap in fakes.
	NewConverter func(opts ...docx2html.Option) (CLIConverter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...docx2html.Option) (CLIConverter, error) {
			return docx2html.NewConverter(opts...)
		},
	}
}
