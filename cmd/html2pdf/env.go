package main

import (
	"io"
	"os"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Converter is a single-file converter that owns a rendering engine.
type Converter interface {
	html2pdf.FileConverter
	Close() error
}

// Pool is a closable converter pool for batch mode.
type Pool interface {
	html2pdf.Pool
	Close() error
}

// Compile-time interface implementation checks.
var (
	_ Converter = (*html2pdf.Converter)(nil)
	_ Pool      = (*html2pdf.ConverterPool)(nil)
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader

	// NewConverter and NewPool build the conversion back ends from the
	// resolved options.
	NewConverter func(opts ...html2pdf.Option) (Converter, error)
	NewPool      func(size int, opts ...html2pdf.Option) Pool
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		NewConverter: func(opts ...html2pdf.Option) (Converter, error) {
			return html2pdf.NewConverter(opts...)
		},
		NewPool: func(size int, opts ...html2pdf.Option) Pool {
			return html2pdf.NewConverterPool(size, opts...)
		},
	}
}
