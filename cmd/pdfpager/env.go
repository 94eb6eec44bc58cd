package main

import (
	"io"
	"os"

	pdfpager "github.com/alnah/go-pdfpager"
)

// Environment holds injectable dependencies for testability.
// Typesetter and Toolkit are nil in production; tests set them to fakes.
type Environment struct {
	Stdout     io.Writer
	Stderr     io.Writer
	Getenv     func(string) string
	Environ    func() []string
	Typesetter pdfpager.Typesetter
	Toolkit    pdfpager.PDFToolkit
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

func (e *Environment) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}
