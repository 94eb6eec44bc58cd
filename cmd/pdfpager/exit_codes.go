package main

import (
	"errors"
	"os"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/config"
	"github.com/alnah/go-pdfpager/internal/workspace"
)

// Exit codes for the pdfpager CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitRender  = 4 // Renderer failure or broken page invariant
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Render and invariant errors (exit 4)
	if errors.Is(err, pdfpager.ErrRender) ||
		errors.Is(err, pdfpager.ErrPruneMismatch) ||
		errors.Is(err, pdfpager.ErrOffsetDrift) ||
		errors.Is(err, pdfpager.ErrPageCountChange) {
		return ExitRender
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, pdfpager.ErrNoDocuments) ||
		errors.Is(err, pdfpager.ErrInvalidOffset) ||
		errors.Is(err, pdfpager.ErrInvalidIndex) ||
		errors.Is(err, pdfpager.ErrOverlayRange) ||
		errors.Is(err, pdfpager.ErrInvalidParity) ||
		errors.Is(err, pdfpager.ErrInvalidPageSize) ||
		errors.Is(err, pdfpager.ErrInvalidRenderCommand) ||
		errors.Is(err, workspace.ErrOutsideWorkspace) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, workspace.ErrTemplateNotFound) ||
		errors.Is(err, workspace.ErrSourceNotFound) ||
		errors.Is(err, pdfpager.ErrInject) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
