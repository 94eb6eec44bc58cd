package main

import (
	"context"
	"errors"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/hints"
)

// CLI errors.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrWriteOutput = errors.New("cannot write output")
)

// hintFor returns the hint appended to a command error, or "".
func hintFor(err error) string {
	var renderErr *pdfpager.RenderError
	if errors.As(err, &renderErr) {
		if errors.Is(renderErr.Err, context.DeadlineExceeded) {
			return hints.ForTimeout()
		}
		argv0 := ""
		if len(renderErr.Command) > 0 {
			argv0 = renderErr.Command[0]
		}
		return hints.ForRenderFailure(argv0)
	}

	var rangeErr *pdfpager.OverlayRangeError
	if errors.As(err, &rangeErr) {
		return hints.ForOverlayRange(rangeErr.BasePages, rangeErr.UpperPages)
	}

	switch {
	case errors.Is(err, pdfpager.ErrPruneMismatch):
		return hints.ForPruneMismatch()
	case errors.Is(err, pdfpager.ErrOffsetDrift):
		return hints.ForOffsetDrift()
	case errors.Is(err, ErrWriteOutput):
		return hints.ForOutputDirectory()
	}
	return ""
}
