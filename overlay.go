package pdfpager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/alnah/go-pdfpager/internal/fileutil"
)

// Compositor overlays the pages of one PDF onto another.
type Compositor struct {
	toolkit PDFToolkit
	logger  *slog.Logger
}

// OverlayResult lists what happened to each base page in the overlay range.
type OverlayResult struct {
	Composited []int // base page indices that received an upper page
	Skipped    []int // base page indices whose upper page could not be composited
}

// NewCompositor creates a Compositor.
func NewCompositor(opts ...Option) *Compositor {
	s := newSettings(opts)
	return &Compositor{toolkit: s.toolkit, logger: s.logger}
}

// Overlay composites upper page k onto base page job.Index+k for every page
// of job.Upper, using the base page as the canvas, and writes the result to
// output. Pages outside the range are carried over unchanged.
//
// An upper page that cannot be composited (ErrComposite) is skipped and
// reported in the result. Validation failures and other errors leave no
// file at output.
func (c *Compositor) Overlay(ctx context.Context, job OverlayJob, output string) (*OverlayResult, error) {
	if job.Index < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidIndex, job.Index)
	}

	basePages, err := c.toolkit.PageCount(job.Base)
	if err != nil {
		return nil, fmt.Errorf("reading base %s: %w", job.Base, err)
	}
	upperPages, err := c.toolkit.PageCount(job.Upper)
	if err != nil {
		return nil, fmt.Errorf("reading upper %s: %w", job.Upper, err)
	}

	end := job.Index + upperPages
	if end > basePages {
		return nil, &OverlayRangeError{Index: job.Index, BasePages: basePages, UpperPages: upperPages}
	}

	tmp, err := tempSibling(output)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmp) }()
	if err := fileutil.CopyFile(job.Base, tmp); err != nil {
		return nil, fmt.Errorf("copying base %s: %w", job.Base, err)
	}

	c.logger.Info("overlaying", "base", job.Base, "upper", job.Upper, "from", job.Index, "to", end)

	result := &OverlayResult{}
	for page := job.Index; page < end; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		upper := page - job.Index
		c.logger.Debug("overlaying page", "base_page", page, "upper_page", upper)

		err := c.toolkit.Stamp(tmp, page, job.Upper, upper)
		switch {
		case err == nil:
			result.Composited = append(result.Composited, page)
		case errors.Is(err, ErrComposite):
			c.logger.Warn("skipping upper page", "upper_page", upper, "error", err)
			result.Skipped = append(result.Skipped, page)
		default:
			return nil, fmt.Errorf("overlaying base page %d: %w", page, err)
		}
	}

	if err := os.Rename(tmp, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	c.logger.Info("saved overlay", "output", output)
	return result, nil
}
