package pdfpager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Combiner concatenates PDFs into one output, inserting blank pages where a
// parity constraint requires them.
type Combiner struct {
	initial  int
	parity   Parity
	toolkit  PDFToolkit
	pageSize PageSize
	logger   *slog.Logger
}

// CombineResult summarizes a combined document.
type CombineResult struct {
	Pages       int // total pages written
	PaddedPages int // blank pages inserted for parity
}

// NewCombiner creates a Combiner whose running counter starts at initial,
// the same initial offset used for PlanOffsets.
func NewCombiner(initial int, parity Parity, opts ...Option) *Combiner {
	s := newSettings(opts)
	return &Combiner{
		initial:  initial,
		parity:   parity,
		toolkit:  s.toolkit,
		pageSize: s.pageSize,
		logger:   s.logger,
	}
}

// Combine appends parts to output in order. Before each part, including the
// first, the counter (initial offset plus pages combined so far) is checked
// against the parity constraint exactly as PlanOffsets does. A part with a
// planned offset must start at that counter, or ErrOffsetDrift is returned.
//
// The output is written through a temporary file and only appears at output
// on success. Inputs are never modified.
func (c *Combiner) Combine(ctx context.Context, parts []Part, output string) (*CombineResult, error) {
	if len(parts) == 0 {
		return nil, ErrNoDocuments
	}
	if c.initial < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidOffset, c.initial)
	}

	scratch, err := os.MkdirTemp("", "pdfpager-combine-*")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	blank := ""
	inputs := make([]string, 0, len(parts))
	result := &CombineResult{}
	counter := c.initial

	for _, part := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if c.parity.NeedsPad(counter) {
			if blank == "" {
				blank = filepath.Join(scratch, "blank.pdf")
				if err := c.toolkit.WriteBlankPage(blank, c.pageSize.Width, c.pageSize.Height); err != nil {
					return nil, fmt.Errorf("creating blank page: %w", err)
				}
			}
			c.logger.Debug("inserting parity page", "before", part.Path, "counter", counter)
			inputs = append(inputs, blank)
			result.PaddedPages++
			counter++
		}

		if part.Offset >= 0 && part.Offset != counter {
			return nil, fmt.Errorf("%w: %s planned at %d, combined at %d", ErrOffsetDrift, part.Path, part.Offset, counter)
		}

		pages, err := c.toolkit.PageCount(part.Path)
		if err != nil {
			return nil, fmt.Errorf("counting pages of %s: %w", part.Path, err)
		}
		inputs = append(inputs, part.Path)
		counter += pages
	}

	result.Pages = counter - c.initial

	tmp, err := tempSibling(output)
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.Remove(tmp) }()

	if err := c.toolkit.Merge(inputs, tmp); err != nil {
		return nil, fmt.Errorf("merging into %s: %w", output, err)
	}

	got, err := c.toolkit.PageCount(tmp)
	if err != nil {
		return nil, fmt.Errorf("counting pages of combined output: %w", err)
	}
	if got != result.Pages {
		return nil, fmt.Errorf("%w: %d pages, want %d", ErrPageCountChange, got, result.Pages)
	}

	if err := os.Rename(tmp, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	c.logger.Info("combined PDF saved", "output", output, "pages", result.Pages, "padded", result.PaddedPages)
	return result, nil
}

// tempSibling reserves a temporary file in the directory of path, so the
// final rename stays on one filesystem.
func tempSibling(path string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(path), ".pdfpager-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temporary output: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("creating temporary output: %w", err)
	}
	return name, nil
}
