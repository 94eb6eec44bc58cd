package pdfpager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Pruner removes the leading empty pages left behind by injected breaks.
type Pruner struct {
	toolkit PDFToolkit
	logger  *slog.Logger
}

// NewPruner creates a Pruner. Use WithToolkit and WithLogger to customize it.
func NewPruner(opts ...Option) *Pruner {
	s := newSettings(opts)
	return &Pruner{toolkit: s.toolkit, logger: s.logger}
}

// Prune scans src from the first page and deletes pages whose text is empty
// until expected pages are gone, then saves the result to dst and returns
// its page count. A non-empty page is skipped, not deleted, so a renderer
// that emits content before the breaks resolve is tolerated.
//
// Finding fewer than expected empty pages returns a *PruneError and leaves
// no file at dst.
func (p *Pruner) Prune(ctx context.Context, src, dst string, expected int) (int, error) {
	if expected < 0 {
		return 0, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidOffset, expected)
	}

	doc, err := p.toolkit.Open(src)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", src, err)
	}
	defer func() { _ = doc.Close() }()

	removed, page := 0, 0
	for removed < expected && page < doc.PageCount() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		text, err := doc.PageText(page)
		if err != nil {
			return 0, fmt.Errorf("extracting text of page %d of %s: %w", page, src, err)
		}
		if strings.TrimSpace(text) != "" {
			page++
			continue
		}
		if err := doc.DeletePage(page); err != nil {
			return 0, fmt.Errorf("deleting page %d of %s: %w", page, src, err)
		}
		removed++
	}

	if removed != expected {
		return 0, &PruneError{Path: src, Found: removed, Expected: expected}
	}

	if err := doc.Save(dst); err != nil {
		_ = os.Remove(dst)
		return 0, fmt.Errorf("saving %s: %w", dst, err)
	}
	p.logger.Debug("removed empty pages", "path", src, "count", removed)
	return doc.PageCount(), nil
}
