package pdfpager

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/alnah/go-pdfpager/internal/fileutil"
)

// Generator renders source documents from a workspace, optionally shifted by
// a page offset.
type Generator struct {
	workspace  Workspace
	typesetter Typesetter
	toolkit    PDFToolkit
	pruner     *Pruner
	logger     *slog.Logger
}

// NewGenerator creates a Generator that resolves documents in ws.
func NewGenerator(ws Workspace, opts ...Option) *Generator {
	s := newSettings(opts)
	return &Generator{
		workspace:  ws,
		typesetter: s.typesetter,
		toolkit:    s.toolkit,
		pruner:     &Pruner{toolkit: s.toolkit, logger: s.logger},
		logger:     s.logger,
	}
}

// Generate renders doc so that its first real page is numbered offset+1,
// and writes the result to output. The offset pages exist only during
// rendering: the output has the document's natural page count.
//
// Breaks are injected into a scratch copy, so the same document can be
// generated again with a different offset.
func (g *Generator) Generate(ctx context.Context, doc string, offset int, output string) (*Rendered, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidOffset, offset)
	}
	g.logger.Info("generating document", "input", doc, "offset", offset, "output", output)

	g.logger.Debug("(1/4) copying source to scratch file", "input", doc)
	src, err := g.workspace.Resolve(doc)
	if err != nil {
		return nil, err
	}
	// The scratch copy sits next to the source so relative includes and
	// image paths still resolve.
	scratch := scratchSibling(src)
	defer func() { _ = os.Remove(scratch) }()
	if err := fileutil.CopyFile(src, scratch); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInject, err)
	}

	g.logger.Debug("(2/4) inserting page breaks", "count", offset)
	if err := InjectBreaks(scratch, offset); err != nil {
		return nil, err
	}

	g.logger.Debug("(3/4) rendering offset PDF")
	rendered := g.workspace.TempPath(".pdf")
	defer func() { _ = os.Remove(rendered) }()
	if err := g.typesetter.Render(ctx, scratch, rendered); err != nil {
		return nil, err
	}

	g.logger.Debug("(4/4) removing inserted empty pages", "count", offset)
	pruned := g.workspace.TempPath(".pdf")
	defer func() { _ = os.Remove(pruned) }()
	pages, err := g.pruner.Prune(ctx, rendered, pruned, offset)
	if err != nil {
		return nil, err
	}

	if err := fileutil.MoveFile(pruned, output); err != nil {
		return nil, fmt.Errorf("writing %s: %w", output, err)
	}
	g.logger.Info("generated document", "output", output, "pages", pages)

	return &Rendered{Source: doc, Path: output, Offset: offset, Pages: pages}, nil
}

func scratchSibling(path string) string {
	return filepath.Join(filepath.Dir(path), "."+uuid.NewString()+filepath.Ext(path))
}
