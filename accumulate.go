package pdfpager

import (
	"context"
	"fmt"
	"os"
)

// Discover renders every document once without an offset and returns the
// natural page counts, in input order. Duplicate paths are kept.
func (g *Generator) Discover(ctx context.Context, docs []string) ([]DocumentInfo, error) {
	if len(docs) == 0 {
		return nil, ErrNoDocuments
	}

	infos := make([]DocumentInfo, 0, len(docs))
	for _, doc := range docs {
		pages, err := g.discoverOne(ctx, doc)
		if err != nil {
			return nil, err
		}
		g.logger.Debug("discovered page count", "input", doc, "pages", pages)
		infos = append(infos, DocumentInfo{Path: doc, Pages: pages})
	}
	return infos, nil
}

func (g *Generator) discoverOne(ctx context.Context, doc string) (int, error) {
	src, err := g.workspace.Resolve(doc)
	if err != nil {
		return 0, err
	}

	out := g.workspace.TempPath(".pdf")
	defer func() { _ = os.Remove(out) }()

	if err := g.typesetter.Render(ctx, src, out); err != nil {
		return 0, err
	}
	pages, err := g.toolkit.PageCount(out)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", doc, err)
	}
	return pages, nil
}

// PlanOffsets folds natural page counts into per-document offsets, starting
// from initial. With a parity constraint, an offset of the wrong parity is
// bumped by one and the entry is marked PadBefore; the bumped value carries
// into every later offset.
func PlanOffsets(infos []DocumentInfo, initial int, parity Parity) []PlanEntry {
	plan := make([]PlanEntry, 0, len(infos))
	cumulative := initial
	for _, info := range infos {
		pad := parity.NeedsPad(cumulative)
		if pad {
			cumulative++
		}
		plan = append(plan, PlanEntry{DocumentInfo: info, Offset: cumulative, PadBefore: pad})
		cumulative += info.Pages
	}
	return plan
}

// GenerateAll runs Generate for every plan entry, writing each result to a
// fresh workspace file. Processing is strictly sequential.
func (g *Generator) GenerateAll(ctx context.Context, plan []PlanEntry) ([]Rendered, error) {
	if len(plan) == 0 {
		return nil, ErrNoDocuments
	}

	out := make([]Rendered, 0, len(plan))
	for _, entry := range plan {
		if entry.Offset < 0 {
			return nil, fmt.Errorf("%w: %d for %s (must be >= 0)", ErrInvalidOffset, entry.Offset, entry.Path)
		}
		r, err := g.Generate(ctx, entry.Path, entry.Offset, g.workspace.TempPath(".pdf"))
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", entry.Path, err)
		}
		if r.Pages != entry.Pages {
			g.logger.Warn("page count differs from discovery render",
				"input", entry.Path, "discovered", entry.Pages, "rendered", r.Pages)
		}
		r.PadBefore = entry.PadBefore
		g.logger.Info("regenerated document", "input", entry.Path, "offset", entry.Offset, "path", r.Path)
		out = append(out, *r)
	}
	return out, nil
}
