// Package pdfpager assembles multi-document PDFs from Asciidoctor sources so
// that the page numbers each document prints (table of contents, footers)
// match its position in the combined output.
//
// # How Offsets Work
//
// A document that will start on page 12 of a combined PDF is rendered with 11
// forced page breaks inserted after its header. The typesetter then numbers
// its real content from page 12, and the 11 resulting empty pages are pruned
// again before the document is combined:
//
//	ws, err := workspace.New("data")
//	gen := pdfpager.NewGenerator(ws)
//	rendered, err := gen.Generate(ctx, "chapter.adoc", 11, "chapter.pdf")
//
// # Multiple Documents
//
// Discover renders each document once to learn its natural page count,
// PlanOffsets folds those counts into per-document offsets, and the Combiner
// concatenates the offset renders:
//
//	infos, err := gen.Discover(ctx, []string{"a.adoc", "b.adoc"})
//	plan := pdfpager.PlanOffsets(infos, 1, pdfpager.ParityOdd)
//	rendered, err := gen.GenerateAll(ctx, plan)
//	comb := pdfpager.NewCombiner(1, pdfpager.ParityOdd)
//	result, err := comb.Combine(ctx, pdfpager.PartsFromRendered(rendered), "book.pdf")
//
// With a parity constraint, the plan and the combiner share one running
// counter: a blank page is inserted exactly where the plan bumped the offset.
//
// # Overlays
//
// The Compositor stamps each page of an upper PDF onto a contiguous range of
// pages of a base PDF:
//
//	comp := pdfpager.NewCompositor()
//	result, err := comp.Overlay(ctx, pdfpager.OverlayJob{
//	    Base: "content.pdf", Upper: "letterhead.pdf", Index: 0,
//	}, "stamped.pdf")
//
// # Errors
//
// Errors wrap the sentinels declared in this package, so callers match them
// with errors.Is. Three failures carry details and can be unpacked with
// errors.As: *RenderError holds the typesetter's output, *PruneError the
// number of empty pages found, and *OverlayRangeError the page counts that
// did not fit.
//
// # Requirements
//
// Rendering shells out to asciidoctor-pdf by default. Use WithTypesetter or
// NewCommandTypesetter to run a different command.
package pdfpager
