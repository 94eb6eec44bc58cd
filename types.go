package pdfpager

import (
	"context"
	"fmt"
	"strings"
)

// Parity constrains the page offset at which each document starts.
type Parity int

// Parity values.
const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// ParseParity converts "odd", "even" or "" (no constraint) to a Parity.
// Comparison is case-insensitive.
func ParseParity(s string) (Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ParityNone, nil
	case "odd":
		return ParityOdd, nil
	case "even":
		return ParityEven, nil
	}
	return ParityNone, fmt.Errorf("%w: %q (must be odd or even)", ErrInvalidParity, s)
}

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	}
	return ""
}

// NeedsPad reports whether a document about to start after counter pages
// must be pushed back by one page to satisfy the constraint.
func (p Parity) NeedsPad(counter int) bool {
	even := counter%2 == 0
	switch p {
	case ParityOdd:
		return even
	case ParityEven:
		return !even
	}
	return false
}

// Page size names accepted by ParsePageSize.
const (
	PageSizeA4     = "a4"
	PageSizeLetter = "letter"
	PageSizeLegal  = "legal"
)

// PageSize is a physical page size in PDF points (1/72 inch).
type PageSize struct {
	Width  float64
	Height float64
}

// DefaultBlankPageSize is the size of inserted parity pages.
var DefaultBlankPageSize = PageSize{Width: 595, Height: 842}

// ParsePageSize resolves a named page size (case-insensitive).
// An empty name yields DefaultBlankPageSize.
func ParsePageSize(name string) (PageSize, error) {
	switch strings.ToLower(name) {
	case "", PageSizeA4:
		return DefaultBlankPageSize, nil
	case PageSizeLetter:
		return PageSize{Width: 612, Height: 792}, nil
	case PageSizeLegal:
		return PageSize{Width: 612, Height: 1008}, nil
	}
	return PageSize{}, fmt.Errorf("%w: %q (must be a4, letter or legal)", ErrInvalidPageSize, name)
}

// DocumentInfo is a source document with its natural (offset 0) page count.
type DocumentInfo struct {
	Path  string
	Pages int
}

// PlanEntry is one document's place in the combined output.
type PlanEntry struct {
	DocumentInfo
	Offset    int  // pages preceding the document, pad included
	PadBefore bool // a blank page precedes the document
}

// Rendered is a PDF rendered from a source document at a given offset.
// Pages always equals the document's natural page count.
type Rendered struct {
	Source    string
	Path      string
	Offset    int
	Pages     int
	PadBefore bool
}

// Part is one input of the Combiner. Offset is the page offset the part was
// rendered for; a negative Offset skips the drift check.
type Part struct {
	Path   string
	Offset int
}

// PartsFromRendered converts generator output into combiner input.
func PartsFromRendered(rendered []Rendered) []Part {
	parts := make([]Part, len(rendered))
	for i, r := range rendered {
		parts[i] = Part{Path: r.Path, Offset: r.Offset}
	}
	return parts
}

// OverlayJob describes one overlay: every page of Upper is composited onto
// base page Index+k.
type OverlayJob struct {
	Base  string
	Upper string
	Index int
}

// Typesetter turns a markup document into a PDF.
type Typesetter interface {
	Render(ctx context.Context, input, output string) error
}

// PDFDocument is an open PDF whose pages can be inspected and deleted.
// Indices are 0-based and refer to the current page order.
type PDFDocument interface {
	PageCount() int
	PageText(index int) (string, error)
	DeletePage(index int) error
	Save(path string) error
	Close() error
}

// PDFToolkit is the PDF manipulation backend. Page indices are 0-based.
type PDFToolkit interface {
	Open(path string) (PDFDocument, error)
	PageCount(path string) (int, error)
	Merge(inputs []string, output string) error
	WriteBlankPage(path string, width, height float64) error
	Stamp(basePath string, basePage int, upperPath string, upperPage int) error
}

// Workspace resolves source documents inside a private scratch area and
// hands out paths for intermediate files.
type Workspace interface {
	Resolve(path string) (string, error)
	TempPath(ext string) string
}
