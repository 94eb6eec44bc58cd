package pdfpager

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-pdfpager/internal/pdfdoc"
)

// Sentinel errors for library operations.
var (
	ErrNoDocuments     = errors.New("no documents to process")
	ErrInject          = errors.New("page break injection failed")
	ErrRender          = errors.New("document rendering failed")
	ErrPruneMismatch   = errors.New("inserted empty pages were not all removed")
	ErrOffsetDrift     = errors.New("combined page count drifted from planned offset")
	ErrPageCountChange = errors.New("combined document has an unexpected page count")

	// Input validation errors.
	ErrInvalidOffset        = errors.New("invalid page offset")
	ErrInvalidParity        = errors.New("invalid parity")
	ErrInvalidRenderCommand = errors.New("invalid render command")
	ErrInvalidPageSize      = errors.New("invalid page size")

	// Overlay validation errors.
	ErrInvalidIndex = errors.New("invalid overlay index")
	ErrOverlayRange = errors.New("base PDF ends before the overlay range is satisfied")

	// ErrComposite marks a single page that could not be composited.
	// The compositor skips such pages instead of aborting.
	ErrComposite = pdfdoc.ErrComposite
)

// RenderError reports a typesetting command that exited unsuccessfully.
// Stdout and Stderr hold everything the command printed.
type RenderError struct {
	Command []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *RenderError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %s: %v", ErrRender, strings.Join(e.Command, " "), e.Err)
	if out := strings.TrimSpace(e.Stdout); out != "" {
		b.WriteString("\nstdout:\n")
		b.WriteString(out)
	}
	if out := strings.TrimSpace(e.Stderr); out != "" {
		b.WriteString("\nstderr:\n")
		b.WriteString(out)
	}
	return b.String()
}

// Unwrap lets errors.Is match both ErrRender and the underlying exit error.
func (e *RenderError) Unwrap() []error {
	return []error{ErrRender, e.Err}
}

// PruneError reports that fewer empty pages were found than were injected.
type PruneError struct {
	Path     string
	Found    int
	Expected int
}

func (e *PruneError) Error() string {
	return fmt.Sprintf("%v: %s: removed %d/%d", ErrPruneMismatch, e.Path, e.Found, e.Expected)
}

func (e *PruneError) Unwrap() error {
	return ErrPruneMismatch
}

// OverlayRangeError reports an upper PDF that does not fit in the base PDF
// at the requested index.
type OverlayRangeError struct {
	Index      int
	BasePages  int
	UpperPages int
}

func (e *OverlayRangeError) Error() string {
	return fmt.Sprintf("%v: pages %d-%d requested, base has %d",
		ErrOverlayRange, e.Index, e.Index+e.UpperPages-1, e.BasePages)
}

func (e *OverlayRangeError) Unwrap() error {
	return ErrOverlayRange
}
