// Package pdftest provides in-memory stand-ins for the typesetter and the
// PDF toolkit, for tests that exercise pdfpager without asciidoctor-pdf.
//
// Fake PDFs are JSON files holding one string of text per page. The fake
// typesetter paginates AsciiDoc-like sources with a few simple rules:
//
//   - the header (lines before the first blank line) becomes a title page;
//   - the rest is split on "<<<" lines, one page per chunk;
//   - an empty chunk only becomes a page when "[%always]" precedes its
//     break, and a trailing empty chunk never does;
//   - "[%always]" lines carry no text.
package pdftest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	pdfpager "github.com/alnah/go-pdfpager"
)

// ErrPage is returned for page indices outside a fake PDF.
var ErrPage = errors.New("pdftest: page out of range")

type file struct {
	Pages []string `json:"pages"`
}

// WritePDF writes a fake PDF with the given page texts.
func WritePDF(path string, pages ...string) error {
	if pages == nil {
		pages = []string{}
	}
	data, err := json.Marshal(file{Pages: pages})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// ReadPDF returns the page texts of a fake PDF.
func ReadPDF(path string) ([]string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- test helper
	if err != nil {
		return nil, err
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("pdftest: %s is not a fake PDF: %w", path, err)
	}
	return f.Pages, nil
}

// Paginate splits source text into page texts.
func Paginate(src string) []string {
	lines := strings.Split(strings.ReplaceAll(src, "\r\n", "\n"), "\n")

	at := len(lines)
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			at = i
			break
		}
	}

	var pages []string
	if header := strings.TrimSpace(strings.Join(lines[:at], "\n")); header != "" {
		pages = append(pages, header)
	}

	var chunks [][]string
	var current []string
	for _, line := range lines[at:] {
		if strings.TrimSpace(line) == "<<<" {
			chunks = append(chunks, current)
			current = nil
			continue
		}
		current = append(current, line)
	}
	chunks = append(chunks, current)

	for i, chunk := range chunks {
		text, forced := chunkText(chunk)
		last := i == len(chunks)-1
		switch {
		case text != "":
			pages = append(pages, text)
		case forced && !last:
			pages = append(pages, "")
		}
	}
	return pages
}

// chunkText returns the text of a chunk without "[%always]" lines, and
// whether its last non-blank line was "[%always]".
func chunkText(lines []string) (string, bool) {
	var kept []string
	forced := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "[%always]" {
			forced = true
			continue
		}
		if trimmed != "" {
			forced = false
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n")), forced
}

// Typesetter renders sources with Paginate. It is safe for concurrent use.
type Typesetter struct {
	Footer string // appended to every page when set
	Err    error  // returned by every Render when set

	mu      sync.Mutex
	inputs  []string
	sources []string
}

var _ pdfpager.Typesetter = (*Typesetter)(nil)

// Render paginates input and writes the fake PDF to output.
func (t *Typesetter) Render(ctx context.Context, input, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := os.ReadFile(input) // #nosec G304 -- test helper
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.inputs = append(t.inputs, input)
	t.sources = append(t.sources, string(data))
	t.mu.Unlock()

	if t.Err != nil {
		return t.Err
	}

	pages := Paginate(string(data))
	if t.Footer != "" {
		for i := range pages {
			pages[i] = strings.TrimSpace(pages[i] + "\n" + t.Footer)
		}
	}
	return WritePDF(output, pages...)
}

// Inputs returns the paths passed to Render, in call order.
func (t *Typesetter) Inputs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.inputs)
}

// Sources returns the file contents seen by Render, in call order.
func (t *Typesetter) Sources() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.sources)
}

// Toolkit implements pdfpager.PDFToolkit over fake PDFs.
type Toolkit struct {
	// StampErr, when set, is consulted before every stamp.
	StampErr func(basePage, upperPage int) error

	mu         sync.Mutex
	blankSizes []pdfpager.PageSize
	merges     [][]string
}

var _ pdfpager.PDFToolkit = (*Toolkit)(nil)

// Open loads a fake PDF.
func (t *Toolkit) Open(path string) (pdfpager.PDFDocument, error) {
	pages, err := ReadPDF(path)
	if err != nil {
		return nil, err
	}
	return &Document{pages: pages}, nil
}

// PageCount returns the number of pages of a fake PDF.
func (t *Toolkit) PageCount(path string) (int, error) {
	pages, err := ReadPDF(path)
	if err != nil {
		return 0, err
	}
	return len(pages), nil
}

// Merge concatenates fake PDFs.
func (t *Toolkit) Merge(inputs []string, output string) error {
	var all []string
	for _, in := range inputs {
		pages, err := ReadPDF(in)
		if err != nil {
			return err
		}
		all = append(all, pages...)
	}
	t.mu.Lock()
	t.merges = append(t.merges, slices.Clone(inputs))
	t.mu.Unlock()
	return WritePDF(output, all...)
}

// WriteBlankPage writes a one-page fake PDF with no text and records the size.
func (t *Toolkit) WriteBlankPage(path string, width, height float64) error {
	t.mu.Lock()
	t.blankSizes = append(t.blankSizes, pdfpager.PageSize{Width: width, Height: height})
	t.mu.Unlock()
	return WritePDF(path, "")
}

// Stamp appends the upper page text to the base page as "base + upper".
// An upper page with no text cannot be composited.
func (t *Toolkit) Stamp(basePath string, basePage int, upperPath string, upperPage int) error {
	if t.StampErr != nil {
		if err := t.StampErr(basePage, upperPage); err != nil {
			return err
		}
	}

	base, err := ReadPDF(basePath)
	if err != nil {
		return err
	}
	upper, err := ReadPDF(upperPath)
	if err != nil {
		return err
	}
	if basePage < 0 || basePage >= len(base) || upperPage < 0 || upperPage >= len(upper) {
		return fmt.Errorf("%w: base %d/%d, upper %d/%d", ErrPage, basePage, len(base), upperPage, len(upper))
	}
	if upper[upperPage] == "" {
		return fmt.Errorf("%w: upper page %d is empty", pdfpager.ErrComposite, upperPage)
	}

	base[basePage] = base[basePage] + " + " + upper[upperPage]
	return WritePDF(basePath, base...)
}

// BlankSizes returns the sizes passed to WriteBlankPage.
func (t *Toolkit) BlankSizes() []pdfpager.PageSize {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.blankSizes)
}

// Merges returns the input lists passed to Merge.
func (t *Toolkit) Merges() [][]string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.merges)
}

// Document is an open fake PDF.
type Document struct {
	pages  []string
	closed bool
}

func (d *Document) PageCount() int { return len(d.pages) }

func (d *Document) PageText(index int) (string, error) {
	if index < 0 || index >= len(d.pages) {
		return "", fmt.Errorf("%w: %d", ErrPage, index)
	}
	return d.pages[index], nil
}

func (d *Document) DeletePage(index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("%w: %d", ErrPage, index)
	}
	d.pages = slices.Delete(d.pages, index, index+1)
	return nil
}

func (d *Document) Save(path string) error {
	if d.closed {
		return errors.New("pdftest: document closed")
	}
	return WritePDF(path, d.pages...)
}

func (d *Document) Close() error {
	d.closed = true
	return nil
}

// WriteSource writes an AsciiDoc-like source file, creating parent
// directories.
func WriteSource(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}
