// Package pdfdoc implements the PDF page operations pdfpager needs.
//
// Page counting, deletion, merging and stamping go through pdfcpu; page text
// comes from ledongthuc/pdf; blank pages are generated with fpdf. All page
// indices in this package are 0-based, pdfcpu's 1-based page selections are
// built internally.
package pdfdoc

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	lpdf "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/alnah/go-pdfpager/internal/fileutil"
)

// Sentinel errors for PDF operations.
var (
	ErrComposite    = errors.New("page could not be composited")
	ErrPageIndex    = errors.New("page index out of range")
	ErrPageMismatch = errors.New("PDF readers disagree on page count")
)

// stampDescription scales the upper page to the base page width, centered,
// unrotated and fully opaque.
const stampDescription = "scalefactor:1 rel, pos:c, rot:0, op:1"

var disableConfigDir sync.Once

// Toolkit performs file-level PDF operations.
type Toolkit struct {
	conf *model.Configuration
}

// New creates a Toolkit. pdfcpu's user configuration directory is disabled
// so results do not depend on the machine's pdfcpu settings.
func New() *Toolkit {
	disableConfigDir.Do(api.DisableConfigDir)
	return &Toolkit{conf: model.NewDefaultConfiguration()}
}

// PageCount returns the number of pages of the PDF at path.
func (t *Toolkit) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", path, err)
	}
	return n, nil
}

// Merge concatenates inputs into output in order. An input may appear more
// than once.
func (t *Toolkit) Merge(inputs []string, output string) error {
	if err := api.MergeCreateFile(inputs, output, false, t.conf); err != nil {
		return fmt.Errorf("merging %d files: %w", len(inputs), err)
	}
	return nil
}

// WriteBlankPage writes a one-page PDF with no content. Dimensions are in
// points.
func (t *Toolkit) WriteBlankPage(path string, width, height float64) error {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.AddPageFormat("P", fpdf.SizeType{Wd: width, Ht: height})
	if err := doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing blank page %s: %w", path, err)
	}
	return nil
}

// Stamp draws page upperPage of upperPath over page basePage of basePath,
// in place. The base page keeps its dimensions; the upper page is scaled to
// fit it. An upper page without content is reported as ErrComposite; every
// other failure is returned as is.
func (t *Toolkit) Stamp(basePath string, basePage int, upperPath string, upperPage int) error {
	if basePage < 0 || upperPage < 0 {
		return fmt.Errorf("%w: base %d, upper %d", ErrPageIndex, basePage, upperPage)
	}
	if err := checkUpperPage(upperPath, upperPage); err != nil {
		return err
	}

	src := upperPath + ":" + strconv.Itoa(upperPage+1)
	wm, err := api.PDFWatermark(src, stampDescription, true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("preparing upper page %d: %w", upperPage, err)
	}

	pages := []string{strconv.Itoa(basePage + 1)}
	if err := api.AddWatermarksFile(basePath, "", pages, wm, t.conf); err != nil {
		return fmt.Errorf("stamping base page %d: %w", basePage, err)
	}
	return nil
}

// checkUpperPage rejects an upper page that is out of range or has no
// content stream to draw.
func checkUpperPage(path string, page int) error {
	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return fmt.Errorf("reading upper %s: %w", path, err)
	}
	if page >= ctx.PageCount {
		return fmt.Errorf("%w: upper page %d of %d", ErrPageIndex, page, ctx.PageCount)
	}

	d, _, _, err := ctx.PageDict(page+1, false)
	if err != nil {
		return fmt.Errorf("reading upper page %d: %w", page, err)
	}
	if _, err := ctx.PageContent(d, page+1); err != nil {
		if errors.Is(err, model.ErrNoContent) {
			return fmt.Errorf("%w: upper page %d is empty", ErrComposite, page)
		}
		return fmt.Errorf("%w: upper page %d: %v", ErrComposite, page, err)
	}
	return nil
}

// Document is an open PDF whose pages can be read and deleted. Deletions are
// applied when the document is saved; the source file is never modified.
type Document struct {
	path    string
	file    *os.File
	reader  *lpdf.Reader
	pages   []int // current order, as 1-based page numbers of the source
	removed []int
	conf    *model.Configuration
}

// Open opens the PDF at path for reading. Call Close when done.
func (t *Toolkit) Open(path string) (*Document, error) {
	n, err := t.PageCount(path)
	if err != nil {
		return nil, err
	}

	f, r, err := lpdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if r.NumPage() != n {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %s has %d or %d pages", ErrPageMismatch, path, n, r.NumPage())
	}

	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return &Document{path: path, file: f, reader: r, pages: pages, conf: t.conf}, nil
}

// PageCount returns the number of pages not deleted so far.
func (d *Document) PageCount() int {
	return len(d.pages)
}

// PageText returns the plain text of the page at index.
func (d *Document) PageText(index int) (string, error) {
	if index < 0 || index >= len(d.pages) {
		return "", fmt.Errorf("%w: %d of %d", ErrPageIndex, index, len(d.pages))
	}

	p := d.reader.Page(d.pages[index])
	if p.V.IsNull() {
		return "", nil
	}
	text, err := p.GetPlainText(nil)
	if err != nil {
		return "", fmt.Errorf("reading text of page %d: %w", d.pages[index], err)
	}
	return text, nil
}

// DeletePage removes the page at index; later pages shift down by one.
func (d *Document) DeletePage(index int) error {
	if index < 0 || index >= len(d.pages) {
		return fmt.Errorf("%w: %d of %d", ErrPageIndex, index, len(d.pages))
	}
	d.removed = append(d.removed, d.pages[index])
	d.pages = slices.Delete(d.pages, index, index+1)
	return nil
}

// Save writes the document, minus deleted pages, to path.
func (d *Document) Save(path string) error {
	if len(d.removed) == 0 {
		return fileutil.CopyFile(d.path, path)
	}

	selected := make([]string, len(d.removed))
	for i, n := range d.removed {
		selected[i] = strconv.Itoa(n)
	}
	if err := api.RemovePagesFile(d.path, path, selected, d.conf); err != nil {
		return fmt.Errorf("removing pages %v: %w", d.removed, err)
	}
	return nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}
