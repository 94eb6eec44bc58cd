package pdfpager_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/google/go-cmp/cmp"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/pdfdoc"
)

// Notes:
// - These tests run Compositor.Overlay on the default pdfcpu backend with
//   real PDFs generated by fpdf. Page content is checked through pdfcpu's
//   watermark detection; ledongthuc/pdf does not read form XObjects.

func writeRealPDF(t *testing.T, path string, pages ...string) string {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 14)
	for _, text := range pages {
		doc.AddPage()
		doc.Text(72, 72, text)
	}
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func hasWatermarks(t *testing.T, path string) bool {
	t.Helper()
	ok, err := api.HasWatermarksFile(path, nil)
	if err != nil {
		t.Fatalf("HasWatermarksFile(%s) error = %v", path, err)
	}
	return ok
}

func TestCompositor_Overlay_RealPDF(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeRealPDF(t, filepath.Join(dir, "base.pdf"), pageTexts("b", 10)...)
	upper := writeRealPDF(t, filepath.Join(dir, "upper.pdf"), pageTexts("u", 3)...)
	out := filepath.Join(dir, "out.pdf")

	res, err := pdfpager.NewCompositor().Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: 5}, out)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}

	if diff := cmp.Diff([]int{5, 6, 7}, res.Composited); diff != "" {
		t.Errorf("Composited mismatch (-want +got):\n%s", diff)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", res.Skipped)
	}

	n, err := api.PageCountFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if n != 10 {
		t.Errorf("output pages = %d, want 10", n)
	}
	if !hasWatermarks(t, out) {
		t.Error("output carries no stamped pages")
	}
	if hasWatermarks(t, base) {
		t.Error("base was modified")
	}
}

// vanishingBaseToolkit removes the working copy of the base before every
// stamp, so the pdfcpu backend fails to rewrite it.
type vanishingBaseToolkit struct {
	*pdfdoc.Toolkit
}

func (k vanishingBaseToolkit) Open(path string) (pdfpager.PDFDocument, error) {
	doc, err := k.Toolkit.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (k vanishingBaseToolkit) Stamp(basePath string, basePage int, upperPath string, upperPage int) error {
	if err := os.Remove(basePath); err != nil {
		return err
	}
	return k.Toolkit.Stamp(basePath, basePage, upperPath, upperPage)
}

func TestCompositor_Overlay_RealPDF_BaseWriteFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writeRealPDF(t, filepath.Join(dir, "base.pdf"), pageTexts("b", 4)...)
	upper := writeRealPDF(t, filepath.Join(dir, "upper.pdf"), "u0")
	out := filepath.Join(dir, "out.pdf")

	c := pdfpager.NewCompositor(pdfpager.WithToolkit(vanishingBaseToolkit{pdfdoc.New()}))
	res, err := c.Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: 1}, out)
	if err == nil {
		t.Fatalf("Overlay() expected error, got result %+v", res)
	}
	assertNotExist(t, out)

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory holds %v, want only base.pdf and upper.pdf", names)
	}
}
