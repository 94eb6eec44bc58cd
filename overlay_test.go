package pdfpager_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/pdftest"
)

func pageTexts(prefix string, n int) []string {
	pages := make([]string, n)
	for i := range pages {
		pages[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return pages
}

// ---------------------------------------------------------------------------
// TestCompositor_Overlay - Page range compositing
// ---------------------------------------------------------------------------

func TestCompositor_Overlay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		index int
	}{
		{name: "middle", index: 5},
		{name: "start", index: 0},
		{name: "flush with the end", index: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			base := writePDF(t, filepath.Join(dir, "base.pdf"), pageTexts("b", 10)...)
			upper := writePDF(t, filepath.Join(dir, "upper.pdf"), pageTexts("u", 3)...)
			out := filepath.Join(dir, "out.pdf")

			c := pdfpager.NewCompositor(pdfpager.WithToolkit(&pdftest.Toolkit{}))
			res, err := c.Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: tt.index}, out)
			if err != nil {
				t.Fatalf("Overlay() error = %v", err)
			}

			want := pageTexts("b", 10)
			var composited []int
			for k := range 3 {
				want[tt.index+k] += fmt.Sprintf(" + u%d", k)
				composited = append(composited, tt.index+k)
			}
			if diff := cmp.Diff(want, readPDF(t, out)); diff != "" {
				t.Errorf("pages mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(&pdfpager.OverlayResult{Composited: composited}, res); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(pageTexts("b", 10), readPDF(t, base)); diff != "" {
				t.Errorf("base modified (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompositor_Overlay_SkipsEmptyUpperPage(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writePDF(t, filepath.Join(dir, "base.pdf"), "b0", "b1", "b2")
	upper := writePDF(t, filepath.Join(dir, "upper.pdf"), "u0", "", "u2")
	out := filepath.Join(dir, "out.pdf")

	c := pdfpager.NewCompositor(pdfpager.WithToolkit(&pdftest.Toolkit{}))
	res, err := c.Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: 0}, out)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}

	want := &pdfpager.OverlayResult{Composited: []int{0, 2}, Skipped: []int{1}}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b0 + u0", "b1", "b2 + u2"}, readPDF(t, out)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositor_Overlay_EmptyUpper(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := writePDF(t, filepath.Join(dir, "base.pdf"), "b0", "b1")
	upper := writePDF(t, filepath.Join(dir, "upper.pdf"))
	out := filepath.Join(dir, "out.pdf")

	c := pdfpager.NewCompositor(pdfpager.WithToolkit(&pdftest.Toolkit{}))
	res, err := c.Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: 2}, out)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if len(res.Composited) != 0 || len(res.Skipped) != 0 {
		t.Errorf("result = %+v, want nothing composited", res)
	}
	if diff := cmp.Diff([]string{"b0", "b1"}, readPDF(t, out)); diff != "" {
		t.Errorf("pages mismatch (-want +got):\n%s", diff)
	}
}

func TestCompositor_Overlay_Errors(t *testing.T) {
	t.Parallel()

	hardErr := errors.New("disk full")

	tests := []struct {
		name     string
		index    int
		stampErr func(int, int) error
		wantErr  error
	}{
		{
			name:    "negative index",
			index:   -1,
			wantErr: pdfpager.ErrInvalidIndex,
		},
		{
			name:    "upper runs past the base",
			index:   8,
			wantErr: pdfpager.ErrOverlayRange,
		},
		{
			name:  "stamp failure aborts",
			index: 2,
			stampErr: func(base, _ int) error {
				if base == 3 {
					return hardErr
				}
				return nil
			},
			wantErr: hardErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			base := writePDF(t, filepath.Join(dir, "base.pdf"), pageTexts("b", 10)...)
			upper := writePDF(t, filepath.Join(dir, "upper.pdf"), pageTexts("u", 3)...)
			out := filepath.Join(dir, "out.pdf")

			c := pdfpager.NewCompositor(pdfpager.WithToolkit(&pdftest.Toolkit{StampErr: tt.stampErr}))
			_, err := c.Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: tt.index}, out)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			assertNotExist(t, out)

			entries, err := filepath.Glob(filepath.Join(dir, ".pdfpager-*"))
			if err != nil {
				t.Fatal(err)
			}
			if len(entries) != 0 {
				t.Errorf("temporary files left behind: %v", entries)
			}
		})
	}
}

func TestOverlayRangeError(t *testing.T) {
	t.Parallel()

	err := error(&pdfpager.OverlayRangeError{Index: 8, BasePages: 10, UpperPages: 3})
	if !errors.Is(err, pdfpager.ErrOverlayRange) {
		t.Errorf("errors.Is(ErrOverlayRange) = false")
	}
	want := "base PDF ends before the overlay range is satisfied: pages 8-10 requested, base has 10"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	dir := t.TempDir()
	base := writePDF(t, filepath.Join(dir, "base.pdf"), pageTexts("b", 10)...)
	upper := writePDF(t, filepath.Join(dir, "upper.pdf"), pageTexts("u", 3)...)
	c := pdfpager.NewCompositor(pdfpager.WithToolkit(&pdftest.Toolkit{}))
	_, err = c.Overlay(context.Background(), pdfpager.OverlayJob{Base: base, Upper: upper, Index: 8}, filepath.Join(dir, "out.pdf"))

	var rangeErr *pdfpager.OverlayRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("error type = %T, want *OverlayRangeError", err)
	}
	if diff := cmp.Diff(&pdfpager.OverlayRangeError{Index: 8, BasePages: 10, UpperPages: 3}, rangeErr); diff != "" {
		t.Errorf("OverlayRangeError mismatch (-want +got):\n%s", diff)
	}
}
