package pdfpager_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-pdfpager/internal/pdftest"
	"github.com/alnah/go-pdfpager/internal/workspace"
)

// Sources with known natural page counts under pdftest.Paginate.
const (
	docThreePages = "= Alpha\n:doctype: book\n\nOne\n<<<\nTwo\n"
	docTwoPages   = "= Beta\n\nOne\n"
	docOnePage    = "= Gamma\n"
)

// newWorkspace writes files into a template directory and opens a workspace
// on it. The workspace is closed when the test ends.
func newWorkspace(t *testing.T, files map[string]string) *workspace.Workspace {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := pdftest.WriteSource(filepath.Join(dir, name), content); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	ws, err := workspace.New(dir)
	if err != nil {
		t.Fatalf("workspace.New() error = %v", err)
	}
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func writePDF(t *testing.T, path string, pages ...string) string {
	t.Helper()
	if err := pdftest.WritePDF(path, pages...); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readPDF(t *testing.T, path string) []string {
	t.Helper()
	pages, err := pdftest.ReadPDF(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return pages
}

func assertNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("%s exists (stat err = %v), want no file", path, err)
	}
}

func markerCount(src string) int {
	return strings.Count(src, "[%always]")
}
