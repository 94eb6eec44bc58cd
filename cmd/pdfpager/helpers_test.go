package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/alnah/go-pdfpager/internal/pdftest"
)

// Sources with known page counts under the pdftest typesetter.
const (
	srcThreePages = "= Intro\n\nOne\n<<<\nTwo\n"
	srcTwoPages   = "= Usage\n\nBody\n"
)

// testEnv holds an Environment wired to fakes and its captured output.
type testEnv struct {
	*Environment
	stdout     *bytes.Buffer
	stderr     *bytes.Buffer
	vars       map[string]string
	typesetter *pdftest.Typesetter
	toolkit    *pdftest.Toolkit
}

func newTestEnv() *testEnv {
	te := &testEnv{
		stdout:     &bytes.Buffer{},
		stderr:     &bytes.Buffer{},
		vars:       map[string]string{},
		typesetter: &pdftest.Typesetter{},
		toolkit:    &pdftest.Toolkit{},
	}
	te.Environment = &Environment{
		Stdout:     te.stdout,
		Stderr:     te.stderr,
		Getenv:     func(k string) string { return te.vars[k] },
		Environ:    te.environ,
		Typesetter: te.typesetter,
		Toolkit:    te.toolkit,
	}
	return te
}

func (te *testEnv) environ() []string {
	out := make([]string, 0, len(te.vars))
	for k, v := range te.vars {
		out = append(out, k+"="+v)
	}
	return out
}

// writeTemplate creates a template directory holding the given sources.
func writeTemplate(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		if err := pdftest.WriteSource(filepath.Join(dir, name), content); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return dir
}

func writeFakePDF(t *testing.T, path string, pages ...string) string {
	t.Helper()
	if err := pdftest.WritePDF(path, pages...); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func readFakePDF(t *testing.T, path string) []string {
	t.Helper()
	pages, err := pdftest.ReadPDF(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return pages
}
