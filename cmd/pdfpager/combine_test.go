package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pdfpager "github.com/alnah/go-pdfpager"
)

// ---------------------------------------------------------------------------
// TestRunPageCombine
// ---------------------------------------------------------------------------

func TestRunPageCombine(t *testing.T) {
	t.Parallel()

	data := writeTemplate(t, map[string]string{"intro.adoc": srcThreePages, "usage.adoc": srcTwoPages})

	tests := []struct {
		name      string
		args      []string
		wantPages []string
		wantLine  string
		wantPad   string
	}{
		{
			name: "continuous numbering",
			args: []string{"intro.adoc", "usage.adoc"},
			wantPages: []string{
				"= Intro", "One", "Two",
				"= Usage", "Body",
			},
			wantLine: "Combined 2 documents with offset 1 into OUT (5 pages, 0 blank)",
		},
		{
			name: "always on odd",
			args: []string{"--always-on", "odd", "intro.adoc", "usage.adoc"},
			wantPages: []string{
				"= Intro", "One", "Two",
				"",
				"= Usage", "Body",
			},
			wantLine: "(6 pages, 1 blank)",
			wantPad:  "  blank page before usage.adoc (offset 5)\n",
		},
		{
			name: "always on even from offset zero",
			args: []string{"--always-on", "even", "-O", "0", "usage.adoc", "usage.adoc"},
			wantPages: []string{
				"= Usage", "Body",
				"= Usage", "Body",
			},
			wantLine: "with offset 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv()
			out := filepath.Join(t.TempDir(), "book.pdf")
			args := append([]string{"--data", data, "-o", out}, tt.args...)

			if err := runPageCombine(context.Background(), args, te.Environment); err != nil {
				t.Fatalf("runPageCombine() error = %v", err)
			}
			if diff := cmp.Diff(tt.wantPages, readFakePDF(t, out)); diff != "" {
				t.Errorf("pages mismatch (-want +got):\n%s", diff)
			}
			wantLine := strings.ReplaceAll(tt.wantLine, "OUT", out)
			if !strings.Contains(te.stdout.String(), wantLine) {
				t.Errorf("stdout missing %q:\n%s", wantLine, te.stdout.String())
			}
			gotPad := strings.Contains(te.stdout.String(), "blank page before")
			if tt.wantPad == "" && gotPad {
				t.Errorf("stdout reports a blank page:\n%s", te.stdout.String())
			}
			if tt.wantPad != "" && !strings.HasSuffix(te.stdout.String(), tt.wantPad) {
				t.Errorf("stdout missing %q:\n%s", tt.wantPad, te.stdout.String())
			}
		})
	}
}

func TestRunPageCombine_Count(t *testing.T) {
	t.Parallel()

	data := writeTemplate(t, map[string]string{"intro.adoc": srcThreePages, "usage.adoc": srcTwoPages})
	te := newTestEnv()

	err := runPageCombine(context.Background(), []string{"--data", data, "--count", "intro.adoc", "usage.adoc"}, te.Environment)
	if err != nil {
		t.Fatalf("runPageCombine() error = %v", err)
	}

	var want bytes.Buffer
	printCountTable(&want, []pdfpager.DocumentInfo{{Path: "intro.adoc", Pages: 3}, {Path: "usage.adoc", Pages: 2}})
	if te.stdout.String() != want.String() {
		t.Errorf("stdout = %q, want %q", te.stdout.String(), want.String())
	}
	if n := len(te.typesetter.Sources()); n != 2 {
		t.Errorf("rendered %d times, want 2 (discovery only)", n)
	}
	if n := len(te.toolkit.Merges()); n != 0 {
		t.Errorf("merged %d times with --count", n)
	}
}

func TestRunPageCombine_CountQuiet(t *testing.T) {
	t.Parallel()

	data := writeTemplate(t, map[string]string{"intro.adoc": srcThreePages})
	te := newTestEnv()

	err := runPageCombine(context.Background(), []string{"--data", data, "--count", "-q", "intro.adoc"}, te.Environment)
	if err != nil {
		t.Fatalf("runPageCombine() error = %v", err)
	}

	var want bytes.Buffer
	printCountTable(&want, []pdfpager.DocumentInfo{{Path: "intro.adoc", Pages: 3}})
	if te.stdout.String() != want.String() {
		t.Errorf("stdout = %q, want %q", te.stdout.String(), want.String())
	}
}

func TestRunPageCombine_Quiet(t *testing.T) {
	t.Parallel()

	data := writeTemplate(t, map[string]string{"intro.adoc": srcThreePages, "usage.adoc": srcTwoPages})
	te := newTestEnv()
	out := filepath.Join(t.TempDir(), "book.pdf")

	args := []string{"--data", data, "-q", "-o", out, "--always-on", "odd", "intro.adoc", "usage.adoc"}
	if err := runPageCombine(context.Background(), args, te.Environment); err != nil {
		t.Fatalf("runPageCombine() error = %v", err)
	}
	if te.stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty with --quiet", te.stdout.String())
	}
}

func TestPrintCountTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printCountTable(&buf, []pdfpager.DocumentInfo{{Path: "chapters/one.adoc", Pages: 12}})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"Path                           | Page Numbers",
		strings.Repeat("-", 35),
		"chapters/one.adoc              |    12",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}

func TestRunPageCombine_Errors(t *testing.T) {
	t.Parallel()

	data := writeTemplate(t, map[string]string{"intro.adoc": srcThreePages})

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"no documents", []string{"--data", data, "-o", "OUT"}, ErrUsage},
		{"no output", []string{"--data", data, "intro.adoc"}, ErrUsage},
		{"bad parity", []string{"--data", data, "-o", "OUT", "--always-on", "left", "intro.adoc"}, pdfpager.ErrInvalidParity},
		{"missing document", []string{"--data", data, "-o", "OUT", "intro.adoc", "gone.adoc"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out := filepath.Join(t.TempDir(), "book.pdf")
			args := make([]string, len(tt.args))
			for i, a := range tt.args {
				args[i] = strings.ReplaceAll(a, "OUT", out)
			}

			err := runPageCombine(context.Background(), args, newTestEnv().Environment)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
