package pdfpager_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	pdfpager "github.com/alnah/go-pdfpager"
)

// mockRunner records calls and returns canned output.
type mockRunner struct {
	mu       sync.Mutex
	stdout   string
	stderr   string
	err      error
	calls    [][]string
	deadline bool
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]string{name}, args...))
	_, m.deadline = ctx.Deadline()
	return m.stdout, m.stderr, m.err
}

// ---------------------------------------------------------------------------
// TestParseRenderCommand - Template validation
// ---------------------------------------------------------------------------

func TestParseRenderCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		want     []string
		wantErr  error
	}{
		{
			name:     "default command",
			template: pdfpager.DefaultRenderCommand,
			want:     []string{"asciidoctor-pdf", "{input}", "-o", "{output}"},
		},
		{
			name:     "extra whitespace",
			template: "  asciidoctor-pdf   -a pdf-theme=x  {input} -o {output} ",
			want:     []string{"asciidoctor-pdf", "-a", "pdf-theme=x", "{input}", "-o", "{output}"},
		},
		{
			name:     "placeholder inside an argument",
			template: "render --in={input} --out={output}",
			want:     []string{"render", "--in={input}", "--out={output}"},
		},
		{
			name:     "empty",
			template: "   ",
			wantErr:  pdfpager.ErrInvalidRenderCommand,
		},
		{
			name:     "missing input",
			template: "asciidoctor-pdf -o {output}",
			wantErr:  pdfpager.ErrInvalidRenderCommand,
		},
		{
			name:     "missing output",
			template: "asciidoctor-pdf {input}",
			wantErr:  pdfpager.ErrInvalidRenderCommand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := pdfpager.ParseRenderCommand(tt.template)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseRenderCommand() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCommandTypesetter - Substitution, errors and logging
// ---------------------------------------------------------------------------

func TestCommandTypesetter_Command(t *testing.T) {
	t.Parallel()

	ts := pdfpager.NewCommandTypesetter([]string{"r", "--in={input}", "{output}"}, nil)
	got := ts.Command("/w/a.adoc", "/w/a.pdf")
	want := []string{"r", "--in=/w/a.adoc", "/w/a.pdf"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Command() mismatch (-want +got):\n%s", diff)
	}

	// Template must not be modified by substitution.
	if ts.Template[1] != "--in={input}" {
		t.Errorf("Template mutated: %v", ts.Template)
	}
}

func TestCommandTypesetter_DefaultTemplate(t *testing.T) {
	t.Parallel()

	ts := pdfpager.NewCommandTypesetter(nil, nil)
	want := []string{"asciidoctor-pdf", "in.adoc", "-o", "out.pdf"}
	if diff := cmp.Diff(want, ts.Command("in.adoc", "out.pdf")); diff != "" {
		t.Errorf("Command() mismatch (-want +got):\n%s", diff)
	}
}

func TestCommandTypesetter_Render(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	ts := pdfpager.NewCommandTypesetter(nil, nil)
	ts.Runner = runner

	if err := ts.Render(context.Background(), "in.adoc", "out.pdf"); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := [][]string{{"asciidoctor-pdf", "in.adoc", "-o", "out.pdf"}}
	if diff := cmp.Diff(want, runner.calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
	if runner.deadline {
		t.Error("deadline set without Timeout")
	}
}

func TestCommandTypesetter_RenderError(t *testing.T) {
	t.Parallel()

	exitErr := errors.New("exit status 1")
	runner := &mockRunner{
		stdout: "converting\n",
		stderr: "asciidoctor: ERROR: include file not found\n",
		err:    exitErr,
	}
	ts := pdfpager.NewCommandTypesetter(nil, nil)
	ts.Runner = runner

	err := ts.Render(context.Background(), "in.adoc", "out.pdf")
	if !errors.Is(err, pdfpager.ErrRender) {
		t.Fatalf("error = %v, want ErrRender", err)
	}
	if !errors.Is(err, exitErr) {
		t.Errorf("error = %v, want underlying exit error in chain", err)
	}

	var renderErr *pdfpager.RenderError
	if !errors.As(err, &renderErr) {
		t.Fatalf("error type = %T, want *RenderError", err)
	}
	if renderErr.Stdout != runner.stdout || renderErr.Stderr != runner.stderr {
		t.Errorf("streams = %q / %q, want %q / %q", renderErr.Stdout, renderErr.Stderr, runner.stdout, runner.stderr)
	}
	if renderErr.Command[0] != "asciidoctor-pdf" {
		t.Errorf("Command = %v", renderErr.Command)
	}

	msg := err.Error()
	for _, want := range []string{"include file not found", "converting", "asciidoctor-pdf in.adoc -o out.pdf"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestCommandTypesetter_Timeout(t *testing.T) {
	t.Parallel()

	runner := &mockRunner{}
	ts := pdfpager.NewCommandTypesetter(nil, nil)
	ts.Runner = runner
	ts.Timeout = time.Minute

	if err := ts.Render(context.Background(), "in.adoc", "out.pdf"); err != nil {
		t.Fatal(err)
	}
	if !runner.deadline {
		t.Error("no deadline passed to runner with Timeout set")
	}
}

func TestCommandTypesetter_LogsOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ts := pdfpager.NewCommandTypesetter(nil, logger)
	ts.Runner = &mockRunner{stdout: "page 1\n\n", stderr: "font missing\n"}

	if err := ts.Render(context.Background(), "in.adoc", "out.pdf"); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		`level=DEBUG msg="renderer output" stream=stdout line="page 1"`,
		`level=WARN msg="renderer output" stream=stderr line="font missing"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q\ngot:\n%s", want, out)
		}
	}
	if strings.Count(out, "renderer output") != 2 {
		t.Errorf("blank lines must not be logged:\n%s", out)
	}
}
