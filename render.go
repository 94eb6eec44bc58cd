package pdfpager

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/alnah/go-pdfpager/internal/process"
)

// Placeholders substituted in a render command template.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
)

// DefaultRenderCommand renders AsciiDoc with asciidoctor-pdf.
const DefaultRenderCommand = "asciidoctor-pdf {input} -o {output}"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. The command runs in its
// own process group, which is killed when ctx is canceled.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- command template is operator configuration
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}

// ParseRenderCommand splits a command template into arguments and checks
// that it references both placeholders.
func ParseRenderCommand(template string) ([]string, error) {
	args := strings.Fields(template)
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: empty command", ErrInvalidRenderCommand)
	}
	joined := strings.Join(args, " ")
	for _, ph := range []string{InputPlaceholder, OutputPlaceholder} {
		if !strings.Contains(joined, ph) {
			return nil, fmt.Errorf("%w: %q lacks %s", ErrInvalidRenderCommand, template, ph)
		}
	}
	return args, nil
}

// CommandTypesetter renders documents by running an external command.
type CommandTypesetter struct {
	Template []string
	Runner   CommandRunner
	Timeout  time.Duration // per render; 0 means no limit
	logger   *slog.Logger
}

// NewCommandTypesetter creates a typesetter for an already parsed template.
// A nil template uses DefaultRenderCommand; a nil logger discards output.
func NewCommandTypesetter(template []string, logger *slog.Logger) *CommandTypesetter {
	if template == nil {
		template = strings.Fields(DefaultRenderCommand)
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommandTypesetter{Template: template, Runner: &ExecRunner{}, logger: logger}
}

// Command returns the argument vector for rendering input to output.
func (t *CommandTypesetter) Command(input, output string) []string {
	argv := make([]string, len(t.Template))
	for i, arg := range t.Template {
		arg = strings.ReplaceAll(arg, InputPlaceholder, input)
		argv[i] = strings.ReplaceAll(arg, OutputPlaceholder, output)
	}
	return argv
}

// Render runs the command. A non-zero exit yields a *RenderError holding
// both output streams.
func (t *CommandTypesetter) Render(ctx context.Context, input, output string) error {
	if t.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.Timeout)
		defer cancel()
	}

	argv := t.Command(input, output)
	t.logger.Debug("rendering", "command", strings.Join(argv, " "))

	stdout, stderr, err := t.Runner.Run(ctx, argv[0], argv[1:]...)
	logLines(ctx, t.logger, slog.LevelDebug, "stdout", stdout)
	logLines(ctx, t.logger, slog.LevelWarn, "stderr", stderr)
	if err != nil {
		return &RenderError{Command: argv, Stdout: stdout, Stderr: stderr, Err: err}
	}
	return nil
}

// logLines logs each non-empty line of subprocess output.
func logLines(ctx context.Context, logger *slog.Logger, level slog.Level, stream, output string) {
	sc := bufio.NewScanner(strings.NewReader(output))
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			logger.Log(ctx, level, "renderer output", "stream", stream, "line", line)
		}
	}
}
