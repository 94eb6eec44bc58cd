package main

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestRunHelp - Per-command help text
// ---------------------------------------------------------------------------

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout []string
		wantStderr string
	}{
		{name: "no command", args: nil, wantStdout: []string{"Usage: pdfpager <command>", "offset-generate", "page-combine", "overlay"}},
		{name: "offset-generate", args: []string{cmdOffsetGenerate}, wantStdout: []string{"--offset", "--render-cmd", "--quiet"}},
		{name: "page-combine", args: []string{cmdPageCombine}, wantStdout: []string{"--always-on", "--count", "--page-size"}},
		{name: "overlay", args: []string{cmdOverlay}, wantStdout: []string{"--base", "--upper", "--index", "--verbose"}},
		{name: "doctor", args: []string{cmdDoctor}, wantStdout: []string{"--json"}},
		{name: "completion", args: []string{cmdCompletion}, wantStdout: []string{"powershell"}},
		{name: "version", args: []string{cmdVersion}, wantStdout: []string{"Usage: pdfpager version"}},
		{name: "help", args: []string{cmdHelp}, wantStdout: []string{"Usage: pdfpager help"}},
		{name: "unknown", args: []string{"merge"}, wantStderr: "Unknown command: merge"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			te := newTestEnv()
			runHelp(tt.args, te.Environment)

			for _, want := range tt.wantStdout {
				if !strings.Contains(te.stdout.String(), want) {
					t.Errorf("stdout missing %q:\n%s", want, te.stdout.String())
				}
			}
			if tt.wantStderr != "" && !strings.Contains(te.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, te.stderr.String())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHelpMatchesFlagSets - Every registered flag is documented
// ---------------------------------------------------------------------------

func TestHelpMatchesFlagSets(t *testing.T) {
	t.Parallel()

	for _, c := range getCommands() {
		if len(c.Flags) == 0 {
			continue
		}
		te := newTestEnv()
		runHelp([]string{c.Name}, te.Environment)
		help := te.stdout.String()
		for _, f := range c.Flags {
			if !strings.Contains(help, "--"+f.Long) {
				t.Errorf("help for %s does not mention --%s", c.Name, f.Long)
			}
		}
	}
}
