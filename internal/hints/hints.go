// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os/exec"
	"strconv"
	"strings"
)

// LookPath finds executables; replaced in tests.
var LookPath = exec.LookPath

// ForRenderFailure returns hints for a failed render command. argv0 is the
// program the command template starts with.
func ForRenderFailure(argv0 string) string {
	hints := []string{"adapt the render command with --render-cmd or render.command in the config"}
	if argv0 != "" {
		if _, err := LookPath(argv0); err != nil {
			hints = append([]string{argv0 + " is not on PATH (gem install asciidoctor-pdf)"}, hints...)
		}
	}
	return formatHints(hints)
}

// ForTimeout returns a hint about raising the render timeout.
func ForTimeout() string {
	return format("for large documents, raise --timeout")
}

// ForPruneMismatch returns the hint for inserted pages that were not all
// found empty after rendering.
func ForPruneMismatch() string {
	return format("remove footers, headers or page numbers from the first pages; the inserted pages must render with no text")
}

// ForOffsetDrift returns the hint for a combiner counter that disagrees
// with the planned offsets.
func ForOffsetDrift() string {
	return format("pass the same --offset and --always-on values used to generate the parts")
}

// ForOverlayRange returns the hint for an overlay that runs past the base PDF.
func ForOverlayRange(basePages, upperPages int) string {
	if basePages < upperPages {
		return format("the upper PDF is longer than the base PDF")
	}
	return format("use --index " + strconv.Itoa(basePages-upperPages) + " or lower")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in the go-pdfpager config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(p, "go-pdfpager") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

// ForTemplateDir returns the hint for a missing template directory.
func ForTemplateDir() string {
	return format("run from the directory holding data/ or pass --data <dir>")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
