package pdfpager

import (
	"fmt"
	"os"
	"strings"
)

// BreakMarker forces a page break even when the current page is empty.
const BreakMarker = "[%always]\n<<<\n"

// InsertBreaks returns content with n break markers placed after the leading
// header block, i.e. the lines up to the first blank line. Without a blank
// line the markers are appended to the end. A blank line always separates the
// header from the markers.
func InsertBreaks(content string, n int) (string, error) {
	if n < 0 {
		return "", fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidOffset, n)
	}
	if n == 0 {
		return content, nil
	}

	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	at := len(lines)
	for i, line := range lines {
		if strings.TrimRight(line, "\r\n") == "" {
			at = i
			break
		}
	}

	var b strings.Builder
	for _, line := range lines[:at] {
		b.WriteString(line)
	}
	if at > 0 && !strings.HasSuffix(lines[at-1], "\n") {
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat(BreakMarker, n))
	for _, line := range lines[at:] {
		b.WriteString(line)
	}
	return b.String(), nil
}

// InjectBreaks inserts n break markers into the document at path, in place.
// It is not idempotent: every call adds n more markers.
func InjectBreaks(path string, n int) error {
	data, err := os.ReadFile(path) // #nosec G304 -- path is inside the private workspace
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInject, err)
	}

	out, err := InsertBreaks(string(data), n)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInject, err)
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return fmt.Errorf("%w: %w", ErrInject, err)
	}
	return nil
}
