// Package workspace manages the private scratch directory of one invocation.
//
// A workspace starts as a copy of a template directory (the directory holding
// the AsciiDoc sources and everything they include), so renders and page-break
// injection never touch the originals. Close removes it.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/alnah/go-pdfpager/internal/fileutil"
)

// Sentinel errors for workspace operations.
var (
	ErrTemplateNotFound = errors.New("template directory not found")
	ErrOutsideWorkspace = errors.New("path escapes the template directory")
	ErrSourceNotFound   = errors.New("source document not found")
)

// Workspace is a temporary copy of a template directory.
type Workspace struct {
	root string // temp directory owned by the workspace
	data string // copy of the template directory inside root
}

// New copies templateDir into a fresh temporary directory.
func New(templateDir string) (*Workspace, error) {
	if !fileutil.DirExists(templateDir) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateDir)
	}

	root, err := os.MkdirTemp("", "pdfpager-*")
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}

	data := filepath.Join(root, "data")
	if err := fileutil.CopyDir(templateDir, data); err != nil {
		_ = os.RemoveAll(root)
		return nil, fmt.Errorf("copying %s into workspace: %w", templateDir, err)
	}

	return &Workspace{root: root, data: data}, nil
}

// Dir returns the workspace copy of the template directory.
func (w *Workspace) Dir() string {
	return w.data
}

// Resolve maps a source path, relative to the template directory, to its
// workspace copy. The copy must exist.
func (w *Workspace) Resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideWorkspace, path)
	}

	resolved := filepath.Join(w.data, clean)
	if !fileutil.FileExists(resolved) {
		return "", fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	return resolved, nil
}

// TempPath returns a fresh, unused path for an intermediate file.
// The file is not created.
func (w *Workspace) TempPath(ext string) string {
	if fileutil.ValidateExtension(ext) != nil {
		ext = ".tmp"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(w.root, uuid.NewString()+ext)
}

// Close removes the workspace and everything in it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}
