package pdfpager

import (
	"log/slog"

	"github.com/alnah/go-pdfpager/internal/pdfdoc"
)

// Option configures a Generator, Pruner, Combiner or Compositor.
// Options that do not apply to a component are ignored by it.
type Option func(*settings)

type settings struct {
	logger     *slog.Logger
	toolkit    PDFToolkit
	typesetter Typesetter
	pageSize   PageSize
}

func newSettings(opts []Option) settings {
	s := settings{pageSize: DefaultBlankPageSize}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.toolkit == nil {
		s.toolkit = toolkitAdapter{pdfdoc.New()}
	}
	if s.typesetter == nil {
		s.typesetter = NewCommandTypesetter(nil, s.logger)
	}
	return s
}

// Compile-time check that the default backend satisfies the toolkit contract.
var _ PDFToolkit = toolkitAdapter{}

// toolkitAdapter exposes *pdfdoc.Toolkit through the PDFToolkit interface;
// pdfdoc returns its concrete document type from Open.
type toolkitAdapter struct {
	*pdfdoc.Toolkit
}

func (a toolkitAdapter) Open(path string) (PDFDocument, error) {
	doc, err := a.Toolkit.Open(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// WithLogger sets the logger. Nil keeps the default, which discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithToolkit replaces the PDF backend.
func WithToolkit(t PDFToolkit) Option {
	return func(s *settings) {
		s.toolkit = t
	}
}

// WithTypesetter replaces the document renderer.
func WithTypesetter(t Typesetter) Option {
	return func(s *settings) {
		s.typesetter = t
	}
}

// WithBlankPageSize sets the physical size of inserted parity pages.
// Panics if either dimension is not positive (programmer error).
func WithBlankPageSize(size PageSize) Option {
	if size.Width <= 0 || size.Height <= 0 {
		panic("pdfpager: WithBlankPageSize dimensions must be positive")
	}
	return func(s *settings) {
		s.pageSize = size
	}
}
