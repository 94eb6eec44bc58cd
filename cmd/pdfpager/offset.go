package main

import (
	"context"
	"fmt"
	"io"

	pdfpager "github.com/alnah/go-pdfpager"
)

// runOffsetGenerate renders one document whose page numbers start after
// --offset pages.
func runOffsetGenerate(ctx context.Context, args []string, env *Environment) error {
	fs, f := newOffsetFlagSet()
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printOffsetUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	if f.input == "" {
		return fmt.Errorf("%w: --input is required", ErrUsage)
	}
	if f.output == "" {
		return fmt.Errorf("%w: --output is required", ErrUsage)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrUsage, fs.Args())
	}

	cfg, err := loadSettings(fs, &f.common, env)
	if err != nil {
		return err
	}
	if fs.Changed("offset") {
		cfg.Offset.Initial = f.offset
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, f.common.log)
	opts, err := libraryOptions(cfg, logger, env)
	if err != nil {
		return err
	}
	if err := prepareOutput(f.output); err != nil {
		return err
	}

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	gen := pdfpager.NewGenerator(ws, opts...)
	r, err := gen.Generate(ctx, f.input, cfg.Offset.Initial, f.output)
	if err != nil {
		return err
	}

	if !f.common.log.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d pages, numbered from %d)\n", r.Path, r.Pages, r.Offset+1)
	}
	return nil
}
