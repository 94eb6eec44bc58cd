package main

import (
	"context"
	"fmt"
	"io"

	pdfpager "github.com/alnah/go-pdfpager"
)

// runOverlay stamps every page of --upper onto --base, starting at --index.
func runOverlay(ctx context.Context, args []string, env *Environment) error {
	fs, f := newOverlayFlagSet()
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printOverlayUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	for _, req := range []struct{ name, value string }{
		{"--base", f.base},
		{"--upper", f.upper},
		{"--output", f.output},
	} {
		if req.value == "" {
			return fmt.Errorf("%w: %s is required", ErrUsage, req.name)
		}
	}
	if !fs.Changed("index") {
		return fmt.Errorf("%w: --index is required", ErrUsage)
	}
	if err := prepareOutput(f.output); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, f.log)
	opts := []pdfpager.Option{pdfpager.WithLogger(logger)}
	if env.Toolkit != nil {
		opts = append(opts, pdfpager.WithToolkit(env.Toolkit))
	}

	job := pdfpager.OverlayJob{Base: f.base, Upper: f.upper, Index: f.index}
	res, err := pdfpager.NewCompositor(opts...).Overlay(ctx, job, f.output)
	if err != nil {
		return err
	}

	if !f.log.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%d pages overlaid", f.output, len(res.Composited))
		if len(res.Skipped) > 0 {
			fmt.Fprintf(env.Stdout, ", %d skipped", len(res.Skipped))
		}
		fmt.Fprintln(env.Stdout, ")")
	}
	return nil
}
