package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	pdfpager "github.com/alnah/go-pdfpager"
)

// runPageCombine renders every document with the offset that makes its page
// numbers continue from the previous one, then merges them.
func runPageCombine(ctx context.Context, args []string, env *Environment) error {
	fs, f := newCombineFlagSet()
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printCombineUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		return usageError(err)
	}
	files := fs.Args()
	if len(files) == 0 {
		return fmt.Errorf("%w: at least one document is required", ErrUsage)
	}
	if f.output == "" && !f.count {
		return fmt.Errorf("%w: --output is required unless --count is set", ErrUsage)
	}

	cfg, err := loadSettings(fs, &f.common, env)
	if err != nil {
		return err
	}
	if fs.Changed("offset") {
		cfg.Offset.Initial = f.offset
	}
	if fs.Changed("always-on") {
		cfg.Combine.AlwaysOn = f.alwaysOn
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	parity, err := pdfpager.ParseParity(cfg.Combine.AlwaysOn)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, f.common.log)
	opts, err := libraryOptions(cfg, logger, env)
	if err != nil {
		return err
	}
	if !f.count {
		if err := prepareOutput(f.output); err != nil {
			return err
		}
	}

	ws, err := openWorkspace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = ws.Close() }()

	gen := pdfpager.NewGenerator(ws, opts...)
	infos, err := gen.Discover(ctx, files)
	if err != nil {
		return err
	}
	if f.count {
		printCountTable(env.Stdout, infos)
		return nil
	}
	if !f.common.log.quiet {
		printCountTable(env.Stdout, infos)
	}

	plan := pdfpager.PlanOffsets(infos, cfg.Offset.Initial, parity)
	rendered, err := gen.GenerateAll(ctx, plan)
	if err != nil {
		return err
	}

	combiner := pdfpager.NewCombiner(cfg.Offset.Initial, parity, opts...)
	res, err := combiner.Combine(ctx, pdfpager.PartsFromRendered(rendered), f.output)
	if err != nil {
		return err
	}

	if !f.common.log.quiet {
		fmt.Fprintf(env.Stdout, "Combined %d documents with offset %d into %s (%d pages, %d blank)\n",
			len(rendered), cfg.Offset.Initial, f.output, res.Pages, res.PaddedPages)
		printPads(env.Stdout, rendered)
	}
	return nil
}

// printCountTable prints the natural page count of every document.
func printCountTable(w io.Writer, infos []pdfpager.DocumentInfo) {
	const row = "%-30s | %5s\n"
	fmt.Fprintf(w, row, "Path", "Page Numbers")
	fmt.Fprintln(w, strings.Repeat("-", 35))
	for _, info := range infos {
		fmt.Fprintf(w, "%-30s | %5d\n", info.Path, info.Pages)
	}
}

// printPads lists the documents preceded by a parity page.
func printPads(w io.Writer, rendered []pdfpager.Rendered) {
	for _, r := range rendered {
		if r.PadBefore {
			fmt.Fprintf(w, "  blank page before %s (offset %d)\n", r.Source, r.Offset)
		}
	}
}
