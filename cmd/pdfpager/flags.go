package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"
)

// Command names.
const (
	cmdOffsetGenerate = "offset-generate"
	cmdPageCombine    = "page-combine"
	cmdOverlay        = "overlay"
	cmdDoctor         = "doctor"
	cmdCompletion     = "completion"
	cmdVersion        = "version"
	cmdHelp           = "help"
)

// logFlags holds output verbosity flags, shared by every PDF command.
type logFlags struct {
	quiet   bool
	verbose bool
}

// commonFlags holds flags shared by the commands that render documents.
type commonFlags struct {
	log       logFlags
	config    string
	dataDir   string
	renderCmd string
	timeout   string
	pageSize  string
}

// offsetFlags holds flags for offset-generate.
type offsetFlags struct {
	common commonFlags
	input  string
	output string
	offset int
}

// combineFlags holds flags for page-combine.
type combineFlags struct {
	common   commonFlags
	output   string
	offset   int
	count    bool
	alwaysOn string
}

// overlayFlags holds flags for overlay.
type overlayFlags struct {
	log    logFlags
	base   string
	upper  string
	output string
	index  int
}

func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVar(&f.config, "config", "", "config file name or path")
	fs.StringVar(&f.dataDir, "data", "", "template directory copied into the workspace (default \"data\")")
	fs.StringVar(&f.renderCmd, "render-cmd", "", "render command with {input} and {output} placeholders")
	fs.StringVar(&f.timeout, "timeout", "", "per-render timeout, e.g. 2m (default none)")
	fs.StringVar(&f.pageSize, "page-size", "", "size of inserted blank pages: a4, letter, legal")
	addLogFlags(fs, &f.log)
}

func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

func newOffsetFlagSet() (*flag.FlagSet, *offsetFlags) {
	fs := flag.NewFlagSet(cmdOffsetGenerate, flag.ContinueOnError)
	f := &offsetFlags{}
	fs.StringVarP(&f.input, "input", "i", "", "source document, relative to the template directory")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.IntVarP(&f.offset, "offset", "O", 1, "pages preceding the document")
	addCommonFlags(fs, &f.common)
	return fs, f
}

func newCombineFlagSet() (*flag.FlagSet, *combineFlags) {
	fs := flag.NewFlagSet(cmdPageCombine, flag.ContinueOnError)
	f := &combineFlags{}
	fs.StringVarP(&f.output, "output", "o", "", "combined PDF path")
	fs.IntVarP(&f.offset, "offset", "O", 1, "pages preceding the first document")
	fs.BoolVarP(&f.count, "count", "c", false, "only print page counts")
	fs.StringVar(&f.alwaysOn, "always-on", "", "start every document on an odd or even page")
	addCommonFlags(fs, &f.common)
	return fs, f
}

func newOverlayFlagSet() (*flag.FlagSet, *overlayFlags) {
	fs := flag.NewFlagSet(cmdOverlay, flag.ContinueOnError)
	f := &overlayFlags{}
	fs.StringVarP(&f.base, "base", "b", "", "PDF drawn underneath")
	fs.StringVarP(&f.upper, "upper", "u", "", "PDF drawn on top")
	fs.StringVarP(&f.output, "output", "o", "", "output PDF path")
	fs.IntVarP(&f.index, "index", "i", 0, "0-based base page receiving the first upper page")
	addLogFlags(fs, &f.log)
	return fs, f
}

// usageError turns a flag parse error into an ErrUsage error. flag.ErrHelp
// passes through unchanged: pflag has already called fs.Usage, and runMain
// exits 0 for it.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUsage, err)
}
