package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfpager <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  offset-generate  Render one document with shifted page numbers")
	fmt.Fprintln(w, "  page-combine     Render documents with continuous page numbers and merge them")
	fmt.Fprintln(w, "  overlay          Stamp the pages of one PDF onto another")
	fmt.Fprintln(w, "  doctor           Check the render tool and system setup")
	fmt.Fprintln(w, "  completion       Generate shell completion script")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'pdfpager help <command>' for details on a specific command.")
}

func printSharedFlags(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --data <dir>          Template directory (default: data)")
	fmt.Fprintln(w, "      --render-cmd <cmd>    Render command, e.g. \"asciidoctor-pdf {input} -o {output}\"")
	fmt.Fprintln(w, "      --timeout <dur>       Per-render timeout (e.g. 2m)")
	fmt.Fprintln(w, "      --page-size <s>       Blank page size: a4, letter, legal")
	fmt.Fprintln(w)
	printOutputControl(w)
}

func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug output")
}

// printOffsetUsage prints usage for the offset-generate command.
func printOffsetUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfpager offset-generate -i <input> -o <output> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a document as if --offset pages preceded it, so its table of")
	fmt.Fprintln(w, "contents and page numbers start at offset+1. The output keeps the")
	fmt.Fprintln(w, "document's own page count.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Source document, relative to the template directory")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF")
	fmt.Fprintln(w, "  -O, --offset <n>          Pages preceding the document (default: 1)")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// printCombineUsage prints usage for the page-combine command.
func printCombineUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfpager page-combine <files...> -o <output> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render each document once to count its pages, render it again with the")
	fmt.Fprintln(w, "offset of everything before it, and merge the results in order.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  files    Source documents, relative to the template directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Combined PDF (required unless --count)")
	fmt.Fprintln(w, "  -O, --offset <n>          Pages preceding the first document (default: 1)")
	fmt.Fprintln(w, "  -c, --count               Only print page counts")
	fmt.Fprintln(w, "      --always-on <s>       Start every document on an odd or even page")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// printOverlayUsage prints usage for the overlay command.
func printOverlayUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfpager overlay -b <base> -u <upper> -o <output> -i <index> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Draw page k of the upper PDF over page index+k of the base PDF.")
	fmt.Fprintln(w, "Base pages outside that range are copied unchanged.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -b, --base <path>         PDF drawn underneath")
	fmt.Fprintln(w, "  -u, --upper <path>        PDF drawn on top")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF")
	fmt.Fprintln(w, "  -i, --index <n>           0-based base page receiving the first upper page")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfpager doctor [--json] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the render tool, the template directory and the temp directory")
	fmt.Fprintln(w, "with the settings a render would use.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "      --json                Output as JSON")
	fmt.Fprintln(w)
	printSharedFlags(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case cmdOffsetGenerate:
		printOffsetUsage(env.Stdout)
	case cmdPageCombine:
		printCombineUsage(env.Stdout)
	case cmdOverlay:
		printOverlayUsage(env.Stdout)
	case cmdDoctor:
		printDoctorUsage(env.Stdout)
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: pdfpager version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: pdfpager help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
