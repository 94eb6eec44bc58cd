package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	TakesFiles  bool   // accepts file arguments
	FilePattern string // glob for file arguments
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"page-size": {Values: []string{"a4", "letter", "legal"}},
	"always-on": {Values: []string{"odd", "even"}},

	"config": {FileGlob: "*.yaml,*.yml"},
	"input":  {FileGlob: "*.adoc,*.asciidoc"},
	"base":   {FileGlob: "*.pdf"},
	"upper":  {FileGlob: "*.pdf"},
	"output": {FileGlob: "*.pdf"},

	"data": {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	offsetFS, _ := newOffsetFlagSet()
	combineFS, _ := newCombineFlagSet()
	overlayFS, _ := newOverlayFlagSet()
	doctorFS, _, _ := newDoctorFlagSet()

	return []commandDef{
		{
			Name:  cmdOffsetGenerate,
			Desc:  "Render one document with shifted page numbers",
			Flags: extractFlagsFromFlagSet(offsetFS),
		},
		{
			Name:        cmdPageCombine,
			Desc:        "Render documents with continuous page numbers and merge them",
			Flags:       extractFlagsFromFlagSet(combineFS),
			TakesFiles:  true,
			FilePattern: "*.adoc,*.asciidoc",
		},
		{
			Name:  cmdOverlay,
			Desc:  "Stamp the pages of one PDF onto another",
			Flags: extractFlagsFromFlagSet(overlayFS),
		},
		{
			Name:  cmdDoctor,
			Desc:  "Check the render tool and system setup",
			Flags: extractFlagsFromFlagSet(doctorFS),
		},
		{Name: cmdCompletion, Desc: "Generate shell completion script"},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command"},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func globs(pattern string) []string {
	return strings.Split(pattern, ",")
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for pdfpager\n")
	b.WriteString("_pdfpager_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] {
				continue
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "        --%s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")); return ;;\n",
					f.Long, strings.Join(f.Values, " "))
			case flagFile:
				fmt.Fprintf(&b, "        --%s) COMPREPLY=($(compgen -f -- \"${cur}\")); return ;;\n", f.Long)
			case flagDir:
				fmt.Fprintf(&b, "        --%s) COMPREPLY=($(compgen -d -- \"${cur}\")); return ;;\n", f.Long)
			default:
				continue
			}
			seen[f.Long] = true
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		var opts []string
		for _, f := range c.Flags {
			opts = append(opts, "--"+f.Long)
			if f.Short != "" {
				opts = append(opts, "-"+f.Short)
			}
		}
		if c.Name == cmdHelp {
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")) ;;\n", c.Name, commandNames(cmds))
			continue
		}
		if c.Name == cmdCompletion {
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"bash zsh fish powershell\" -- \"${cur}\")) ;;\n", c.Name)
			continue
		}
		if len(opts) == 0 {
			continue
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\")) ;;\n",
				c.Name, strings.Join(opts, " "))
		} else {
			fmt.Fprintf(&b, "        %s) COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\")) ;;\n", c.Name, strings.Join(opts, " "))
		}
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -F _pdfpager_completions pdfpager\n")
	return b.String()
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef pdfpager\n\n")
	b.WriteString("_pdfpager() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "                '*:file:_files -g \"%s\"'\n", strings.ReplaceAll(c.FilePattern, ",", " "))
		} else {
			b.WriteString("                && return\n")
		}
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _pdfpager pdfpager\n")
	return b.String()
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":file:_files -g \"" + strings.Join(globs(f.FileGlob), " ") + "\""
	case flagDir:
		return ":directory:_directories"
	default:
		return ":value:"
	}
}

func zshEscape(s string) string {
	s = strings.ReplaceAll(s, "'", "'\\''")
	s = strings.ReplaceAll(s, "[", "\\[")
	return strings.ReplaceAll(s, "]", "\\]")
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for pdfpager\n\n")
	b.WriteString("function __fish_pdfpager_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_pdfpager_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $argv[1] = $cmd[2]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c pdfpager -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c pdfpager -n __fish_pdfpager_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	b.WriteString("\n")
	for _, c := range cmds {
		cond := "'__fish_pdfpager_using_command " + c.Name + "'"
		for _, f := range c.Flags {
			line := "complete -c pdfpager -n " + cond + " -l " + f.Long
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			case flagString, flagInt:
				line += " -x"
			}
			b.WriteString(line + " -d '" + fishEscape(f.Desc) + "'\n")
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c pdfpager -n %s -F\n", cond)
		}
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", "\\'")
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for pdfpager\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName pdfpager -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $commands = @{\n")
	for _, c := range cmds {
		var opts []string
		for _, f := range c.Flags {
			opts = append(opts, "'--"+f.Long+"'")
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(opts, ", "))
	}
	b.WriteString("    }\n\n")
	b.WriteString("    $elements = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    if ($elements.Count -le 1 -or ($elements.Count -eq 2 -and $wordToComplete)) {\n")
	b.WriteString("        $commands.Keys | Where-Object { $_ -like \"$wordToComplete*\" } | Sort-Object | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")
	b.WriteString("    $flags = $commands[$elements[1]]\n")
	b.WriteString("    if ($flags) {\n")
	b.WriteString("        $flags | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: pdfpager completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(pdfpager completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(pdfpager completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    pdfpager completion fish > ~/.config/fish/completions/pdfpager.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    pdfpager completion powershell | Out-String | Invoke-Expression")
}
