package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/config"
	"github.com/alnah/go-pdfpager/internal/fileutil"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Renderer rendererInfo `json:"renderer"`
	Template templateInfo `json:"template"`
	Env      envInfo      `json:"environment"`
	System   systemInfo   `json:"system"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// rendererInfo holds render command detection results.
type rendererInfo struct {
	Command string `json:"command"`
	Program string `json:"program"`
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// templateInfo holds template directory detection results.
type templateInfo struct {
	Dir   string `json:"dir"`
	Found bool   `json:"found"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS   string `json:"os"`
	Arch string `json:"arch"`
	CI   bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// versionTimeout bounds the renderer --version probe.
const versionTimeout = 10 * time.Second

func newDoctorFlagSet() (*flag.FlagSet, *commonFlags, *bool) {
	fs := flag.NewFlagSet(cmdDoctor, flag.ContinueOnError)
	f := &commonFlags{}
	jsonOutput := fs.Bool("json", false, "output as JSON")
	addCommonFlags(fs, f)
	return fs, f, jsonOutput
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	fs, f, jsonOutput := newDoctorFlagSet()
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printDoctorUsage(env.Stdout) }
	if err := fs.Parse(args); err != nil {
		if err = usageError(err); errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return ExitUsage
	}

	cfg, err := loadSettings(fs, f, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	result := runDoctor(cfg, env)

	if *jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(cfg *config.Config, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:   runtime.GOOS,
			Arch: runtime.GOARCH,
		},
	}

	checkRenderer(result, cfg)
	checkTemplate(result, cfg)
	checkEnvironment(result, env)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkRenderer locates the program the render command starts with.
func checkRenderer(result *doctorResult, cfg *config.Config) {
	result.Renderer.Command = cfg.Render.Command

	argv, err := pdfpager.ParseRenderCommand(cfg.Render.Command)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Renderer.Program = argv[0]

	path, err := exec.LookPath(argv[0])
	if err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("%s not found on PATH. Install it (gem install asciidoctor-pdf) or set --render-cmd", argv[0]))
		return
	}
	result.Renderer.Found = true
	result.Renderer.Path = path

	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, "--version").Output() // #nosec G204 -- program comes from operator configuration
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not get %s version: %v", argv[0], err))
		return
	}
	first, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	result.Renderer.Version = first
}

// checkTemplate verifies the template directory exists.
func checkTemplate(result *doctorResult, cfg *config.Config) {
	result.Template.Dir = cfg.Workspace.DataDir
	if fileutil.DirExists(cfg.Workspace.DataDir) {
		result.Template.Found = true
		return
	}
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("Template directory %s not found. offset-generate and page-combine need it; use --data", cfg.Workspace.DataDir))
}

// checkEnvironment detects CI environments.
func checkEnvironment(result *doctorResult, env *Environment) {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if env.getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// checkSystem verifies system requirements.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "pdfpager-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "pdfpager doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Renderer")
	if r.Renderer.Found {
		fmt.Fprintf(w, "  [OK] Found at %s\n", r.Renderer.Path)
		if r.Renderer.Version != "" {
			fmt.Fprintf(w, "  [OK] Version: %s\n", r.Renderer.Version)
		}
	} else {
		fmt.Fprintf(w, "  [ERROR] %s not found\n", r.Renderer.Program)
	}
	fmt.Fprintf(w, "  [OK] Command: %s\n", r.Renderer.Command)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Template")
	if r.Template.Found {
		fmt.Fprintf(w, "  [OK] Directory: %s\n", r.Template.Dir)
	} else {
		fmt.Fprintf(w, "  [WARN] Directory: %s not found\n", r.Template.Dir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
