package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/config"
	"github.com/alnah/go-pdfpager/internal/fileutil"
	"github.com/alnah/go-pdfpager/internal/hints"
	"github.com/alnah/go-pdfpager/internal/workspace"
)

// newLogger builds the CLI logger: Info by default, Debug with --verbose,
// Error only with --quiet.
func newLogger(w io.Writer, f logFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.quiet:
		level = slog.LevelError
	case f.verbose:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadSettings merges defaults, the config file, PDFPAGER_* variables and
// the shared flags, in increasing priority. The result is not validated:
// commands apply their own flags first.
func loadSettings(fs *flag.FlagSet, f *commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env)
	if env.Environ != nil {
		warnUnknownEnvVars(env.Stderr, env.Environ())
	}

	cfg := config.DefaultConfig()
	name := f.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		var err error
		if cfg, err = config.LoadConfig(name); err != nil {
			if fileutil.IsFilePath(name) {
				return nil, err
			}
			return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
	}

	if err := applyEnvConfig(envCfg, cfg); err != nil {
		return nil, err
	}

	if fs.Changed("data") {
		cfg.Workspace.DataDir = f.dataDir
	}
	if fs.Changed("render-cmd") {
		cfg.Render.Command = f.renderCmd
	}
	if fs.Changed("timeout") {
		cfg.Render.Timeout = f.timeout
	}
	if fs.Changed("page-size") {
		cfg.Combine.BlankPageSize = f.pageSize
	}
	return cfg, nil
}

// libraryOptions builds the options shared by Generator and Combiner from a
// validated config.
func libraryOptions(cfg *config.Config, logger *slog.Logger, env *Environment) ([]pdfpager.Option, error) {
	size, err := pdfpager.ParsePageSize(cfg.Combine.BlankPageSize)
	if err != nil {
		return nil, err
	}

	ts := env.Typesetter
	if ts == nil {
		argv, err := pdfpager.ParseRenderCommand(cfg.Render.Command)
		if err != nil {
			return nil, err
		}
		timeout, err := cfg.RenderTimeout()
		if err != nil {
			return nil, err
		}
		cts := pdfpager.NewCommandTypesetter(argv, logger)
		cts.Timeout = timeout
		ts = cts
	}

	opts := []pdfpager.Option{
		pdfpager.WithLogger(logger),
		pdfpager.WithTypesetter(ts),
		pdfpager.WithBlankPageSize(size),
	}
	if env.Toolkit != nil {
		opts = append(opts, pdfpager.WithToolkit(env.Toolkit))
	}
	return opts, nil
}

// openWorkspace copies the template directory into a fresh workspace.
func openWorkspace(cfg *config.Config, logger *slog.Logger) (*workspace.Workspace, error) {
	ws, err := workspace.New(cfg.Workspace.DataDir)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, hints.ForTemplateDir())
	}
	logger.Debug("workspace ready", "template", cfg.Workspace.DataDir, "path", ws.Dir())
	return ws, nil
}

// prepareOutput creates the parent directory of path.
func prepareOutput(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !fileutil.DirExists(dir) {
		return fmt.Errorf("%w: %s is not a directory", ErrWriteOutput, dir)
	}
	return nil
}
