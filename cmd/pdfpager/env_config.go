package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-pdfpager/internal/config"
)

const envPrefix = "PDFPAGER_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // PDFPAGER_CONFIG: config file name or path
	DataDir    string // PDFPAGER_DATA_DIR: template directory
	RenderCmd  string // PDFPAGER_RENDER_CMD: render command template
	Timeout    string // PDFPAGER_TIMEOUT: per-render timeout
	Offset     string // PDFPAGER_OFFSET: initial page offset
	AlwaysOn   string // PDFPAGER_ALWAYS_ON: odd or even
	PageSize   string // PDFPAGER_PAGE_SIZE: blank page size
}

// knownEnvVars lists valid PDFPAGER_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"PDFPAGER_CONFIG":     true,
	"PDFPAGER_DATA_DIR":   true,
	"PDFPAGER_RENDER_CMD": true,
	"PDFPAGER_TIMEOUT":    true,
	"PDFPAGER_OFFSET":     true,
	"PDFPAGER_ALWAYS_ON":  true,
	"PDFPAGER_PAGE_SIZE":  true,
}

// loadEnvConfig reads the recognized PDFPAGER_* variables.
func loadEnvConfig(env *Environment) *envConfig {
	return &envConfig{
		ConfigPath: env.getenv("PDFPAGER_CONFIG"),
		DataDir:    env.getenv("PDFPAGER_DATA_DIR"),
		RenderCmd:  env.getenv("PDFPAGER_RENDER_CMD"),
		Timeout:    env.getenv("PDFPAGER_TIMEOUT"),
		Offset:     env.getenv("PDFPAGER_OFFSET"),
		AlwaysOn:   env.getenv("PDFPAGER_ALWAYS_ON"),
		PageSize:   env.getenv("PDFPAGER_PAGE_SIZE"),
	}
}

// warnUnknownEnvVars writes a warning for every unrecognized PDFPAGER_*
// variable, to catch typos like PDFPAGER_OFSET.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the environment variables that
// are set. CLI flags are applied afterwards, giving
// flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	if env.DataDir != "" {
		cfg.Workspace.DataDir = env.DataDir
	}
	if env.RenderCmd != "" {
		cfg.Render.Command = env.RenderCmd
	}
	if env.Timeout != "" {
		cfg.Render.Timeout = env.Timeout
	}
	if env.AlwaysOn != "" {
		cfg.Combine.AlwaysOn = env.AlwaysOn
	}
	if env.PageSize != "" {
		cfg.Combine.BlankPageSize = env.PageSize
	}
	if env.Offset != "" {
		n, err := strconv.Atoi(env.Offset)
		if err != nil {
			return fmt.Errorf("%w: PDFPAGER_OFFSET=%q is not an integer", config.ErrInvalidValue, env.Offset)
		}
		cfg.Offset.Initial = n
	}
	return nil
}
