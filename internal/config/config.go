// Package config loads pdfpager settings from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	pdfpager "github.com/alnah/go-pdfpager"
	"github.com/alnah/go-pdfpager/internal/fileutil"
	"github.com/alnah/go-pdfpager/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under os.UserConfigDir searched for named configs.
const AppDir = "go-pdfpager"

// Defaults.
const (
	DefaultDataDir       = "data"
	DefaultInitialOffset = 1
)

// Config holds all settings for a pdfpager invocation.
type Config struct {
	Render    RenderConfig    `yaml:"render"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Offset    OffsetConfig    `yaml:"offset"`
	Combine   CombineConfig   `yaml:"combine"`
}

// RenderConfig defines how source documents are typeset.
type RenderConfig struct {
	Command string `yaml:"command"` // must contain {input} and {output}
	Timeout string `yaml:"timeout"` // Go duration, empty = no limit
}

// WorkspaceConfig defines where source documents come from.
type WorkspaceConfig struct {
	DataDir string `yaml:"dataDir"` // template directory copied per run
}

// OffsetConfig defines page numbering.
type OffsetConfig struct {
	Initial int `yaml:"initial"` // pages preceding the first document
}

// CombineConfig defines how documents are joined.
type CombineConfig struct {
	AlwaysOn      string `yaml:"alwaysOn"`      // "", "odd", "even"
	BlankPageSize string `yaml:"blankPageSize"` // "a4", "letter", "legal"
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() *Config {
	return &Config{
		Render:    RenderConfig{Command: pdfpager.DefaultRenderCommand},
		Workspace: WorkspaceConfig{DataDir: DefaultDataDir},
		Offset:    OffsetConfig{Initial: DefaultInitialOffset},
		Combine:   CombineConfig{BlankPageSize: pdfpager.PageSizeA4},
	}
}

// Validate checks every field. LoadConfig calls it; callers that build or
// override a Config should call it again.
func (c *Config) Validate() error {
	if _, err := pdfpager.ParseRenderCommand(c.Render.Command); err != nil {
		return fmt.Errorf("%w: render.command: %w", ErrInvalidValue, err)
	}
	if _, err := c.RenderTimeout(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Workspace.DataDir) == "" {
		return fmt.Errorf("%w: workspace.dataDir: must not be empty", ErrInvalidValue)
	}
	if c.Offset.Initial < 0 {
		return fmt.Errorf("%w: offset.initial: must be >= 0, got %d", ErrInvalidValue, c.Offset.Initial)
	}
	if _, err := pdfpager.ParseParity(c.Combine.AlwaysOn); err != nil {
		return fmt.Errorf("%w: combine.alwaysOn: %w", ErrInvalidValue, err)
	}
	if _, err := pdfpager.ParsePageSize(c.Combine.BlankPageSize); err != nil {
		return fmt.Errorf("%w: combine.blankPageSize: %w", ErrInvalidValue, err)
	}
	return nil
}

// RenderTimeout parses render.timeout. An empty value means no limit.
func (c *Config) RenderTimeout() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout: %q is not a duration", ErrInvalidValue, c.Render.Timeout)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: render.timeout: must be >= 0, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// LoadConfig loads configuration from a file path or config name.
// A value containing a path separator is read as a file; anything else is
// looked up by name in the current directory, then in the user config
// directory. Fields absent from the file keep their defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrConfigParse, configPath, yamlutil.FormatError(err))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SearchPaths returns the files LoadConfig tries for a config name, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
