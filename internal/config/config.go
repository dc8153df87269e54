// Package config loads and validates slideshow configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigPath = errors.New("config path cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidConfig   = errors.New("invalid config")
)

// Line number modes for highlighted code.
const (
	LinenosNo     = "no"
	LinenosInline = "inline"
	LinenosTable  = "table"
)

// ValidLinenos lists the accepted linenos values.
var ValidLinenos = []string{LinenosNo, LinenosInline, LinenosTable}

// Defaults.
const (
	DefaultDestination    = "presentation.html"
	DefaultTheme          = "default"
	DefaultEncoding       = "utf8"
	DefaultMaxTOCLevel    = 2
	DefaultHighlightStyle = "github"
)

// Config holds all configuration for slideshow generation.
type Config struct {
	Source         []string `yaml:"source"`
	Destination    string   `yaml:"destination"`
	Theme          string   `yaml:"theme"`           // Built-in theme name or theme directory
	Embed          bool     `yaml:"embed"`           // Inline CSS, JS and images into a standalone file
	Relative       bool     `yaml:"relative"`        // Asset links relative to the destination directory
	Linenos        string   `yaml:"linenos"`         // "no", "inline", "table"
	MaxTOCLevel    int      `yaml:"max-toc-level"`   // 0 = no table of contents
	PresenterNotes bool     `yaml:"presenter-notes"` // Keep "presenter notes" sections
	Encoding       string   `yaml:"encoding"`        // Source encoding (WHATWG label)
	Extensions     []string `yaml:"extensions"`      // Markdown extensions, nil = defaults
	MarkdownEngine string   `yaml:"markdown-engine"` // "goldmark" or "gomarkdown"
	HighlightStyle string   `yaml:"highlight-style"` // Chroma style for code blocks
	CSS            []string `yaml:"css"`             // User stylesheets, local paths or URLs
	JS             []string `yaml:"js"`              // User scripts, local paths or URLs
	Watch          bool     `yaml:"watch"`

	// BaseDir is the directory relative paths were resolved against.
	BaseDir string `yaml:"-"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Destination:    DefaultDestination,
		Theme:          DefaultTheme,
		Linenos:        LinenosInline,
		MaxTOCLevel:    DefaultMaxTOCLevel,
		PresenterNotes: true,
		Encoding:       DefaultEncoding,
		MarkdownEngine: pipeline.EngineGoldmark,
		HighlightStyle: DefaultHighlightStyle,
	}
}

// Validate checks option values.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., the CLI after merging flags).
func (c *Config) Validate() error {
	if !IsValidLinenos(c.Linenos) {
		return fmt.Errorf("%w: linenos: invalid value %q (must be %s)",
			ErrInvalidConfig, c.Linenos, strings.Join(ValidLinenos, ", "))
	}
	if c.MaxTOCLevel < 0 {
		return fmt.Errorf("%w: max-toc-level: must be >= 0, got %d", ErrInvalidConfig, c.MaxTOCLevel)
	}
	switch c.MarkdownEngine {
	case "", pipeline.EngineGoldmark, pipeline.EngineGomarkdown:
	default:
		return fmt.Errorf("%w: markdown-engine: invalid value %q (must be %s or %s)",
			ErrInvalidConfig, c.MarkdownEngine, pipeline.EngineGoldmark, pipeline.EngineGomarkdown)
	}
	for i, s := range c.Source {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: source[%d]: empty path", ErrInvalidConfig, i)
		}
	}
	return nil
}

// IsValidLinenos reports whether v is an accepted linenos value.
func IsValidLinenos(v string) bool {
	for _, valid := range ValidLinenos {
		if v == valid {
			return true
		}
	}
	return false
}

// IsConfigFile reports whether path names a YAML configuration file.
func IsConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a configuration file on top of DefaultConfig.
// Relative paths inside the file resolve against the file's directory.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigPath
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := unmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigParse, path, err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.ResolvePaths(baseDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ResolvePaths makes the relative paths of the configuration relative to baseDir.
// URLs and absolute paths are kept. A theme is treated as a path when it
// contains a separator or names a directory under baseDir.
func (c *Config) ResolvePaths(baseDir string) {
	c.BaseDir = baseDir

	for i, s := range c.Source {
		c.Source[i] = resolve(baseDir, s)
	}
	if c.Destination != "" {
		c.Destination = resolve(baseDir, c.Destination)
	}
	for i, s := range c.CSS {
		c.CSS[i] = resolve(baseDir, s)
	}
	for i, s := range c.JS {
		c.JS[i] = resolve(baseDir, s)
	}

	if c.Theme != "" {
		if fileutil.IsFilePath(c.Theme) || fileutil.DirExists(filepath.Join(baseDir, c.Theme)) {
			c.Theme = resolve(baseDir, c.Theme)
		}
	}
}

// resolve joins a relative local path onto baseDir.
func resolve(baseDir, p string) string {
	if p == "" || fileutil.IsURL(p) || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}
