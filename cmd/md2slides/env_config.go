package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alnah/go-md2slides/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // MD2SLIDES_CONFIG: config file path
	Theme          string        // MD2SLIDES_THEME: theme name or directory
	Destination    string        // MD2SLIDES_DESTINATION: output file
	Encoding       string        // MD2SLIDES_ENCODING: source encoding
	HighlightStyle string        // MD2SLIDES_HIGHLIGHT_STYLE: chroma style
	PDFTimeout     time.Duration // MD2SLIDES_PDF_TIMEOUT: PDF page load timeout
}

// knownEnvVars lists valid MD2SLIDES_* environment variables.
var knownEnvVars = map[string]bool{
	"MD2SLIDES_CONFIG":          true,
	"MD2SLIDES_THEME":           true,
	"MD2SLIDES_DESTINATION":     true,
	"MD2SLIDES_ENCODING":        true,
	"MD2SLIDES_HIGHLIGHT_STYLE": true,
	"MD2SLIDES_PDF_TIMEOUT":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:     getenv("MD2SLIDES_CONFIG"),
		Theme:          getenv("MD2SLIDES_THEME"),
		Destination:    getenv("MD2SLIDES_DESTINATION"),
		Encoding:       getenv("MD2SLIDES_ENCODING"),
		HighlightStyle: getenv("MD2SLIDES_HIGHLIGHT_STYLE"),
	}

	if timeout := getenv("MD2SLIDES_PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.PDFTimeout = d
		}
	}

	return cfg
}

// warnUnknownEnvVars logs unrecognized MD2SLIDES_* variables.
// Catches typos like MD2SLIDES_THEMES.
func warnUnknownEnvVars(environ []string, logger *slog.Logger) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "MD2SLIDES_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			logger.Warn("unknown environment variable (typo?)", "name", name)
		}
	}
}

// applyEnvConfig applies environment values the config file left at their
// default. Priority: CLI flags > env vars > config file > defaults
// (flags are applied later by mergeFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	defaults := config.DefaultConfig()

	if env.Theme != "" && cfg.Theme == defaults.Theme {
		cfg.Theme = env.Theme
	}
	if env.Destination != "" && cfg.Destination == defaults.Destination {
		cfg.Destination = env.Destination
	}
	if env.Encoding != "" && cfg.Encoding == defaults.Encoding {
		cfg.Encoding = env.Encoding
	}
	if env.HighlightStyle != "" && cfg.HighlightStyle == defaults.HighlightStyle {
		cfg.HighlightStyle = env.HighlightStyle
	}
}

// resolvePDFTimeout returns the PDF timeout with priority flag > env.
// Zero means the library default.
func resolvePDFTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: --pdf-timeout: %v", ErrUsage, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: --pdf-timeout: must be positive, got %s", ErrUsage, d)
	}
	return d, nil
}
