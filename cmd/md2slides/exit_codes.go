package main

import (
	"errors"
	"os"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/watch"
)

// Exit codes for the md2slides CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful generation
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, theme or option value
	ExitIO      = 3 // Source, user file or output not accessible
	ExitBrowser = 4 // Browser errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2slides.ErrBrowserConnect) ||
		errors.Is(err, md2slides.ErrPageCreate) ||
		errors.Is(err, md2slides.ErrPageLoad) ||
		errors.Is(err, md2slides.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigPath) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, config.ErrInputTooLarge) ||
		errors.Is(err, md2slides.ErrThemeNotFound) ||
		errors.Is(err, md2slides.ErrThemeAssetMissing) ||
		errors.Is(err, md2slides.ErrInvalidLinenos) ||
		errors.Is(err, md2slides.ErrInvalidTOCLevel) ||
		errors.Is(err, md2slides.ErrUnknownEngine) ||
		errors.Is(err, md2slides.ErrUnknownEncoding) ||
		errors.Is(err, md2slides.ErrUnsupportedFormat) ||
		errors.Is(err, md2slides.ErrDestinationNotFile) ||
		errors.Is(err, watch.ErrNotDirectory) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, md2slides.ErrSourceNotFound) ||
		errors.Is(err, md2slides.ErrUserFileNotFound) ||
		errors.Is(err, md2slides.ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
