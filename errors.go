package md2slides

import (
	"errors"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrSourceNotFound     = errors.New("source file or directory not found")
	ErrDestinationNotFile = errors.New("destination exists and is not a file")
	ErrUserFileNotFound   = errors.New("user file not found")
	ErrTemplateRender     = errors.New("template rendering failed")
	ErrWriteOutput        = errors.New("failed to write output")

	// Options validation errors.
	ErrInvalidLinenos  = errors.New("invalid linenos value")
	ErrInvalidTOCLevel = errors.New("invalid max TOC level")

	// Macro errors. ErrMacroUnavailable is only logged.
	ErrInvalidMacro     = errors.New("invalid macro")
	ErrPipelineFrozen   = errors.New("macro pipeline is frozen")
	ErrMacroUnavailable = errors.New("macro unavailable")

	// ErrAssetEmbed is only logged: the asset URL is left as is.
	ErrAssetEmbed = errors.New("failed to embed asset")

	// PDF export errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
)

// Errors raised by internal packages, re-exported for errors.Is checks.
var (
	ErrThemeNotFound     = assets.ErrThemeNotFound
	ErrThemeAssetMissing = assets.ErrThemeAssetMissing
	ErrUnsupportedFormat = pipeline.ErrUnsupportedFormat
	ErrUnknownEngine     = pipeline.ErrUnknownEngine
	ErrDecode            = fileutil.ErrDecode
	ErrUnknownEncoding   = fileutil.ErrUnknownEncoding
)
