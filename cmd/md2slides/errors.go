package main

import (
	"errors"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/hints"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// hintFor returns actionable hints for known failures, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2slides.ErrBrowserConnect),
		errors.Is(err, md2slides.ErrPageCreate),
		errors.Is(err, md2slides.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound()
	case errors.Is(err, md2slides.ErrSourceNotFound):
		return hints.ForSourceNotFound()
	case errors.Is(err, md2slides.ErrWriteOutput):
		return hints.ForOutputDirectory()
	case errors.Is(err, md2slides.ErrThemeNotFound):
		return hints.ForThemeNotFound(assets.BuiltinThemes())
	case errors.Is(err, md2slides.ErrUnknownEncoding):
		return hints.ForDecode("")
	case errors.Is(err, md2slides.ErrUnsupportedFormat):
		return hints.ForUnsupportedFormat(pipeline.FileExtensions())
	}
	return ""
}
