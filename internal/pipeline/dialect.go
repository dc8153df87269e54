package pipeline

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// ErrUnsupportedFormat indicates a source file has no usable converter.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrUnknownEngine indicates an unknown markdown engine name.
var ErrUnknownEngine = errors.New("unknown markdown engine")

// Dialect is a markup language a source file is written in.
type Dialect string

// Supported and recognized dialects.
const (
	Markdown         Dialect = "markdown"
	HTML             Dialect = "html"
	RestructuredText Dialect = "restructuredtext"
	Textile          Dialect = "textile"
)

// Markdown engines.
const (
	EngineGoldmark   = "goldmark"
	EngineGomarkdown = "gomarkdown"
)

// extensions maps lowercase file extensions to dialects.
var extensions = map[string]Dialect{
	".md":       Markdown,
	".markdown": Markdown,
	".mdown":    Markdown,
	".markdn":   Markdown,
	".mdn":      Markdown,
	".mdwn":     Markdown,
	".html":     HTML,
	".htm":      HTML,
	".rst":      RestructuredText,
	".rest":     RestructuredText,
	".textile":  Textile,
}

// DialectFor returns the dialect of a file from its extension.
// Returns ErrUnsupportedFormat for unknown extensions.
func DialectFor(path string) (Dialect, error) {
	ext := strings.ToLower(filepath.Ext(path))
	d, ok := extensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return d, nil
}

// FileExtensions returns the recognized file extensions, sorted.
func FileExtensions() []string {
	exts := make([]string, 0, len(extensions))
	for ext := range extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// IsMarkupFile reports whether the file extension maps to a known dialect.
func IsMarkupFile(path string) bool {
	_, err := DialectFor(path)
	return err == nil
}

// ConverterOptions configures the converters of a Registry.
type ConverterOptions struct {
	// Engine selects the markdown converter: "goldmark" (default) or "gomarkdown".
	Engine string

	// Extensions lists goldmark extension names. Nil selects DefaultExtensions.
	Extensions []string
}

// Registry maps dialects to converters.
type Registry struct {
	converters map[Dialect]HTMLConverter
	unknown    []string
}

// NewRegistry builds the converters for every supported dialect.
// Returns ErrUnknownEngine if the markdown engine is not recognized.
func NewRegistry(opts ConverterOptions) (*Registry, error) {
	r := &Registry{
		converters: map[Dialect]HTMLConverter{
			HTML: &PassthroughConverter{},
		},
	}

	switch opts.Engine {
	case "", EngineGoldmark:
		names := opts.Extensions
		if names == nil {
			names = DefaultExtensions()
		}
		conv, unknown := NewGoldmarkConverter(names...)
		r.converters[Markdown] = conv
		r.unknown = unknown
	case EngineGomarkdown:
		r.converters[Markdown] = NewGomarkdownConverter()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, opts.Engine)
	}

	return r, nil
}

// ConverterFor returns the converter for a file.
// Returns ErrUnsupportedFormat for unknown extensions and for recognized
// dialects without a converter.
func (r *Registry) ConverterFor(path string) (HTMLConverter, Dialect, error) {
	d, err := DialectFor(path)
	if err != nil {
		return nil, "", err
	}
	conv, ok := r.converters[d]
	if !ok {
		return nil, d, fmt.Errorf("%w: no %s converter available", ErrUnsupportedFormat, d)
	}
	return conv, d, nil
}

// HasConverter reports whether a file can be converted by the registry.
// Recognized dialects without a converter report false.
func (r *Registry) HasConverter(path string) bool {
	_, _, err := r.ConverterFor(path)
	return err == nil
}

// UnknownExtensions returns the configured extension names that were ignored.
func (r *Registry) UnknownExtensions() []string {
	return r.unknown
}
