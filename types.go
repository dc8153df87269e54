package md2slides

import (
	"log/slog"
	"time"
)

// Context keys set by the default macros.
const (
	ContextFooter         = "footer"
	ContextPresenterNotes = "presenter_notes"
)

// Basic slide classes. A slide carries exactly one of them after macro processing.
const (
	ClassSlideTitle   = "slide-title"
	ClassSlideContent = "slide-content"
)

// Line number modes for highlighted code.
const (
	LinenosNo     = "no"
	LinenosInline = "inline"
	LinenosTable  = "table"
)

// Defaults.
const (
	DefaultDestination    = "presentation.html"
	DefaultEncoding       = "utf8"
	DefaultMaxTOCLevel    = 2
	DefaultHighlightStyle = "github"
	DefaultHeadTitle      = "Untitled Presentation"
)

// SourceRef identifies the file a slide was read from.
type SourceRef struct {
	RelPath string // Path as traversed
	AbsPath string
}

// MacroContext holds per-slide values shared by every macro of one slide.
type MacroContext map[string]any

// String returns the string stored under key, or "".
func (c MacroContext) String(key string) string {
	v, _ := c[key].(string)
	return v
}

// Slide is one output unit of the slideshow.
type Slide struct {
	Number         int    // 1-based, 0 until numbered
	Header         string // Heading markup, "" when absent
	Level          int    // Heading depth, 0 when absent
	Title          string // Heading inner HTML, "" when absent
	Content        string
	Classes        []string
	PresenterNotes string
	Source         SourceRef
	Context        MacroContext
}

// Footer returns the footer text set by the footer macro.
func (s *Slide) Footer() string {
	return s.Context.String(ContextFooter)
}

// IsEmpty reports whether the slide has neither header nor content.
func (s *Slide) IsEmpty() bool {
	return s.Header == "" && s.Content == ""
}

// TocEntry is one node of the table of contents.
type TocEntry struct {
	Title    string
	Level    int
	Number   int
	Children []*TocEntry // Never nil
}

// Asset describes a stylesheet or script handed to the template.
type Asset struct {
	PathURL    string // Link target; empty when the asset only exists embedded
	Contents   string
	Dir        string // Directory on disk, "" for remote or embedded assets
	Embeddable bool
}

// Inline reports whether the template should inline the asset contents.
func (a *Asset) Inline(embed bool) bool {
	return a.Embeddable && (embed || a.PathURL == "")
}

// ThemeCSS groups the stylesheets of a theme.
type ThemeCSS struct {
	Base   *Asset
	Print  *Asset
	Screen *Asset
	Theme  *Asset
}

// RenderContext is the data handed to the theme template.
type RenderContext struct {
	HeadTitle string
	NumSlides int
	Slides    []*Slide
	TOC       []*TocEntry
	Embed     bool
	CSS       ThemeCSS
	JS        *Asset
	CodeCSS   string // Stylesheet for highlighted code
	UserCSS   []*Asset
	UserJS    []*Asset
	Version   string
}

// Options configures a Generator.
// Start from DefaultOptions: the zero value disables presenter notes.
type Options struct {
	Source         []string // Files or directories, walked in order
	Destination    string   // Output file; ".pdf" prints the slideshow
	Theme          string   // Built-in theme name or theme directory
	Direct         bool     // Execute writes to the given writer instead of Destination
	Embed          bool     // Inline CSS, JS and images
	Relative       bool     // Asset links relative to the destination directory
	Linenos        string   // "no", "inline", "table"
	MaxTOCLevel    int      // 0 = empty table of contents
	PresenterNotes bool
	Encoding       string   // Source encoding (WHATWG label)
	Extensions     []string // Markdown extensions, nil = defaults
	MarkdownEngine string   // "goldmark" or "gomarkdown"
	HighlightStyle string   // Chroma style name
	CSS            []string // User stylesheets, local paths or URLs
	JS             []string // User scripts, local paths or URLs
}

// DefaultOptions returns options with the default values for source.
func DefaultOptions(source ...string) Options {
	return Options{
		Source:         source,
		Destination:    DefaultDestination,
		Linenos:        LinenosInline,
		MaxTOCLevel:    DefaultMaxTOCLevel,
		PresenterNotes: true,
		Encoding:       DefaultEncoding,
		HighlightStyle: DefaultHighlightStyle,
	}
}

// Option configures a Generator.
type Option func(*Generator)

// defaultPDFTimeout bounds page loading during PDF export.
const defaultPDFTimeout = 30 * time.Second

// WithLogger sets the logger for progress notices and skipped files.
// Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithVersion sets the version reported to the template.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithPDFTimeout sets the page load timeout for PDF export.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithPDFTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2slides: WithPDFTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.pdfTimeout = d
	}
}

// withPDFRenderer replaces the browser renderer (tests).
func withPDFRenderer(r pdfRenderer) Option {
	return func(g *Generator) {
		g.pdf = r
	}
}
