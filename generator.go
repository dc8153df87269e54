package md2slides

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/natefinch/atomic"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ Macro                         = (*CodeHighlightingMacro)(nil)
	_ Macro                         = (*EmbedImagesMacro)(nil)
	_ Macro                         = (*FixImagePathsMacro)(nil)
	_ Macro                         = FxMacro{}
	_ Macro                         = NotesMacro{}
	_ Macro                         = (*QRMacro)(nil)
	_ Macro                         = FooterMacro{}
	_ pdfRenderer                   = (*rodRenderer)(nil)
)

// Generator turns markup sources into a slideshow.
// Create with New, extend with RegisterMacro, then call Render, Write or Execute.
type Generator struct {
	opts        Options
	logger      *slog.Logger
	version     string
	destination string // Absolute destination path
	relativeTo  string // Directory asset links are relative to, "" for file:// URLs

	theme        *assets.Theme
	template     *template.Template
	registry     *pipeline.Registry
	preprocessor pipeline.MarkdownPreprocessor
	segmenter    SlideSegmenter
	macros       *MacroPipeline
	userCSS      []*Asset
	userJS       []*Asset

	pdf        pdfRenderer
	pdfTimeout time.Duration
}

// New validates opts and prepares a Generator.
// Returns ErrSourceNotFound, ErrDestinationNotFile, ErrInvalidLinenos,
// ErrInvalidTOCLevel, ErrUnknownEncoding, ErrThemeNotFound,
// ErrThemeAssetMissing or ErrUserFileNotFound.
func New(opts Options, options ...Option) (*Generator, error) {
	g := &Generator{
		logger:       slog.New(slog.DiscardHandler),
		version:      "dev",
		preprocessor: &pipeline.CommonMarkPreprocessor{},
		pdfTimeout:   defaultPDFTimeout,
	}
	for _, opt := range options {
		opt(g)
	}

	g.opts = withDefaults(opts)
	if err := validateOptions(g.opts); err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(g.opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}
	g.destination = dest
	if g.opts.Relative {
		g.relativeTo = filepath.Dir(dest)
	}
	g.segmenter = SlideSegmenter{PresenterNotes: g.opts.PresenterNotes}

	g.theme, err = assets.LoadTheme(g.opts.Theme)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("loaded theme", "name", g.theme.Name, "builtin", g.theme.IsBuiltin())
	tmplFile, err := g.theme.File(assets.TemplateFile)
	if err != nil {
		return nil, err
	}
	g.template, err = parseTemplate(tmplFile)
	if err != nil {
		return nil, err
	}

	g.registry, err = pipeline.NewRegistry(pipeline.ConverterOptions{
		Engine:     g.opts.MarkdownEngine,
		Extensions: g.opts.Extensions,
	})
	if err != nil {
		return nil, err
	}
	if unknown := g.registry.UnknownExtensions(); len(unknown) > 0 {
		g.logger.Warn("ignoring unknown markdown extensions",
			"extensions", strings.Join(unknown, ","),
			"known", strings.Join(pipeline.KnownExtensions(), ","))
	}

	if g.userCSS, err = loadUserFiles(g.opts.CSS, g.opts.Encoding, g.relativeTo, g.logger); err != nil {
		return nil, err
	}
	if g.userJS, err = loadUserFiles(g.opts.JS, g.opts.Encoding, g.relativeTo, g.logger); err != nil {
		return nil, err
	}

	g.macros, err = NewMacroPipeline(defaultMacros(macroOptions{
		embed:          g.opts.Embed,
		relative:       g.opts.Relative,
		linenos:        g.opts.Linenos,
		destinationDir: filepath.Dir(dest),
		highlightStyle: g.opts.HighlightStyle,
		logger:         g.logger,
	})...)
	if err != nil {
		return nil, err
	}

	return g, nil
}

// withDefaults fills empty string options with their defaults.
func withDefaults(opts Options) Options {
	if opts.Destination == "" {
		opts.Destination = DefaultDestination
	}
	if opts.Linenos == "" {
		opts.Linenos = LinenosInline
	}
	if opts.Encoding == "" {
		opts.Encoding = DefaultEncoding
	}
	if opts.HighlightStyle == "" {
		opts.HighlightStyle = DefaultHighlightStyle
	}
	if opts.Theme == "" {
		opts.Theme = assets.DefaultThemeName
	}
	return opts
}

// validateOptions checks options that do not need the theme.
func validateOptions(opts Options) error {
	if len(opts.Source) == 0 {
		return fmt.Errorf("%w: no source given", ErrSourceNotFound)
	}
	for _, src := range opts.Source {
		if _, err := os.Stat(src); err != nil {
			return fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}
	}
	if !opts.Direct && fileutil.DirExists(opts.Destination) {
		return fmt.Errorf("%w: %s", ErrDestinationNotFile, opts.Destination)
	}
	switch opts.Linenos {
	case LinenosNo, LinenosInline, LinenosTable:
	default:
		return fmt.Errorf("%w: %q (must be %s, %s or %s)", ErrInvalidLinenos, opts.Linenos, LinenosNo, LinenosInline, LinenosTable)
	}
	if opts.MaxTOCLevel < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidTOCLevel, opts.MaxTOCLevel)
	}
	if _, err := fileutil.DecodeText(nil, opts.Encoding); errors.Is(err, fileutil.ErrUnknownEncoding) {
		return err
	}
	return nil
}

// RegisterMacro appends a macro to the chain.
// Returns ErrPipelineFrozen after the first render.
func (g *Generator) RegisterMacro(m Macro) error {
	return g.macros.Register(m)
}

// Destination returns the absolute output path.
func (g *Generator) Destination() string {
	return g.destination
}

// Render builds the slideshow HTML. Every call reads the sources again.
func (g *Generator) Render(ctx context.Context) (string, error) {
	g.macros.Freeze()

	slides, err := g.fetch(ctx)
	if err != nil {
		return "", err
	}
	for i, s := range slides {
		s.Number = i + 1
	}

	rc, err := g.renderContext(slides)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := g.template.Execute(&buf, rc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}

	out := buf.String()
	if g.opts.Embed {
		out = g.embedder().Embed(out)
	}
	return out, nil
}

// renderContext assembles the template data for numbered slides.
func (g *Generator) renderContext(slides []*Slide) (*RenderContext, error) {
	css, err := themeCSS(g.theme, g.relativeTo)
	if err != nil {
		return nil, err
	}
	js, err := themeAsset(g.theme, assets.SlidesJSFile, g.relativeTo)
	if err != nil {
		return nil, err
	}
	code, err := codeCSS(g.opts.HighlightStyle)
	if err != nil {
		return nil, fmt.Errorf("%w: code stylesheet: %v", ErrTemplateRender, err)
	}

	return &RenderContext{
		HeadTitle: headTitle(slides),
		NumSlides: len(slides),
		Slides:    slides,
		TOC:       BuildTOC(slides, g.opts.MaxTOCLevel),
		Embed:     g.opts.Embed,
		CSS:       css,
		JS:        js,
		CodeCSS:   code,
		UserCSS:   g.userCSS,
		UserJS:    g.userJS,
		Version:   g.version,
	}, nil
}

// embedder searches the theme stylesheet directory, then each local user
// stylesheet directory.
func (g *Generator) embedder() *AssetEmbedder {
	dirs := []assets.Dir{g.theme.CSSDir()}
	for _, css := range g.userCSS {
		if css.Dir != "" {
			dirs = append(dirs, assets.OSDir(css.Dir))
		}
	}
	return NewAssetEmbedder(g.logger, dirs...)
}

// Write renders the slideshow and writes it atomically to the destination.
// Missing parent directories are created. A .pdf destination is printed.
func (g *Generator) Write(ctx context.Context) error {
	out, err := g.Render(ctx)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(g.destination), 0o750); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if isPDF(g.destination) {
		if err := g.writePDF(ctx, out); err != nil {
			return err
		}
	} else if err := atomic.WriteFile(g.destination, strings.NewReader(out)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	g.logger.Info("generated file", "path", g.destination)
	return nil
}

// Execute writes the slideshow to w in direct mode, or to the destination otherwise.
// Direct output is encoded with the source encoding.
func (g *Generator) Execute(ctx context.Context, w io.Writer) error {
	if !g.opts.Direct {
		return g.Write(ctx)
	}

	out, err := g.Render(ctx)
	if err != nil {
		return err
	}
	data, err := fileutil.EncodeText(out, g.opts.Encoding)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	return nil
}

// isPDF reports whether path names a PDF file.
func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
