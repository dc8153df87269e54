package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	mdparser "github.com/gomarkdown/markdown/parser"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HTMLConverter abstracts markup to HTML conversion.
// Implementations return an HTML fragment.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// goldmarkExtensions maps extension names accepted in configuration to goldmark extensions.
var goldmarkExtensions = map[string]goldmark.Extender{
	"gfm":            extension.GFM, // Tables, strikethrough, autolinks, task lists
	"table":          extension.Table,
	"strikethrough":  extension.Strikethrough,
	"linkify":        extension.Linkify,
	"tasklist":       extension.TaskList,
	"footnote":       extension.Footnote,
	"definitionlist": extension.DefinitionList,
	"typographer":    extension.Typographer,
}

// DefaultExtensions returns the markdown extensions enabled when none are configured.
func DefaultExtensions() []string {
	return []string{"gfm", "footnote"}
}

// KnownExtensions returns the accepted markdown extension names, sorted.
func KnownExtensions() []string {
	names := make([]string, 0, len(goldmarkExtensions))
	for name := range goldmarkExtensions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with the named extensions
// and syntax highlighting for fenced code. Unknown names are ignored and returned.
func NewGoldmarkConverter(names ...string) (*GoldmarkConverter, []string) {
	exts := []goldmark.Extender{
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // Stylesheet generated once per render
			),
		),
	}

	var unknown []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		ext, ok := goldmarkExtensions[name]
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		exts = append(exts, ext)
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(
			html.WithXHTML(),  // Self-closing tags
			html.WithUnsafe(), // Slides routinely carry inline HTML
		),
	)
	return &GoldmarkConverter{md: md}, unknown
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// GomarkdownConverter converts Markdown to HTML using gomarkdown.
type GomarkdownConverter struct{}

// NewGomarkdownConverter creates a GomarkdownConverter.
func NewGomarkdownConverter() *GomarkdownConverter {
	return &GomarkdownConverter{}
}

// ToHTML converts Markdown content to an HTML fragment.
// The parser and renderer are stateful, so both are built per call.
func (c *GomarkdownConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	extensions := mdparser.CommonExtensions | mdparser.Footnotes
	p := mdparser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(content))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return string(markdown.Render(doc, renderer)), nil
}

// PassthroughConverter returns HTML sources unchanged.
type PassthroughConverter struct{}

// ToHTML returns content as is.
func (c *PassthroughConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return content, nil
}

// Compile-time interface checks.
var (
	_ HTMLConverter = (*GoldmarkConverter)(nil)
	_ HTMLConverter = (*GomarkdownConverter)(nil)
	_ HTMLConverter = (*PassthroughConverter)(nil)
)
