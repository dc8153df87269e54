package md2slides

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// codeBlock matches a code block whose first line is a language marker:
// <pre><code>!python ...</code></pre>. 1 = language, 2 = escaped code.
var codeBlock = regexp.MustCompile(`(?s)<pre(?:\s[^>]*)?><code(?:\s[^>]*)?>!(\S+)\r?\n(.*?)</code></pre>`)

// CodeHighlightingMacro highlights code blocks starting with a !lang marker.
type CodeHighlightingMacro struct {
	formatter *chromahtml.Formatter
	style     *chroma.Style
	logger    *slog.Logger
}

func newCodeHighlightingMacro(opts macroOptions) *CodeHighlightingMacro {
	formatOpts := []chromahtml.Option{chromahtml.WithClasses(true)}
	switch opts.linenos {
	case LinenosInline:
		formatOpts = append(formatOpts, chromahtml.WithLineNumbers(true))
	case LinenosTable:
		formatOpts = append(formatOpts, chromahtml.WithLineNumbers(true), chromahtml.LineNumbersInTable(true))
	}
	return &CodeHighlightingMacro{
		formatter: chromahtml.New(formatOpts...),
		style:     styles.Get(opts.highlightStyle),
		logger:    opts.logger,
	}
}

// Name implements Macro.
func (m *CodeHighlightingMacro) Name() string { return "code" }

// Process implements Macro.
func (m *CodeHighlightingMacro) Process(content string, src SourceRef, _ MacroContext) (string, []string) {
	highlighted := false

	content = codeBlock.ReplaceAllStringFunc(content, func(block string) string {
		sub := codeBlock.FindStringSubmatch(block)
		lang, code := sub[1], html.UnescapeString(sub[2])

		lexer := lexers.Get(lang)
		if lexer == nil {
			m.logger.Warn("code block left as is",
				"error", fmt.Errorf("%w: no lexer for %q", ErrMacroUnavailable, lang),
				"source", src.RelPath)
			return block
		}

		out, err := m.highlight(chroma.Coalesce(lexer), code)
		if err != nil {
			m.logger.Warn("code block left as is", "error", err, "source", src.RelPath)
			return block
		}
		highlighted = true
		return out
	})

	if !highlighted {
		return content, nil
	}
	return content, []string{"has_code"}
}

// highlight formats code with the configured style.
func (m *CodeHighlightingMacro) highlight(lexer chroma.Lexer, code string) (string, error) {
	iterator, err := lexer.Tokenise(nil, strings.TrimRight(code, "\n")+"\n")
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := m.formatter.Format(&buf, m.style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// codeCSS returns the stylesheet for class-based highlighting in the named style.
func codeCSS(style string) (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(style)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
