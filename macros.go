package md2slides

import (
	"log/slog"
	"regexp"
	"strings"
)

// macroOptions holds the generator settings the default macros depend on.
type macroOptions struct {
	embed          bool
	relative       bool
	linenos        string
	destinationDir string
	highlightStyle string
	logger         *slog.Logger
}

// defaultMacros returns the built-in chain, in application order.
func defaultMacros(opts macroOptions) []Macro {
	return []Macro{
		newCodeHighlightingMacro(opts),
		&EmbedImagesMacro{embed: opts.embed, logger: opts.logger},
		&FixImagePathsMacro{embed: opts.embed, relativeTo: relativeBase(opts), logger: opts.logger},
		FxMacro{},
		NotesMacro{},
		&QRMacro{logger: opts.logger},
		FooterMacro{},
	}
}

// relativeBase returns the directory links are made relative to, "" for absolute links.
func relativeBase(opts macroOptions) string {
	if opts.relative {
		return opts.destinationDir
	}
	return ""
}

// directive returns a pattern matching a paragraph of the form <p>.name: value</p>.
func directive(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)<p>\.` + regexp.QuoteMeta(name) + `:\s?(.*?)</p>`)
}

// removeAll deletes every match of re and returns the captured values.
func removeAll(re *regexp.Regexp, content string) (string, []string) {
	matches := re.FindAllStringSubmatch(content, -1)
	if matches == nil {
		return content, nil
	}
	values := make([]string, len(matches))
	for i, m := range matches {
		values[i] = m[1]
	}
	return re.ReplaceAllString(content, ""), values
}

// FxMacro turns <p>.fx: a b</p> into slide classes a and b.
type FxMacro struct{}

var fxDirective = directive("fx")

// Name implements Macro.
func (FxMacro) Name() string { return "fx" }

// Process implements Macro.
func (FxMacro) Process(content string, _ SourceRef, _ MacroContext) (string, []string) {
	content, values := removeAll(fxDirective, content)
	var classes []string
	for _, v := range values {
		classes = append(classes, strings.Fields(v)...)
	}
	return content, classes
}

// NotesMacro moves <p>.notes: text</p> paragraphs to the slide presenter notes.
type NotesMacro struct{}

var notesDirective = directive("notes")

// Name implements Macro.
func (NotesMacro) Name() string { return "notes" }

// Process implements Macro.
func (NotesMacro) Process(content string, _ SourceRef, ctx MacroContext) (string, []string) {
	content, values := removeAll(notesDirective, content)
	if values == nil {
		return content, nil
	}
	var b strings.Builder
	b.WriteString(ctx.String(ContextPresenterNotes))
	for _, v := range values {
		b.WriteString("<p>" + strings.TrimSpace(v) + "</p>")
	}
	ctx[ContextPresenterNotes] = b.String()
	return content, []string{"has_notes"}
}

// FooterMacro moves the first <p>.footer: text</p> paragraph to the slide footer.
type FooterMacro struct{}

var footerDirective = directive("footer")

// Name implements Macro.
func (FooterMacro) Name() string { return "footer" }

// Process implements Macro.
func (FooterMacro) Process(content string, _ SourceRef, ctx MacroContext) (string, []string) {
	m := footerDirective.FindStringSubmatchIndex(content)
	if m == nil {
		return content, nil
	}
	ctx[ContextFooter] = content[m[2]:m[3]]
	return content[:m[0]] + content[m[1]:], nil
}
