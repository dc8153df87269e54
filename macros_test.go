package md2slides

// Notes:
// - Image macros read real files from t.TempDir(); the source reference
//   points at a file in that directory.
// - QR output is checked by decoding the data URI header only: decoding the
//   PNG back into a URL would need a QR reader.

import (
	"bytes"
	"encoding/base64"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// bufferLogger returns a logger writing text records to buf.
func bufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// ---------------------------------------------------------------------------
// TestDefaultMacros - Chain order
// ---------------------------------------------------------------------------

func TestDefaultMacros_Order(t *testing.T) {
	t.Parallel()

	p, err := NewMacroPipeline(defaultMacros(macroOptions{linenos: LinenosNo, logger: discardLogger()})...)
	if err != nil {
		t.Fatalf("NewMacroPipeline() error = %v", err)
	}

	want := []string{"code", "embed_images", "fix_image_paths", "fx", "notes", "qr", "footer"}
	if got := p.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestDirectiveMacros - fx, notes, footer
// ---------------------------------------------------------------------------

func TestFxMacro(t *testing.T) {
	t.Parallel()

	content, classes := FxMacro{}.Process("<p>.fx: fade big</p>\n<p>body</p><p>.fx:shake</p>", SourceRef{}, MacroContext{})

	if content != "\n<p>body</p>" {
		t.Errorf("content = %q, want directives removed", content)
	}
	if want := []string{"fade", "big", "shake"}; !reflect.DeepEqual(classes, want) {
		t.Errorf("classes = %v, want %v", classes, want)
	}
}

func TestFxMacro_NoDirective(t *testing.T) {
	t.Parallel()

	content, classes := FxMacro{}.Process("<p>fx: not a directive</p>", SourceRef{}, MacroContext{})
	if content != "<p>fx: not a directive</p>" || classes != nil {
		t.Errorf("Process() = %q, %v, want unchanged", content, classes)
	}
}

func TestNotesMacro(t *testing.T) {
	t.Parallel()

	ctx := MacroContext{}
	content, classes := NotesMacro{}.Process("<p>body</p><p>.notes: first</p><p>.notes: second</p>", SourceRef{}, ctx)

	if content != "<p>body</p>" {
		t.Errorf("content = %q, want %q", content, "<p>body</p>")
	}
	if want := []string{"has_notes"}; !reflect.DeepEqual(classes, want) {
		t.Errorf("classes = %v, want %v", classes, want)
	}
	if got := ctx.String(ContextPresenterNotes); got != "<p>first</p><p>second</p>" {
		t.Errorf("notes = %q, want both paragraphs", got)
	}

	if _, classes := (NotesMacro{}).Process("<p>body</p>", SourceRef{}, MacroContext{}); classes != nil {
		t.Errorf("classes without notes = %v, want nil", classes)
	}
}

func TestFooterMacro(t *testing.T) {
	t.Parallel()

	ctx := MacroContext{}
	content, _ := FooterMacro{}.Process("<p>a</p><p>.footer: <em>Conf</em> 2024</p><p>.footer: second</p>", SourceRef{}, ctx)

	if content != "<p>a</p><p>.footer: second</p>" {
		t.Errorf("content = %q, want only first directive removed", content)
	}
	slide := &Slide{Context: ctx}
	if got := slide.Footer(); got != "<em>Conf</em> 2024" {
		t.Errorf("Footer() = %q, want %q", got, "<em>Conf</em> 2024")
	}
}

// ---------------------------------------------------------------------------
// TestQRMacro - Local QR code generation
// ---------------------------------------------------------------------------

func TestQRMacro(t *testing.T) {
	t.Parallel()

	m := &QRMacro{logger: discardLogger()}
	content, _ := m.Process("<p>.qr: 120|https://example.com/?a=1&amp;b=2</p>", SourceRef{}, MacroContext{})

	const prefix = `<p class="qr"><img src="data:image/png;base64,`
	if !strings.HasPrefix(content, prefix) {
		t.Fatalf("content = %q, want QR image paragraph", content)
	}
	if !strings.Contains(content, `alt="https://example.com/?a=1&amp;b=2"`) {
		t.Errorf("content = %q, want escaped URL in alt", content)
	}
	if !strings.Contains(content, `width="120" height="120"`) {
		t.Errorf("content = %q, want requested size", content)
	}

	payload := strings.TrimPrefix(content, prefix)
	payload = payload[:strings.Index(payload, `"`)]
	png, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("payload is not a PNG image")
	}
}

func TestQRMacro_DefaultSize(t *testing.T) {
	t.Parallel()

	m := &QRMacro{logger: discardLogger()}
	content, _ := m.Process("<p>.qr: |https://example.com</p>", SourceRef{}, MacroContext{})

	if !strings.Contains(content, `width="200"`) {
		t.Errorf("content = %q, want default size", content)
	}
}

// ---------------------------------------------------------------------------
// TestCodeHighlightingMacro - chroma highlighting of !lang blocks
// ---------------------------------------------------------------------------

func TestCodeHighlightingMacro(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		linenos     string
		input       string
		wantClasses []string
		contains    []string
		notContains []string
	}{
		{
			name:        "python block",
			linenos:     LinenosNo,
			input:       "<pre><code>!python\ndef f(x):\n    return x &lt; 1\n</code></pre>",
			wantClasses: []string{"has_code"},
			contains:    []string{`class="chroma"`, "def", "&lt;"},
			notContains: []string{"!python"},
		},
		{
			name:        "table line numbers",
			linenos:     LinenosTable,
			input:       "<pre><code>!go\nx := 1\n</code></pre>",
			wantClasses: []string{"has_code"},
			contains:    []string{"<table"},
		},
		{
			name:        "no marker",
			linenos:     LinenosInline,
			input:       "<pre><code>plain\n</code></pre>",
			contains:    []string{"<pre><code>plain\n</code></pre>"},
			notContains: []string{"chroma"},
		},
		{
			name:     "unknown lexer left unchanged",
			linenos:  LinenosInline,
			input:    "<pre><code>!nolanguage-xyz\ncode\n</code></pre>",
			contains: []string{"!nolanguage-xyz"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newCodeHighlightingMacro(macroOptions{
				linenos:        tt.linenos,
				highlightStyle: DefaultHighlightStyle,
				logger:         discardLogger(),
			})
			got, classes := m.Process(tt.input, SourceRef{}, MacroContext{})

			if !reflect.DeepEqual(classes, tt.wantClasses) {
				t.Errorf("classes = %v, want %v", classes, tt.wantClasses)
			}
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q:\n%s", s, got)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(got, s) {
					t.Errorf("output should not contain %q:\n%s", s, got)
				}
			}
		})
	}
}

func TestCodeHighlightingMacro_UnknownLexerLogsWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	m := newCodeHighlightingMacro(macroOptions{linenos: LinenosNo, logger: bufferLogger(&buf)})
	m.Process("<pre><code>!nolanguage-xyz\ncode\n</code></pre>", SourceRef{RelPath: "a.md"}, MacroContext{})

	if !strings.Contains(buf.String(), "level=WARN") || !strings.Contains(buf.String(), ErrMacroUnavailable.Error()) {
		t.Errorf("log = %q, want macro unavailable warning", buf.String())
	}
}

func TestCodeCSS(t *testing.T) {
	t.Parallel()

	css, err := codeCSS(DefaultHighlightStyle)
	if err != nil {
		t.Fatalf("codeCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("codeCSS() = %q, want .chroma rules", css)
	}
}

// ---------------------------------------------------------------------------
// TestImageMacros - Embedding and path fixing
// ---------------------------------------------------------------------------

func writeImage(t *testing.T, dir, name string) []byte {
	t.Helper()

	data := []byte("\x89PNG\r\n\x1a\nfake")
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write image: %v", err)
	}
	return data
}

func TestEmbedImagesMacro(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	data := writeImage(t, dir, "img/logo.png")
	src := SourceRef{RelPath: "slides.md", AbsPath: filepath.Join(dir, "slides.md")}

	m := &EmbedImagesMacro{embed: true, logger: discardLogger()}
	got, _ := m.Process(`<p><img src="img/logo.png" alt="logo" /><img src="https://example.com/x.png" /></p>`, src, MacroContext{})

	if !strings.Contains(got, fileutil.DataURI("logo.png", data)) {
		t.Errorf("output = %q, want data URI", got)
	}
	if !strings.Contains(got, "https://example.com/x.png") {
		t.Errorf("output = %q, want remote image untouched", got)
	}
}

func TestEmbedImagesMacro_MissingAndDisabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := SourceRef{AbsPath: filepath.Join(dir, "slides.md")}
	input := `<p><img src="missing.png" /></p>`

	var buf bytes.Buffer
	m := &EmbedImagesMacro{embed: true, logger: bufferLogger(&buf)}
	if got, _ := m.Process(input, src, MacroContext{}); got != input {
		t.Errorf("missing image: output = %q, want unchanged", got)
	}
	if !strings.Contains(buf.String(), "image not embedded") {
		t.Errorf("log = %q, want warning", buf.String())
	}

	off := &EmbedImagesMacro{embed: false, logger: discardLogger()}
	if got, _ := off.Process(input, src, MacroContext{}); got != input {
		t.Errorf("embed off: output = %q, want unchanged", got)
	}
}

func TestFixImagePathsMacro(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := SourceRef{AbsPath: filepath.Join(dir, "talk", "slides.md")}
	input := `<p><img src="img/a.png" /></p>`

	t.Run("absolute", func(t *testing.T) {
		t.Parallel()

		m := &FixImagePathsMacro{logger: discardLogger()}
		got, _ := m.Process(input, src, MacroContext{})
		want := fileutil.FileURL(filepath.Join(dir, "talk", "img", "a.png"))
		if !strings.Contains(got, want) {
			t.Errorf("output = %q, want %q", got, want)
		}
	})

	t.Run("relative to destination", func(t *testing.T) {
		t.Parallel()

		m := &FixImagePathsMacro{relativeTo: filepath.Join(dir, "out"), logger: discardLogger()}
		got, _ := m.Process(input, src, MacroContext{})
		if !strings.Contains(got, `src="../talk/img/a.png"`) {
			t.Errorf("output = %q, want relative path", got)
		}
	})

	t.Run("embed mode leaves paths", func(t *testing.T) {
		t.Parallel()

		m := &FixImagePathsMacro{embed: true, logger: discardLogger()}
		if got, _ := m.Process(input, src, MacroContext{}); got != input {
			t.Errorf("output = %q, want unchanged", got)
		}
	})
}
