package main

// Notes:
// - runMain: we test exit codes, stdout/stderr contents and output files for
//   the write, direct, print-config and watch modes. PDF export is not
//   exercised here: it needs a browser.
// - mergeFlags/loadConfig: we test the flags > env > config > defaults order.

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/alnah/go-md2slides/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure
// ---------------------------------------------------------------------------

// testDeps returns dependencies with captured output and a fixed environment.
func testDeps(env map[string]string) (*Dependencies, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Dependencies{
		Stdout: &stdout,
		Stderr: &stderr,
		Getenv: func(key string) string { return env[key] },
		Environ: func() []string {
			var out []string
			for k, v := range env {
				out = append(out, k+"="+v)
			}
			return out
		},
	}, &stdout, &stderr
}

// writeSlides writes a two-slide markdown file and returns its path.
func writeSlides(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "slides.md")
	content := "# Hello\n\nFirst slide\n\n---\n\n## World\n\nSecond slide\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write slides: %v", err)
	}
	return path
}

func mustParse(t *testing.T, args ...string) *cliFlags {
	t.Helper()

	f, _, err := parseFlags(args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseFlags(%v) error = %v", args, err)
	}
	return f
}

// ---------------------------------------------------------------------------
// TestRunMain - End-to-end invocations
// ---------------------------------------------------------------------------

func TestRunMain_WritesDestination(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSlides(t, dir)
	dest := filepath.Join(dir, "out", "talk.html")
	deps, _, stderr := testDeps(nil)

	code := runMain(context.Background(), []string{"-d", dest, src}, deps)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr:\n%s", code, stderr)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("destination not written: %v", err)
	}
	html := string(data)
	for _, want := range []string{`id="slide1"`, `id="slide2"`, "<h1>Hello</h1>"} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if !strings.Contains(stderr.String(), "generated file") {
		t.Errorf("stderr should report the generated file, got:\n%s", stderr)
	}
}

func TestRunMain_Direct(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSlides(t, dir)
	deps, stdout, stderr := testDeps(nil)

	code := runMain(context.Background(), []string{"-o", src}, deps)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stdout.String(), "<h2>World</h2>") {
		t.Error("stdout should carry the slideshow")
	}
	if stderr.Len() != 0 {
		t.Errorf("direct mode should not log notices, got:\n%s", stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultDestination)); !os.IsNotExist(err) {
		t.Error("direct mode should not write the destination")
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeSlides(t, dir)
	cfgPath := filepath.Join(dir, "talk.yaml")
	yaml := "source:\n  - slides.md\ndestination: build/index.html\nmax-toc-level: 1\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	deps, _, stderr := testDeps(nil)

	code := runMain(context.Background(), []string{"-q", cfgPath}, deps)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr:\n%s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "build", "index.html")); err != nil {
		t.Errorf("destination should resolve against the config directory: %v", err)
	}
}

func TestRunMain_PrintConfig(t *testing.T) {
	t.Parallel()

	deps, stdout, stderr := testDeps(map[string]string{"MD2SLIDES_THEME": "dark"})

	code := runMain(context.Background(), []string{"--print-config", "-l", "table", "slides.md"}, deps)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr:\n%s", code, stderr)
	}
	out := stdout.String()
	for _, want := range []string{"linenos: table", "theme: dark", "- slides.md"} {
		if !strings.Contains(out, want) {
			t.Errorf("printed config missing %q:\n%s", want, out)
		}
	}
}

func TestRunMain_Version(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(nil)
	if code := runMain(context.Background(), []string{"--version"}, deps); code != ExitSuccess {
		t.Fatalf("runMain() = %d", code)
	}
	if got, want := stdout.String(), "md2slides "+Version+"\n"; got != want {
		t.Errorf("version output = %q, want %q", got, want)
	}
}

func TestRunMain_Help(t *testing.T) {
	t.Parallel()

	deps, stdout, _ := testDeps(nil)
	if code := runMain(context.Background(), []string{"--help"}, deps); code != ExitSuccess {
		t.Fatalf("runMain() = %d", code)
	}
	if !strings.Contains(stdout.String(), "Usage: md2slides") {
		t.Error("help should print usage")
	}
}

func TestRunMain_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSlides(t, dir)
	txt := filepath.Join(dir, "notes.txt")
	rst := filepath.Join(dir, "slides.rst")
	for _, path := range []string{txt, rst} {
		if err := os.WriteFile(path, []byte("notes"), 0o644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}

	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantErr  string
	}{
		{"missing source", []string{"-o", filepath.Join(dir, "missing.md")}, ExitIO, "hint: pass a markup file"},
		{"no source", []string{"-o"}, ExitUsage, "no source given"},
		{"too many arguments", []string{"a.md", "b.md"}, ExitUsage, "expected one source"},
		{"unknown theme", []string{"-o", "-t", "nope", src}, ExitUsage, "hint: available:"},
		{"invalid linenos", []string{"-o", "-l", "left", src}, ExitUsage, "linenos"},
		{"unsupported format", []string{"-o", txt}, ExitUsage, "hint: supported extensions:"},
		{"dialect without converter", []string{"-o", rst}, ExitUsage, "no converter for"},
		{"missing config", []string{filepath.Join(dir, "missing.yaml")}, ExitUsage, "hint: pass an existing .yaml"},
		{"bad pdf timeout", []string{"-o", "--pdf-timeout", "soon", src}, ExitUsage, "--pdf-timeout"},
		{"unknown flag", []string{"--nope"}, ExitUsage, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deps, _, stderr := testDeps(nil)
			code := runMain(context.Background(), tt.args, deps)
			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if !strings.Contains(stderr.String(), tt.wantErr) {
				t.Errorf("stderr should contain %q, got:\n%s", tt.wantErr, stderr)
			}
		})
	}
}

func TestRunMain_UnknownEnvVarWarns(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSlides(t, dir)
	deps, _, stderr := testDeps(map[string]string{"MD2SLIDES_THEMES": "dark"})

	if code := runMain(context.Background(), []string{"-o", src}, deps); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr:\n%s", code, stderr)
	}
	if !strings.Contains(stderr.String(), "MD2SLIDES_THEMES") {
		t.Errorf("stderr should warn about the unknown variable, got:\n%s", stderr)
	}
}

func TestRunMain_Watch(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSlides(t, dir)
	dest := filepath.Join(dir, "index.html")
	deps, _, _ := testDeps(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan int, 1)
	go func() {
		done <- runMain(ctx, []string{"-q", "-w", "-d", dest, src}, deps)
	}()

	deadline := time.Now().Add(10 * time.Second)
	for !fileExists(dest) {
		if time.Now().After(deadline) {
			cancel()
			t.Fatal("initial build did not write the destination")
		}
		time.Sleep(20 * time.Millisecond)
	}
	cancel()

	select {
	case code := <-done:
		if code != ExitSuccess {
			t.Errorf("runMain() = %d, want 0 after cancellation", code)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("watch loop did not stop on cancellation")
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ---------------------------------------------------------------------------
// TestMergeFlags - Flag precedence
// ---------------------------------------------------------------------------

func TestMergeFlags(t *testing.T) {
	t.Parallel()

	t.Run("explicit flags override config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Theme = "light"
		cfg.CSS = []string{"base.css"}

		mergeFlags(mustParse(t, "-t", "dark", "-m", "0", "-P", "-i", "--css", "extra.css"), cfg)

		if cfg.Theme != "dark" {
			t.Errorf("Theme = %q, want dark", cfg.Theme)
		}
		if cfg.MaxTOCLevel != 0 {
			t.Errorf("MaxTOCLevel = %d, want 0", cfg.MaxTOCLevel)
		}
		if cfg.PresenterNotes {
			t.Error("PresenterNotes should be disabled")
		}
		if !cfg.Embed {
			t.Error("Embed should be enabled")
		}
		if want := []string{"base.css", "extra.css"}; !reflect.DeepEqual(cfg.CSS, want) {
			t.Errorf("CSS = %v, want %v", cfg.CSS, want)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.MaxTOCLevel = 4
		cfg.Embed = true
		cfg.Extensions = []string{"gfm"}

		mergeFlags(mustParse(t), cfg)

		if cfg.MaxTOCLevel != 4 {
			t.Errorf("MaxTOCLevel = %d, want 4", cfg.MaxTOCLevel)
		}
		if !cfg.Embed {
			t.Error("Embed should stay enabled")
		}
		if !reflect.DeepEqual(cfg.Extensions, []string{"gfm"}) {
			t.Errorf("Extensions = %v, want [gfm]", cfg.Extensions)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveInvocation - Positional argument handling
// ---------------------------------------------------------------------------

func TestResolveInvocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		positional []string
		env        envConfig
		want       invocation
		wantErr    bool
	}{
		{"source", nil, []string{"slides.md"}, envConfig{}, invocation{source: "slides.md"}, false},
		{"yaml config", nil, []string{"talk.yaml"}, envConfig{}, invocation{configPath: "talk.yaml"}, false},
		{"yml config", nil, []string{"talk.YML"}, envConfig{}, invocation{configPath: "talk.YML"}, false},
		{"config flag with source", []string{"-c", "c.yaml"}, []string{"dir"}, envConfig{}, invocation{configPath: "c.yaml", source: "dir"}, false},
		{"env config", nil, []string{"dir"}, envConfig{ConfigPath: "env.yaml"}, invocation{configPath: "env.yaml", source: "dir"}, false},
		{"flag beats env", []string{"-c", "c.yaml"}, nil, envConfig{ConfigPath: "env.yaml"}, invocation{configPath: "c.yaml"}, false},
		{"config twice", []string{"-c", "c.yaml"}, []string{"talk.yaml"}, envConfig{}, invocation{}, true},
		{"too many", nil, []string{"a", "b"}, envConfig{}, invocation{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := resolveInvocation(mustParse(t, tt.args...), tt.positional, &tt.env)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveInvocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveInvocation() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - Precedence across sources
// ---------------------------------------------------------------------------

func TestLoadConfig_Precedence(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "talk.yaml")
	yaml := "theme: light\nencoding: latin1\n"
	if err := os.WriteFile(cfgPath, []byte(yaml), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	env := &envConfig{Theme: "env-theme", Encoding: "windows-1252", HighlightStyle: "monokai"}
	cfg, err := loadConfig(mustParse(t, "-e", "utf8"), invocation{configPath: cfgPath, source: "slides.md"}, env)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want config value light", cfg.Theme)
	}
	if cfg.Encoding != "utf8" {
		t.Errorf("Encoding = %q, want flag value utf8", cfg.Encoding)
	}
	if cfg.HighlightStyle != "monokai" {
		t.Errorf("HighlightStyle = %q, want env value monokai", cfg.HighlightStyle)
	}
	if !reflect.DeepEqual(cfg.Source, []string{"slides.md"}) {
		t.Errorf("Source = %v, want positional source", cfg.Source)
	}
}

// ---------------------------------------------------------------------------
// TestWatchDir - Watched directory
// ---------------------------------------------------------------------------

func TestWatchDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := writeSlides(t, dir)

	if got := watchDir(&config.Config{Source: []string{dir}}); got != dir {
		t.Errorf("watchDir(dir) = %q, want %q", got, dir)
	}
	if got := watchDir(&config.Config{Source: []string{src}}); got != dir {
		t.Errorf("watchDir(file) = %q, want %q", got, dir)
	}
}
