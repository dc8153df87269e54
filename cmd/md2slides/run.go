package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/watch"
)

// ErrUsage indicates invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// newLogger builds the stderr logger. Direct mode keeps stdout for the
// slideshow and logs warnings only.
func newLogger(w io.Writer, f outputFlags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.debug || f.verbose:
		level = slog.LevelDebug
	case f.quiet || f.direct:
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: f.debug,
	}))
}

// invocation is a resolved command line: where the config comes from and
// which source the positional argument names.
type invocation struct {
	configPath string
	source     string
}

// resolveInvocation interprets the positional argument. A YAML file is a
// config file; anything else is a source path.
func resolveInvocation(flags *cliFlags, positional []string, env *envConfig) (invocation, error) {
	if len(positional) > 1 {
		return invocation{}, fmt.Errorf("%w: expected one source, got %d arguments", ErrUsage, len(positional))
	}

	inv := invocation{configPath: flags.config}
	if len(positional) == 1 {
		arg := positional[0]
		if config.IsConfigFile(arg) {
			if flags.config != "" {
				return invocation{}, fmt.Errorf("%w: config given twice (%s and --config %s)", ErrUsage, arg, flags.config)
			}
			inv.configPath = arg
		} else {
			inv.source = arg
		}
	}
	if inv.configPath == "" {
		inv.configPath = env.ConfigPath
	}
	return inv, nil
}

// loadConfig builds the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
func loadConfig(flags *cliFlags, inv invocation, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if inv.configPath != "" {
		var err error
		cfg, err = config.LoadConfig(inv.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)
	if inv.source != "" {
		cfg.Source = []string{inv.source}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. Explicit flags override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	s := flags.slides

	if s.destination != "" {
		cfg.Destination = s.destination
	}
	if s.theme != "" {
		cfg.Theme = s.theme
	}
	if s.encoding != "" {
		cfg.Encoding = s.encoding
	}
	if s.linenos != "" {
		cfg.Linenos = s.linenos
	}
	if flags.changed("max-toc-level") {
		cfg.MaxTOCLevel = s.maxTOCLevel
	}
	if flags.changed("extensions") {
		cfg.Extensions = s.extensions
	}
	if s.markdownEngine != "" {
		cfg.MarkdownEngine = s.markdownEngine
	}
	if s.highlightStyle != "" {
		cfg.HighlightStyle = s.highlightStyle
	}
	if len(s.css) > 0 {
		cfg.CSS = append(cfg.CSS, s.css...)
	}
	if len(s.js) > 0 {
		cfg.JS = append(cfg.JS, s.js...)
	}

	// Boolean flags can only switch features on (or notes off).
	if s.embed {
		cfg.Embed = true
	}
	if s.relative {
		cfg.Relative = true
	}
	if s.noPresenterNotes {
		cfg.PresenterNotes = false
	}
	if s.watch {
		cfg.Watch = true
	}
}

// toOptions converts a validated config into generator options.
func toOptions(cfg *config.Config, direct bool) md2slides.Options {
	return md2slides.Options{
		Source:         cfg.Source,
		Destination:    cfg.Destination,
		Theme:          cfg.Theme,
		Direct:         direct,
		Embed:          cfg.Embed,
		Relative:       cfg.Relative,
		Linenos:        cfg.Linenos,
		MaxTOCLevel:    cfg.MaxTOCLevel,
		PresenterNotes: cfg.PresenterNotes,
		Encoding:       cfg.Encoding,
		Extensions:     cfg.Extensions,
		MarkdownEngine: cfg.MarkdownEngine,
		HighlightStyle: cfg.HighlightStyle,
		CSS:            cfg.CSS,
		JS:             cfg.JS,
	}
}

// run executes one invocation: print the config, generate once, or watch.
func run(ctx context.Context, flags *cliFlags, positional []string, deps *Dependencies, logger *slog.Logger) error {
	warnUnknownEnvVars(deps.Environ(), logger)
	env := loadEnvConfig(deps.Getenv)

	inv, err := resolveInvocation(flags, positional, env)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(flags, inv, env)
	if err != nil {
		return err
	}

	if flags.printConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = deps.Stdout.Write(data)
		return err
	}

	if len(cfg.Source) == 0 {
		return fmt.Errorf("%w: no source given", ErrUsage)
	}
	if err := checkSourceFiles(cfg); err != nil {
		return err
	}

	timeout, err := resolvePDFTimeout(flags.slides.pdfTimeout, env.PDFTimeout)
	if err != nil {
		return err
	}
	genOpts := []md2slides.Option{
		md2slides.WithLogger(logger),
		md2slides.WithVersion(Version),
	}
	if timeout > 0 {
		genOpts = append(genOpts, md2slides.WithPDFTimeout(timeout))
	}

	direct := flags.output.direct
	if cfg.Watch && direct {
		logger.Warn("watch mode is ignored in direct mode")
	}

	gen, err := md2slides.New(toOptions(cfg, direct), genOpts...)
	if err != nil {
		return err
	}
	if err := gen.Execute(ctx, deps.Stdout); err != nil {
		return err
	}
	if !cfg.Watch || direct {
		return nil
	}

	rebuild := func(ctx context.Context) error {
		cfg, err := loadConfig(flags, inv, env)
		if err != nil {
			return err
		}
		gen, err := md2slides.New(toOptions(cfg, false), genOpts...)
		if err != nil {
			return err
		}
		return gen.Write(ctx)
	}

	return watch.Run(ctx, watchDir(cfg), rebuild, watch.Options{
		Ignore: []string{gen.Destination()},
		Logger: logger,
	})
}

// checkSourceFiles rejects source files no converter can read. The generator
// only skips them, which would produce an empty slideshow.
func checkSourceFiles(cfg *config.Config) error {
	registry, err := pipeline.NewRegistry(pipeline.ConverterOptions{
		Engine:     cfg.MarkdownEngine,
		Extensions: cfg.Extensions,
	})
	if err != nil {
		return err
	}
	for _, src := range cfg.Source {
		if !fileutil.FileExists(src) {
			continue
		}
		if registry.HasConverter(src) {
			continue
		}
		if pipeline.IsMarkupFile(src) {
			return fmt.Errorf("%w: no converter for %s", md2slides.ErrUnsupportedFormat, src)
		}
		return fmt.Errorf("%w: %s", md2slides.ErrUnsupportedFormat, src)
	}
	return nil
}

// watchDir returns the directory to watch: the first source directory, or
// the directory of a source file.
func watchDir(cfg *config.Config) string {
	src := cfg.Source[0]
	if fileutil.DirExists(src) {
		return src
	}
	return filepath.Dir(src)
}

// formatError renders a fatal error with actionable hints.
func formatError(err error) string {
	return "Error: " + err.Error() + hintFor(err)
}
