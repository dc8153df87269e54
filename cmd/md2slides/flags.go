package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// outputFlags holds logging and output mode flags.
type outputFlags struct {
	debug   bool
	quiet   bool
	verbose bool
	direct  bool
}

// slideFlags holds flags that override configuration values.
type slideFlags struct {
	destination      string
	theme            string
	encoding         string
	linenos          string
	maxTOCLevel      int
	extensions       []string
	markdownEngine   string
	highlightStyle   string
	css              []string
	js               []string
	embed            bool
	relative         bool
	noPresenterNotes bool
	watch            bool
	pdfTimeout       string
}

// cliFlags holds all command-line flags.
type cliFlags struct {
	config      string
	printConfig bool
	version     bool
	help        bool
	output      outputFlags
	slides      slideFlags

	// set records the flags given on the command line.
	set map[string]bool
}

// changed reports whether the named flag was given explicitly.
func (f *cliFlags) changed(name string) bool {
	return f.set[name]
}

// addOutputFlags adds logging and output mode flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags) {
	fs.BoolVarP(&f.debug, "debug", "b", false, "log debug details with source locations")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show warnings and errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug messages")
	fs.BoolVarP(&f.direct, "direct", "o", false, "write the slideshow to stdout")
}

// addSlideFlags adds configuration override flags to a FlagSet.
func addSlideFlags(fs *flag.FlagSet, f *slideFlags) {
	fs.StringVarP(&f.destination, "destination", "d", "", "output file (.html or .pdf)")
	fs.StringVarP(&f.theme, "theme", "t", "", "built-in theme name or theme directory")
	fs.StringVarP(&f.encoding, "encoding", "e", "", "source encoding (utf8, latin1, ...)")
	fs.StringVarP(&f.linenos, "linenos", "l", "", "code line numbers: no, inline, table")
	fs.IntVarP(&f.maxTOCLevel, "max-toc-level", "m", 0, "deepest heading level in the table of contents")
	fs.StringSliceVarP(&f.extensions, "extensions", "x", nil, "comma-separated markdown extensions")
	fs.StringVar(&f.markdownEngine, "markdown-engine", "", "markdown engine: goldmark, gomarkdown")
	fs.StringVar(&f.highlightStyle, "highlight-style", "", "code highlighting style")
	fs.StringSliceVar(&f.css, "css", nil, "additional stylesheet, path or URL (repeatable)")
	fs.StringSliceVar(&f.js, "js", nil, "additional script, path or URL (repeatable)")
	fs.BoolVarP(&f.embed, "embed", "i", false, "embed stylesheets, scripts and images")
	fs.BoolVarP(&f.relative, "relative", "r", false, "make asset paths relative to the destination")
	fs.BoolVarP(&f.noPresenterNotes, "no-presenter-notes", "P", false, "drop presenter notes")
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when source files change")
	fs.StringVar(&f.pdfTimeout, "pdf-timeout", "", "page load timeout for PDF export (e.g. 30s, 2m)")
}

// parseFlags parses command-line flags and returns positional args.
// args excludes the program name.
func parseFlags(args []string, stderr io.Writer) (*cliFlags, []string, error) {
	fs := flag.NewFlagSet("md2slides", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { printUsage(stderr) }

	f := &cliFlags{set: make(map[string]bool)}
	fs.StringVarP(&f.config, "config", "c", "", "YAML config file")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the merged configuration and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show help")
	addOutputFlags(fs, &f.output)
	addSlideFlags(fs, &f.slides)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = true
	})

	return f, fs.Args(), nil
}
