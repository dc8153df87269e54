package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides [flags] <source | config.yaml>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a single-file HTML slideshow from markup files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source         Markup file or directory; a .yaml/.yml file is read as config")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -d, --destination <path>   Output file, .html or .pdf (default: presentation.html)")
	fmt.Fprintln(w, "  -o, --direct               Write the slideshow to stdout")
	fmt.Fprintln(w, "  -c, --config <path>        YAML config file")
	fmt.Fprintln(w, "  -e, --encoding <name>      Source encoding (default: utf8)")
	fmt.Fprintln(w, "  -w, --watch                Rebuild when source files change")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -t, --theme <name|dir>     Built-in theme or theme directory (default: default)")
	fmt.Fprintln(w, "  -i, --embed                Embed stylesheets, scripts and images")
	fmt.Fprintln(w, "  -r, --relative             Make asset paths relative to the destination")
	fmt.Fprintln(w, "  -l, --linenos <mode>       Code line numbers: no, inline, table (default: inline)")
	fmt.Fprintln(w, "  -m, --max-toc-level <n>    Deepest heading level in the table of contents (default: 2)")
	fmt.Fprintln(w, "  -P, --no-presenter-notes   Drop presenter notes")
	fmt.Fprintln(w, "  -x, --extensions <list>    Comma-separated markdown extensions")
	fmt.Fprintln(w, "      --markdown-engine <s>  Markdown engine: goldmark, gomarkdown")
	fmt.Fprintln(w, "      --highlight-style <s>  Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --css <path|url>       Additional stylesheet (repeatable)")
	fmt.Fprintln(w, "      --js <path|url>        Additional script (repeatable)")
	fmt.Fprintln(w, "      --pdf-timeout <d>      Page load timeout for PDF export (e.g. 30s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                Only show warnings and errors")
	fmt.Fprintln(w, "  -v, --verbose              Show debug messages")
	fmt.Fprintln(w, "  -b, --debug                Debug messages with source locations")
	fmt.Fprintln(w, "      --print-config         Print the merged configuration and exit")
	fmt.Fprintln(w, "      --version              Print version and exit")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2SLIDES_CONFIG, MD2SLIDES_THEME, MD2SLIDES_DESTINATION, MD2SLIDES_ENCODING,")
	fmt.Fprintln(w, "  MD2SLIDES_HIGHLIGHT_STYLE, MD2SLIDES_PDF_TIMEOUT")
}
