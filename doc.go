// Package md2slides turns markup sources into a single-file HTML slideshow.
//
// # Quick Start
//
// Create a generator from options and write the slideshow:
//
//	opts := md2slides.DefaultOptions("slides/")
//	opts.Destination = "presentation.html"
//
//	gen, err := md2slides.New(opts, md2slides.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := gen.Write(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Use Render to get the HTML without writing it. A destination ending in
// .pdf is printed by headless Chrome instead.
//
// # Generation Pipeline
//
//  1. Sources are read in order; directories are walked recursively by name.
//  2. Each file is converted to HTML by the converter for its extension
//     (goldmark or gomarkdown for markdown, passthrough for HTML).
//  3. The HTML is split into slides on <hr> separators. The first heading
//     becomes the slide header and a "Presenter Notes" heading starts the notes.
//  4. Header and content go through the macro chain.
//  5. Slides are numbered and headings up to MaxTOCLevel form the table of contents.
//  6. The theme template renders the document. In embed mode, images and
//     fonts referenced from CSS are then inlined as data URIs.
//
// # Macros
//
// The default chain, in order:
//
//	code             <pre><code>!python ...</code></pre> highlighted with chroma
//	embed_images     local <img> sources inlined (embed mode)
//	fix_image_paths  local <img> sources made absolute or relative to the destination
//	fx               <p>.fx: class1 class2</p> adds slide classes
//	notes            <p>.notes: text</p> moves text to the presenter notes
//	qr               <p>.qr: 200|https://example.com</p> inserts a QR code
//	footer           <p>.footer: text</p> sets the slide footer
//
// Register additional macros with Generator.RegisterMacro before the first render.
//
// # Themes
//
// Options.Theme names a built-in theme or a directory:
//
//	mytheme/
//	├── base.html
//	├── css/
//	│   ├── base.css
//	│   ├── print.css
//	│   ├── screen.css
//	│   └── theme.css
//	└── js/
//	    └── slides.js
//
// Files missing from a theme are taken from the built-in default theme.
//
// # Browser Requirements
//
// PDF output requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package md2slides
