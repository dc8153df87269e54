// Package assets provides the slideshow themes: the HTML template, stylesheets
// and scripts a presentation is rendered with.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads a built-in theme from the go:embed filesystem
//	    ├── FilesystemLoader  - loads a theme from a directory on disk
//	    └── AssetResolver     - combines both with theme-first fallback
//
// EmbeddedLoader provides the built-in themes (default, void) embedded at
// compile time.
//
// FilesystemLoader allows users to provide a theme directory, with path
// traversal protection and symlink resolution.
//
// AssetResolver is the loader behind Theme. It tries the active theme first,
// falling back to the built-in default theme if a file is not found. A theme
// therefore only needs to ship the files it overrides.
//
// # Directory Structure
//
// A theme is a directory organized as:
//
//	{theme}/
//	├── base.html            # html/template rendering the presentation
//	├── css/
//	│   ├── base.css         # layout shared by all media
//	│   ├── print.css        # print media
//	│   ├── screen.css       # screen media
//	│   └── theme.css        # colors and fonts
//	└── js/
//	    └── slides.js        # navigation
//
// # Security
//
// Theme names and file names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within the theme
// directory.
package assets
