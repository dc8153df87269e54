// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors during PDF export.
// Detects CI/Docker environment and suggests relevant environment variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	hints = append(hints, "or write an .html destination instead of .pdf")

	return formatHints(hints)
}

// ForConfigNotFound returns a hint for a missing configuration file.
func ForConfigNotFound() string {
	return format("pass an existing .yaml file, or run without one and use flags")
}

// ForSourceNotFound returns a hint for a missing source path.
func ForSourceNotFound() string {
	return format("pass a markup file or a directory containing slides")
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check the destination directory is writable")
}

// ForThemeNotFound returns hints listing the built-in themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return format("pass a theme directory path")
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a theme directory path")
}

// ForDecode returns a hint for undecodable sources.
func ForDecode(encoding string) string {
	if encoding == "" {
		encoding = "utf8"
	}
	return format("files are read as " + encoding + "; set --encoding (e.g. latin1, windows-1252)")
}

// ForUnsupportedFormat returns a hint listing markup extensions.
func ForUnsupportedFormat(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("supported extensions: " + strings.Join(extensions, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
