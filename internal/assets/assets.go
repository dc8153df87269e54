package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// DefaultThemeName is the name of the built-in theme every other theme falls back to.
const DefaultThemeName = "default"

// Theme file names.
const (
	TemplateFile  = "base.html"
	BaseCSSFile   = "css/base.css"
	PrintCSSFile  = "css/print.css"
	ScreenCSSFile = "css/screen.css"
	ThemeCSSFile  = "css/theme.css"
	SlidesJSFile  = "js/slides.js"
)

// Theme is a resolved slideshow theme.
type Theme struct {
	Name string // Theme name, or base name of the theme directory
	Path string // Absolute theme directory, empty for built-in themes

	resolver *AssetResolver
}

// LoadTheme resolves a theme by built-in name or directory path.
// An existing directory wins over a built-in theme of the same name.
// Returns ErrThemeNotFound if neither applies.
func LoadTheme(nameOrPath string) (*Theme, error) {
	if nameOrPath == "" {
		nameOrPath = DefaultThemeName
	}

	if fileutil.DirExists(nameOrPath) {
		loader, err := NewFilesystemLoader(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrThemeNotFound, err)
		}
		resolver, err := NewAssetResolver(loader)
		if err != nil {
			return nil, err
		}
		return &Theme{
			Name:     filepath.Base(loader.BasePath()),
			Path:     loader.BasePath(),
			resolver: resolver,
		}, nil
	}

	if fileutil.IsFilePath(nameOrPath) {
		return nil, fmt.Errorf("%w: %q is not a directory", ErrThemeNotFound, nameOrPath)
	}

	var custom AssetLoader
	if nameOrPath != DefaultThemeName {
		loader, err := NewEmbeddedLoader(nameOrPath)
		if err != nil {
			if errors.Is(err, ErrInvalidAssetName) {
				return nil, fmt.Errorf("%w: %v", ErrThemeNotFound, err)
			}
			return nil, err
		}
		custom = loader
	}

	resolver, err := NewAssetResolver(custom)
	if err != nil {
		return nil, err
	}
	return &Theme{Name: nameOrPath, resolver: resolver}, nil
}

// File loads a theme file, falling back to the built-in default theme.
// Returns ErrThemeAssetMissing if neither has it.
func (t *Theme) File(name string) (*File, error) {
	file, err := t.resolver.LoadFile(name)
	if err != nil {
		if errors.Is(err, ErrAssetNotFound) {
			return nil, fmt.Errorf("%w: %q in theme %q", ErrThemeAssetMissing, name, t.Name)
		}
		return nil, err
	}
	return file, nil
}

// CSSDir returns the directory stylesheet references of the theme resolve against.
func (t *Theme) CSSDir() Dir {
	return t.resolver.Dir("css")
}

// IsBuiltin reports whether the theme is embedded in the binary.
func (t *Theme) IsBuiltin() bool {
	return t.Path == ""
}

// BuiltinThemes returns the names of the embedded themes, sorted.
func BuiltinThemes() []string {
	entries, err := fs.ReadDir(themes, "themes")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
