package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
)

//go:embed themes
var themes embed.FS

// EmbeddedLoader loads a built-in theme from the embedded filesystem.
// Implements AssetLoader interface.
type EmbeddedLoader struct {
	root string
}

// NewEmbeddedLoader creates an EmbeddedLoader for the named built-in theme.
// Returns ErrThemeNotFound if no built-in theme has that name.
func NewEmbeddedLoader(name string) (*EmbeddedLoader, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	root := "themes/" + name
	info, err := fs.Stat(themes, root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	return &EmbeddedLoader{root: root}, nil
}

// LoadFile loads a file of the built-in theme by slash-separated name.
func (e *EmbeddedLoader) LoadFile(name string) (*File, error) {
	if err := ValidateAssetPath(name); err != nil {
		return nil, err
	}

	content, err := themes.ReadFile(path.Join(e.root, name))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrAssetNotFound, name)
	}

	return &File{Name: name, Content: content}, nil
}

// Dir returns a subdirectory of the built-in theme.
func (e *EmbeddedLoader) Dir(name string) Dir {
	return FSDir{FS: themes, Root: path.Join(e.root, name)}
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
