package assets

import (
	"errors"
)

// AssetResolver combines the active theme loader with the built-in default
// theme. It tries the theme first, then falls back to the default theme if
// the file is not found there.
type AssetResolver struct {
	custom   AssetLoader // nil when the active theme is the default theme
	embedded AssetLoader
}

// NewAssetResolver creates an AssetResolver.
// A nil custom loader uses the built-in default theme only.
func NewAssetResolver(custom AssetLoader) (*AssetResolver, error) {
	embedded, err := NewEmbeddedLoader(DefaultThemeName)
	if err != nil {
		return nil, err
	}
	return &AssetResolver{custom: custom, embedded: embedded}, nil
}

// LoadFile loads a theme file, trying the custom loader first if available.
func (r *AssetResolver) LoadFile(name string) (*File, error) {
	if r.custom == nil {
		return r.embedded.LoadFile(name)
	}

	file, err := r.custom.LoadFile(name)
	if err == nil {
		return file, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !errors.Is(err, ErrAssetNotFound) {
		return nil, err
	}

	return r.embedded.LoadFile(name)
}

// Dir returns the active theme's subdirectory. Files referenced from
// stylesheets are looked up in the active theme only.
func (r *AssetResolver) Dir(name string) Dir {
	if !r.HasCustomLoader() {
		return r.embedded.Dir(name)
	}
	return r.custom.Dir(name)
}

// HasCustomLoader returns true if a theme other than the default is active.
func (r *AssetResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
