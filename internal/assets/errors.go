package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrThemeNotFound indicates the requested theme is neither a built-in
	// theme nor a readable directory.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrAssetNotFound indicates a file does not exist in a single loader.
	ErrAssetNotFound = errors.New("asset not found")

	// ErrThemeAssetMissing indicates a required file is absent from both the
	// active theme and the built-in default theme.
	ErrThemeAssetMissing = errors.New("theme asset missing")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading an asset file.
	ErrAssetRead = errors.New("failed to read asset")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)
