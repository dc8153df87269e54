package assets

// File is a theme file read by a loader.
type File struct {
	Name    string // Slash-separated name inside the theme (e.g. "css/base.css")
	Path    string // Absolute path on disk, empty for embedded files
	Content []byte
}

// AssetLoader defines the contract for reading theme files.
// Implementations may load from embedded assets, filesystem, S3, database, etc.
type AssetLoader interface {
	// LoadFile loads a theme file by slash-separated name.
	// Returns ErrAssetNotFound if the file doesn't exist.
	// Returns ErrInvalidAssetName if the name is absolute or escapes the theme.
	LoadFile(name string) (*File, error)

	// Dir returns the theme subdirectory used to look up files referenced
	// from stylesheets.
	Dir(name string) Dir
}
