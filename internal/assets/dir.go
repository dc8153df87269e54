package assets

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Dir is a directory in which files referenced from a stylesheet are looked up.
type Dir interface {
	// ReadFile reads a file by the reference found in the stylesheet,
	// resolved against the directory.
	ReadFile(ref string) ([]byte, error)

	// String returns a human-readable location for logs.
	String() string
}

// OSDir is a directory on disk.
type OSDir string

// ReadFile reads ref relative to the directory. Absolute refs are read as is.
func (d OSDir) ReadFile(ref string) ([]byte, error) {
	p := filepath.FromSlash(ref)
	if !filepath.IsAbs(p) {
		p = filepath.Join(string(d), p)
	}
	return os.ReadFile(p) // #nosec G304 -- stylesheet references are user content
}

func (d OSDir) String() string {
	return string(d)
}

// FSDir is a directory inside an fs.FS, used for built-in themes.
type FSDir struct {
	FS   fs.FS
	Root string
}

// ReadFile reads ref relative to Root. References that leave the
// filesystem root fail with fs.ErrNotExist.
func (d FSDir) ReadFile(ref string) ([]byte, error) {
	name := path.Join(d.Root, ref)
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: ref, Err: fs.ErrNotExist}
	}
	return fs.ReadFile(d.FS, name)
}

func (d FSDir) String() string {
	return "embedded:" + d.Root
}

// Compile-time interface checks.
var (
	_ Dir = OSDir("")
	_ Dir = FSDir{}
)
