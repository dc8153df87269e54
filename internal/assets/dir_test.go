package assets

import (
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOSDir_ReadFile(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeThemeFile(t, tmpDir, "css/img/bg.png", "png")
	writeThemeFile(t, tmpDir, "fonts/a.woff", "woff")
	dir := OSDir(filepath.Join(tmpDir, "css"))

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"relative ref", "img/bg.png", "png"},
		{"parent ref", "../fonts/a.woff", "woff"},
		{"absolute ref", filepath.Join(tmpDir, "fonts", "a.woff"), "woff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := dir.ReadFile(tt.ref)
			if err != nil {
				t.Fatalf("ReadFile(%q) error = %v", tt.ref, err)
			}
			if string(got) != tt.want {
				t.Errorf("ReadFile(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}

	if _, err := dir.ReadFile("missing.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestFSDir_ReadFile(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"themes/x/css/img/bg.png": {Data: []byte("png")},
		"themes/x/fonts/a.woff":   {Data: []byte("woff")},
	}
	dir := FSDir{FS: fsys, Root: "themes/x/css"}

	got, err := dir.ReadFile("img/bg.png")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "png" {
		t.Errorf("ReadFile() = %q, want %q", got, "png")
	}

	got, err = dir.ReadFile("../fonts/a.woff")
	if err != nil {
		t.Fatalf("ReadFile(parent) error = %v", err)
	}
	if string(got) != "woff" {
		t.Errorf("ReadFile(parent) = %q, want %q", got, "woff")
	}

	if _, err := dir.ReadFile("../../../../outside.png"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(escape) error = %v, want fs.ErrNotExist", err)
	}
}

func TestDir_String(t *testing.T) {
	t.Parallel()

	if got := OSDir("/tmp/css").String(); got != "/tmp/css" {
		t.Errorf("OSDir.String() = %q, want %q", got, "/tmp/css")
	}
	if got := (FSDir{Root: "themes/default/css"}).String(); got != "embedded:themes/default/css" {
		t.Errorf("FSDir.String() = %q, want %q", got, "embedded:themes/default/css")
	}
}
