package md2slides

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// loadUserFiles loads user stylesheets or scripts. Remote URLs are linked
// and never embedded. Local files are read with the source encoding.
// Returns ErrUserFileNotFound for a missing local file.
func loadUserFiles(paths []string, encoding, relativeTo string, logger *slog.Logger) ([]*Asset, error) {
	loaded := make([]*Asset, 0, len(paths))
	for _, p := range paths {
		if fileutil.IsURL(p) {
			loaded = append(loaded, &Asset{PathURL: p})
			logger.Info("loaded", "file", p, "embeddable", false)
			continue
		}

		p = filepath.Clean(p)
		if !fileutil.FileExists(p) {
			return nil, fmt.Errorf("%w: %s", ErrUserFileNotFound, p)
		}
		contents, err := fileutil.ReadText(p, encoding)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", p, err)
		}
		pathURL, err := fileutil.PathURL(p, relativeTo)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}
		dir, err := filepath.Abs(filepath.Dir(p))
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		loaded = append(loaded, &Asset{
			PathURL:    pathURL,
			Contents:   contents,
			Dir:        dir,
			Embeddable: true,
		})
		logger.Info("loaded", "file", p)
	}
	return loaded, nil
}
