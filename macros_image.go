package md2slides

import (
	"log/slog"
	"net/url"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// EmbedImagesMacro inlines local images as data URIs in embed mode.
type EmbedImagesMacro struct {
	embed  bool
	logger *slog.Logger
}

// Name implements Macro.
func (m *EmbedImagesMacro) Name() string { return "embed_images" }

// Process implements Macro.
func (m *EmbedImagesMacro) Process(content string, src SourceRef, _ MacroContext) (string, []string) {
	if !m.embed {
		return content, nil
	}
	return rewriteImages(content, src, m.logger, func(ref, path string) (string, bool) {
		data, err := os.ReadFile(path) // #nosec G304 -- image paths come from the slide sources
		if err != nil {
			m.logger.Warn("image not embedded", "src", ref, "error", err)
			return "", false
		}
		m.logger.Debug("embedded image", "src", ref)
		return fileutil.DataURI(path, data), true
	})
}

// FixImagePathsMacro points local images at their file outside embed mode:
// an absolute file:// URL, or a path relative to the destination directory.
type FixImagePathsMacro struct {
	embed      bool
	relativeTo string
	logger     *slog.Logger
}

// Name implements Macro.
func (m *FixImagePathsMacro) Name() string { return "fix_image_paths" }

// Process implements Macro.
func (m *FixImagePathsMacro) Process(content string, src SourceRef, _ MacroContext) (string, []string) {
	if m.embed {
		return content, nil
	}
	return rewriteImages(content, src, m.logger, func(ref, path string) (string, bool) {
		u, err := fileutil.PathURL(path, m.relativeTo)
		if err != nil {
			m.logger.Warn("image path left as is", "src", ref, "error", err)
			return "", false
		}
		return u, true
	})
}

// rewriteImages applies fn to local image references, resolved against the
// directory of the slide source file.
func rewriteImages(content string, src SourceRef, logger *slog.Logger, fn func(ref, path string) (string, bool)) (string, []string) {
	baseDir := filepath.Dir(src.AbsPath)

	out, err := pipeline.RewriteImageSources(content, func(ref string) (string, bool) {
		if !fileutil.IsLocalRef(ref) {
			return "", false
		}
		return fn(ref, resolveRef(baseDir, ref))
	})
	if err != nil {
		logger.Warn("images left as is", "source", src.RelPath, "error", err)
		return content, nil
	}
	return out, nil
}

// resolveRef turns a URL-escaped reference into a path under baseDir.
func resolveRef(baseDir, ref string) string {
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}
	ref = filepath.FromSlash(ref)
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(baseDir, ref)
}
