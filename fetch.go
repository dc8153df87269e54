package md2slides

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// fetch reads every source in order and returns the processed slides.
// Unsupported and undecodable files are skipped with a log entry.
func (g *Generator) fetch(ctx context.Context) ([]*Slide, error) {
	var slides []*Slide
	for _, src := range g.opts.Source {
		found, err := g.fetchPath(ctx, src)
		if err != nil {
			return nil, err
		}
		slides = append(slides, found...)
	}
	return slides, nil
}

// fetchPath reads a file, or a directory recursively in name order.
func (g *Generator) fetchPath(ctx context.Context, path string) ([]*Slide, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		g.logger.Warn("skipping source", "path", path, "error", err)
		return nil, nil
	}

	var slides []*Slide
	if info.IsDir() {
		g.logger.Info("entering", "dir", path)
		entries, err := os.ReadDir(path)
		if err != nil {
			g.logger.Warn("skipping directory", "dir", path, "error", err)
			return nil, nil
		}
		for _, entry := range entries {
			found, err := g.fetchPath(ctx, filepath.Join(path, entry.Name()))
			if err != nil {
				return nil, err
			}
			slides = append(slides, found...)
		}
	} else {
		slides, err = g.fetchFile(ctx, path)
		if err != nil {
			return nil, err
		}
	}

	if len(slides) == 0 {
		g.logger.Info("no contents found", "path", path)
	}
	return slides, nil
}

// fetchFile converts one file and runs its slides through the macros.
// Only context errors are returned; other failures skip the file.
func (g *Generator) fetchFile(ctx context.Context, path string) ([]*Slide, error) {
	if g.isDestination(path) {
		g.logger.Debug("skipping destination", "file", path)
		return nil, nil
	}

	conv, dialect, err := g.registry.ConverterFor(path)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnsupportedFormat) {
			g.logger.Info("skipping", "file", path, "error", err)
			return nil, nil
		}
		return nil, err
	}
	g.logger.Info("adding", "file", path, "format", string(dialect))

	text, err := fileutil.ReadText(path, g.opts.Encoding)
	if err != nil {
		if errors.Is(err, fileutil.ErrDecode) {
			g.logger.Warn("unable to decode source, skipping", "file", path, "encoding", g.opts.Encoding, "error", err)
		} else {
			g.logger.Warn("unable to read source, skipping", "file", path, "error", err)
		}
		return nil, nil
	}

	if dialect == pipeline.Markdown {
		text = g.preprocessor.PreprocessMarkdown(ctx, text)
	}

	htmlContent, err := conv.ToHTML(ctx, text)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		g.logger.Warn("unable to convert source, skipping", "file", path, "error", err)
		return nil, nil
	}

	src := SourceRef{RelPath: path, AbsPath: absPath(path)}
	var slides []*Slide
	for _, slide := range g.segmenter.Segment(htmlContent, src) {
		g.macros.Apply(slide)
		if !slide.IsEmpty() {
			slides = append(slides, slide)
		}
	}
	return slides, nil
}

// isDestination reports whether path is the generated output file.
func (g *Generator) isDestination(path string) bool {
	return !g.opts.Direct && absPath(path) == g.destination
}

// absPath returns the absolute form of path, or path itself on error.
func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
