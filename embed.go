package md2slides

import (
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
)

// cssURL matches CSS url(...) references, quoted or not. 1 = reference.
var cssURL = regexp.MustCompile(`(?s)url\(["']?(.*?)["']?\)`)

// AssetEmbedder inlines images and fonts referenced from CSS url(...) as data URIs.
type AssetEmbedder struct {
	dirs   []assets.Dir
	logger *slog.Logger
}

// NewAssetEmbedder creates an embedder searching dirs in order.
func NewAssetEmbedder(logger *slog.Logger, dirs ...assets.Dir) *AssetEmbedder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AssetEmbedder{dirs: dirs, logger: logger}
}

// Embed replaces the first occurrence of each distinct embeddable reference
// with a data URI. Later occurrences of the same reference are left as is.
// References that cannot be found are logged and left as is.
// Data, file and remote URLs are never candidates, so Embed is idempotent.
func (e *AssetEmbedder) Embed(html string) string {
	for _, ref := range embedCandidates(html) {
		data, dir, ok := e.find(ref)
		if !ok {
			e.logger.Warn("asset not embedded", "error", fmt.Errorf("%w: %s", ErrAssetEmbed, ref))
			continue
		}
		html = strings.Replace(html, ref, fileutil.DataURI(ref, data), 1)
		e.logger.Debug("embedded asset", "url", ref, "dir", dir.String())
	}
	return html
}

// find reads ref from the first directory that has it.
func (e *AssetEmbedder) find(ref string) ([]byte, assets.Dir, bool) {
	name := ref
	if unescaped, err := url.PathUnescape(ref); err == nil {
		name = unescaped
	}
	for _, dir := range e.dirs {
		if data, err := dir.ReadFile(name); err == nil {
			return data, dir, true
		}
	}
	return nil, nil, false
}

// embedCandidates returns the distinct local references with an embeddable
// extension, in order of first appearance.
func embedCandidates(html string) []string {
	exts := fileutil.EmbeddableExtensions()
	var refs []string
	for _, m := range cssURL.FindAllStringSubmatch(html, -1) {
		ref := strings.NewReplacer(`"`, "", `'`, "").Replace(m[1])
		if !fileutil.IsLocalRef(ref) || slices.Contains(refs, ref) {
			continue
		}
		lower := strings.ToLower(ref)
		if slices.ContainsFunc(exts, func(ext string) bool { return strings.HasSuffix(lower, ext) }) {
			refs = append(refs, ref)
		}
	}
	return refs
}
