package md2slides

// BuildTOC folds numbered slides into a table of contents.
// Slides with 0 < Level <= maxDepth become entries; each entry is a child of
// the most recent entry with a strictly smaller level, or a root otherwise.
// Skipped levels (1 then 4) nest under the nearest shallower entry.
func BuildTOC(slides []*Slide, maxDepth int) []*TocEntry {
	roots := []*TocEntry{}
	var ancestors []*TocEntry

	for _, s := range slides {
		if s == nil || s.Level <= 0 || s.Level > maxDepth {
			continue
		}
		entry := &TocEntry{
			Title:    s.Title,
			Level:    s.Level,
			Number:   s.Number,
			Children: []*TocEntry{},
		}

		for len(ancestors) > 0 && ancestors[len(ancestors)-1].Level >= entry.Level {
			ancestors = ancestors[:len(ancestors)-1]
		}
		if len(ancestors) == 0 {
			roots = append(roots, entry)
		} else {
			parent := ancestors[len(ancestors)-1]
			parent.Children = append(parent.Children, entry)
		}
		ancestors = append(ancestors, entry)
	}

	return roots
}
