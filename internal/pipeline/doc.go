// Package pipeline implements the markup-to-HTML stage of slideshow generation.
//
// This package handles:
//   - Dialect detection from file extensions (markdown, html, rst, textile)
//   - Markdown preprocessing (line normalization)
//   - Markdown to HTML conversion via Goldmark or gomarkdown
//   - Image source rewriting in HTML fragments
//
// Converters return HTML fragments, not documents: the slideshow template owns
// the document structure. Slide segmentation, macros and rendering are handled
// by the root md2slides package.
package pipeline
