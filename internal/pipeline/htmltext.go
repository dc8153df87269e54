package pipeline

import (
	"html"
	"regexp"
	"strings"
)

// htmlTagPattern matches HTML tags for stripping from heading text.
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// StripTags removes HTML tags from a string, decodes HTML entities,
// and trims whitespace. Used to turn a slide title into plain text.
func StripTags(s string) string {
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(s)
}
