package md2slides

import (
	"regexp"
	"strconv"
	"strings"
)

// Slide extraction patterns. Fragments come from a markup converter, so
// regular expressions are enough: no structural HTML parse is needed.
var (
	// slideSeparator matches the horizontal rule every dialect emits for a slide
	// break: <hr>, <hr/>, <hr /> and <hr class="...">.
	slideSeparator = regexp.MustCompile(`<hr[^>]*>`)

	// presenterNotesHeading matches a heading of any depth reading "presenter notes".
	presenterNotesHeading = regexp.MustCompile(`(?is)<h\d[^>]*>\s*presenter notes\s*</h\d>`)

	// slideTitle captures the first heading and what follows it:
	// 1 = heading markup, 2 = depth, 3 = inner HTML, 4 = remainder.
	slideTitle = regexp.MustCompile(`(?s)(<h(\d+)[^>]*>(.+?)</h\d+>)\s?(.+)?`)
)

// SlideSegmenter splits converted documents into slides.
type SlideSegmenter struct {
	// PresenterNotes keeps the text following a "presenter notes" heading.
	// The heading and its text are stripped from the content either way.
	PresenterNotes bool
}

// SplitFragments splits a document on slide separators.
func SplitFragments(html string) []string {
	return slideSeparator.Split(html, -1)
}

// Segment returns the slides of one document, in order.
// Fragments without header and content are dropped.
func (s SlideSegmenter) Segment(html string, src SourceRef) []*Slide {
	var slides []*Slide
	for _, fragment := range SplitFragments(html) {
		if slide := s.Slide(fragment, src); slide != nil {
			slides = append(slides, slide)
		}
	}
	return slides
}

// Slide extracts one slide from a fragment. Returns nil when the fragment
// has neither a heading nor content.
func (s SlideSegmenter) Slide(fragment string, src SourceRef) *Slide {
	slide := &Slide{Source: src, Context: MacroContext{}}

	if loc := presenterNotesHeading.FindStringIndex(fragment); loc != nil {
		if s.PresenterNotes {
			slide.PresenterNotes = strings.TrimSpace(fragment[loc[1]:])
		}
		fragment = fragment[:loc[0]]
	}

	m := slideTitle.FindStringSubmatch(fragment)
	if m == nil {
		slide.Content = strings.TrimSpace(fragment)
	} else {
		slide.Header = m[1]
		slide.Level, _ = strconv.Atoi(m[2])
		slide.Title = m[3]
		slide.Content = strings.TrimSpace(m[4])
	}

	if slide.IsEmpty() {
		return nil
	}
	return slide
}
