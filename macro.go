package md2slides

import (
	"fmt"
	"slices"
	"sync"
)

// Macro transforms slide markup. Process receives the output of the previous
// macro and returns the new markup plus classes to add to the slide.
// A macro never fails: when it cannot apply it returns content unchanged.
// Macros run before numbering and must not depend on other slides.
type Macro interface {
	Name() string
	Process(content string, src SourceRef, ctx MacroContext) (string, []string)
}

// MacroPipeline is an ordered chain of macros.
// Registration closes once the pipeline is first applied.
type MacroPipeline struct {
	mu     sync.Mutex
	macros []Macro
	names  map[string]bool
	frozen bool
}

// NewMacroPipeline creates a pipeline running macros in order.
// Returns ErrInvalidMacro for a nil macro or a duplicate name.
func NewMacroPipeline(macros ...Macro) (*MacroPipeline, error) {
	p := &MacroPipeline{names: make(map[string]bool, len(macros))}
	for _, m := range macros {
		if err := p.add(m); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register appends a macro to the chain.
// Returns ErrPipelineFrozen once slides have been processed.
func (p *MacroPipeline) Register(m Macro) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.frozen {
		return fmt.Errorf("%w: cannot register %q", ErrPipelineFrozen, macroName(m))
	}
	return p.add(m)
}

// add validates and appends m. Callers hold mu or own p exclusively.
func (p *MacroPipeline) add(m Macro) error {
	if m == nil {
		return fmt.Errorf("%w: nil macro", ErrInvalidMacro)
	}
	name := m.Name()
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidMacro)
	}
	if p.names[name] {
		return fmt.Errorf("%w: duplicate name %q", ErrInvalidMacro, name)
	}
	p.names[name] = true
	p.macros = append(p.macros, m)
	return nil
}

// Names returns the macro names in chain order.
func (p *MacroPipeline) Names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	names := make([]string, len(p.macros))
	for i, m := range p.macros {
		names[i] = m.Name()
	}
	return names
}

// Freeze closes registration.
func (p *MacroPipeline) Freeze() {
	p.mu.Lock()
	p.frozen = true
	p.mu.Unlock()
}

// Apply runs the chain over the slide header, then over its content.
// Header classes are discarded. Notes collected by macros are prepended to
// the slide presenter notes. A slide left without a basic class gets
// slide-content, or slide-title when its content is empty.
func (p *MacroPipeline) Apply(slide *Slide) {
	p.Freeze()

	if slide.Context == nil {
		slide.Context = MacroContext{}
	}

	if slide.Header != "" {
		slide.Header, _ = p.run(slide.Header, slide.Source, slide.Context)
	}

	var classes []string
	if slide.Content != "" {
		slide.Content, classes = p.run(slide.Content, slide.Source, slide.Context)
	}
	slide.Classes = append(slide.Classes, classes...)

	if notes := slide.Context.String(ContextPresenterNotes); notes != "" {
		slide.PresenterNotes = notes + slide.PresenterNotes
	}

	if !slices.Contains(slide.Classes, ClassSlideTitle) && !slices.Contains(slide.Classes, ClassSlideContent) {
		if slide.Content != "" {
			slide.Classes = append(slide.Classes, ClassSlideContent)
		} else {
			slide.Classes = append(slide.Classes, ClassSlideTitle)
		}
	}
}

// run chains content through every macro.
func (p *MacroPipeline) run(content string, src SourceRef, ctx MacroContext) (string, []string) {
	var classes []string
	for _, m := range p.macros {
		var added []string
		content, added = m.Process(content, src, ctx)
		classes = append(classes, added...)
	}
	return content, classes
}

// macroName returns a printable name for m, which may be nil.
func macroName(m Macro) string {
	if m == nil {
		return "<nil>"
	}
	return m.Name()
}
