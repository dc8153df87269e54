package md2slides

import (
	"fmt"
	"html"
	"html/template"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// templateFuncs are available to theme templates.
// Slide markup, stylesheets and scripts come from trusted sources.
var templateFuncs = template.FuncMap{
	"raw":   func(s string) template.HTML { return template.HTML(s) },     // #nosec G203 -- slide markup
	"css":   func(s string) template.CSS { return template.CSS(s) },       // #nosec G203 -- theme stylesheets
	"js":    func(s string) template.JS { return template.JS(s) },         // #nosec G203 -- theme scripts
	"url":   func(s string) template.URL { return template.URL(s) },       // #nosec G203 -- file:// asset links
	"join":  strings.Join,
	"lower": strings.ToLower,
}

// parseTemplate parses the theme base template.
func parseTemplate(file *assets.File) (*template.Template, error) {
	tmpl, err := template.New(filepath.Base(file.Name)).Funcs(templateFuncs).Parse(string(file.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrTemplateRender, file.Name, err)
	}
	return tmpl, nil
}

// themeAsset loads a theme file, falling back to the built-in default theme.
// Files only available embedded get an empty PathURL and are always inlined.
func themeAsset(theme *assets.Theme, name, relativeTo string) (*Asset, error) {
	file, err := theme.File(name)
	if err != nil {
		return nil, err
	}

	asset := &Asset{Contents: string(file.Content), Embeddable: true}
	if file.Path != "" {
		asset.PathURL, err = fileutil.PathURL(file.Path, relativeTo)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", file.Path, err)
		}
		asset.Dir = filepath.Dir(file.Path)
	}
	return asset, nil
}

// themeCSS loads the four stylesheets of a theme.
func themeCSS(theme *assets.Theme, relativeTo string) (ThemeCSS, error) {
	var css ThemeCSS
	for _, f := range []struct {
		name   string
		target **Asset
	}{
		{assets.BaseCSSFile, &css.Base},
		{assets.PrintCSSFile, &css.Print},
		{assets.ScreenCSSFile, &css.Screen},
		{assets.ThemeCSSFile, &css.Theme},
	} {
		asset, err := themeAsset(theme, f.name, relativeTo)
		if err != nil {
			return ThemeCSS{}, err
		}
		*f.target = asset
	}
	return css, nil
}

// headTitle returns the plain text title of the first numbered slide.
// Empty fragments are not slides, so a leading separator does not hide it.
func headTitle(slides []*Slide) string {
	if len(slides) == 0 || slides[0].Title == "" {
		return DefaultHeadTitle
	}
	title := strings.TrimSpace(html.UnescapeString(pipeline.StripTags(slides[0].Title)))
	if title == "" {
		return DefaultHeadTitle
	}
	return title
}
