// Package render turns repositories into HTML fragments.
//
// Everything here is a pure function of its input and the renderer's fixed
// configuration; mounting the markup into a page is left to the HTTP layer.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
	"github.com/kurihiro0119/github-portfolio/internal/locale"
)

const (
	// MaxDescription is the number of characters kept before truncation
	MaxDescription = 150
	ellipsis       = "…"

	// DefaultColor is used for unknown or absent languages
	DefaultColor = "#6b7280"
)

// LanguageColors maps a primary language to its swatch color
var LanguageColors = map[string]string{
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Python":     "#3572A5",
	"Java":       "#b07219",
	"C#":         "#239120",
	"HTML":       "#e34c26",
	"CSS":        "#1572B6",
	"Shell":      "#89e051",
	"PHP":        "#4F5D95",
	"Go":         "#00ADD8",
	"C":          "#555555",
	"C++":        "#f34b7d",
}

// Renderer renders repository cards and grid placeholders
type Renderer struct {
	locale    *locale.Locale
	location  *time.Location
	fragments *template.Template
	page      *template.Template
	markdown  goldmark.Markdown
}

// New creates a Renderer for the given locale
func New(loc *locale.Locale) (*Renderer, error) {
	fragments, err := template.New("fragments").Parse(fragmentTemplates)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment templates: %w", err)
	}
	page, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{
		locale:    loc,
		location:  time.UTC,
		fragments: fragments,
		page:      page,
		markdown:  goldmark.New(),
	}, nil
}

// WithLocation sets the time zone used for update dates
func (r *Renderer) WithLocation(location *time.Location) *Renderer {
	if location != nil {
		r.location = location
	}
	return r
}

// Locale returns the renderer's locale
func (r *Renderer) Locale() *locale.Locale {
	return r.locale
}

type cardView struct {
	Name        string
	Description string
	Language    string
	Color       template.CSS
	Stars       int
	Forks       int
	Archived    bool
	Updated     string
	HTMLURL     string
	CloneURL    string
	Msg         locale.Messages
}

// RenderCard renders a single repository card
func (r *Renderer) RenderCard(repo *domain.Repository) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.writeCard(&buf, repo); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// RenderGrid renders all cards in order, or the no-results placeholder when repos is empty
func (r *Renderer) RenderGrid(repos []*domain.Repository) (template.HTML, error) {
	var buf bytes.Buffer
	if len(repos) == 0 {
		if err := r.fragments.ExecuteTemplate(&buf, "empty", r.locale.Messages); err != nil {
			return "", fmt.Errorf("rendering empty grid: %w", err)
		}
		return template.HTML(buf.String()), nil
	}
	for _, repo := range repos {
		if err := r.writeCard(&buf, repo); err != nil {
			return "", err
		}
	}
	return template.HTML(buf.String()), nil
}

// RenderError renders the placeholder that replaces the grid after a failed load cycle
func (r *Renderer) RenderError() template.HTML {
	return r.mustFragment("error")
}

// RenderLoading renders the placeholder shown while a load cycle is in flight
func (r *Renderer) RenderLoading() template.HTML {
	return r.mustFragment("loading")
}

func (r *Renderer) mustFragment(name string) template.HTML {
	var buf bytes.Buffer
	// These fragments only read the locale's fixed strings and cannot fail
	if err := r.fragments.ExecuteTemplate(&buf, name, r.locale.Messages); err != nil {
		panic(fmt.Sprintf("render: fragment %s: %v", name, err))
	}
	return template.HTML(buf.String())
}

func (r *Renderer) writeCard(buf *bytes.Buffer, repo *domain.Repository) error {
	view := cardView{
		Name:        repo.Name,
		Description: Truncate(repo.Description, MaxDescription),
		Language:    repo.Language,
		Color:       template.CSS(ColorFor(repo.Language)),
		Stars:       repo.Stars,
		Forks:       repo.Forks,
		Archived:    repo.Archived,
		Updated:     r.locale.ShortDate(repo.UpdatedAt.In(r.location)),
		HTMLURL:     repo.HTMLURL,
		CloneURL:    repo.CloneURL,
		Msg:         r.locale.Messages,
	}
	if view.Description == "" {
		view.Description = r.locale.Messages.NoDescription
	}
	if err := r.fragments.ExecuteTemplate(buf, "card", view); err != nil {
		return fmt.Errorf("rendering card %s: %w", repo.Name, err)
	}
	return nil
}

// ColorFor returns the swatch color of a language
func ColorFor(language string) string {
	if color, ok := LanguageColors[language]; ok {
		return color
	}
	return DefaultColor
}

// Truncate shortens text to max characters, marking the cut with an ellipsis
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + ellipsis
}
