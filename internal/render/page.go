package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
)

const (
	// ToastDuration is how long the copy confirmation stays visible
	ToastDuration = 3 * time.Second
	// ToastFade is the fade-out transition of the copy confirmation
	ToastFade = 400 * time.Millisecond
)

// PageData is the input of the full portfolio page
type PageData struct {
	Name       string
	Title      string
	About      string // markdown
	Paragraphs []string
	Listing    string
	Summary    string
	Grid       template.HTML
	SearchTerm string
	Filter     domain.FilterMode
}

type filterButton struct {
	Mode   domain.FilterMode
	Label  string
	Active bool
}

type pageView struct {
	Lang            string
	Name            string
	Title           string
	About           template.HTML
	Paragraphs      []string
	Listing         string
	Summary         string
	Grid            template.HTML
	Loading         template.HTML
	SearchTerm      string
	ActiveFilter    domain.FilterMode
	Filters         []filterButton
	CopiedMessage   string
	ToastMillis     int64
	ToastFadeMillis int64
}

// RenderPage writes the complete portfolio page to w
func (r *Renderer) RenderPage(w io.Writer, data PageData) error {
	about, err := r.Markdown(data.About)
	if err != nil {
		return err
	}

	filters := make([]filterButton, 0, len(domain.FilterModes))
	for _, mode := range domain.FilterModes {
		filters = append(filters, filterButton{
			Mode:   mode,
			Label:  r.locale.Messages.FilterLabels[string(mode)],
			Active: mode == data.Filter,
		})
	}

	view := pageView{
		Lang:            r.locale.Tag,
		Name:            data.Name,
		Title:           data.Title,
		About:           about,
		Paragraphs:      data.Paragraphs,
		Listing:         data.Listing,
		Summary:         data.Summary,
		Grid:            data.Grid,
		Loading:         r.RenderLoading(),
		SearchTerm:      data.SearchTerm,
		ActiveFilter:    data.Filter,
		Filters:         filters,
		CopiedMessage:   r.locale.Messages.Copied,
		ToastMillis:     ToastDuration.Milliseconds(),
		ToastFadeMillis: ToastFade.Milliseconds(),
	}
	if err := r.page.Execute(w, view); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	return nil
}

// Markdown converts markdown to HTML. Raw HTML in the source is not passed through.
func (r *Renderer) Markdown(source string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}
