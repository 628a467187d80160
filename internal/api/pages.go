package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kurihiro0119/github-portfolio/internal/aggregator"
	"github.com/kurihiro0119/github-portfolio/internal/contact"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
	"github.com/kurihiro0119/github-portfolio/internal/filter"
	"github.com/kurihiro0119/github-portfolio/internal/render"
)

const htmlContentType = "text/html; charset=utf-8"

// Index renders the full portfolio page. A failed load cycle replaces the
// grid with the error placeholder and leaves the terminal stats empty.
// GET /
func (h *Handler) Index(c *gin.Context) {
	state := parseFilterState(c)
	data := render.PageData{
		Name:       h.content.Name,
		Title:      h.content.Title,
		About:      h.content.About,
		Paragraphs: h.content.Paragraphs,
		SearchTerm: state.SearchTerm,
		Filter:     state.Mode,
	}

	p, err := h.portfolios.Current(c.Request.Context())
	if err != nil {
		data.Grid = h.renderer.RenderError()
	} else {
		grid, err := h.renderer.RenderGrid(filter.VisibleSet(p.Repos, state))
		if err != nil {
			respondError(c, apperrors.NewInternalError("failed to render repositories", err))
			return
		}
		data.Grid = grid
		data.Listing = h.projector.BuildListing(p.Repos, aggregator.DefaultListingLimit)
		data.Summary = h.projector.Summary(p.Profile, p.Repos)
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderPage(&buf, data); err != nil {
		respondError(c, apperrors.NewInternalError("failed to render page", err))
		return
	}
	c.Data(http.StatusOK, htmlContentType, buf.Bytes())
}

// ReposFragment renders the repository grid for the current search and filter
// GET /repos?q=&filter=
func (h *Handler) ReposFragment(c *gin.Context) {
	p, err := h.portfolios.Current(c.Request.Context())
	if err != nil {
		h.fragment(c, h.renderer.RenderError())
		return
	}

	grid, err := h.renderer.RenderGrid(filter.VisibleSet(p.Repos, parseFilterState(c)))
	if err != nil {
		respondError(c, apperrors.NewInternalError("failed to render repositories", err))
		return
	}
	h.fragment(c, grid)
}

// Contact redirects the browser to a mailto link composed from the form
// POST /contact
func (h *Handler) Contact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBind(&msg); err != nil {
		respondError(c, apperrors.NewBadRequestError("invalid contact form"))
		return
	}

	link, err := h.composer.BuildMailto(msg)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("HX-Redirect", link)
	c.Redirect(http.StatusSeeOther, link)
}

// HTMX only swaps 2xx responses, so placeholders are sent with 200
func (h *Handler) fragment(c *gin.Context, html template.HTML) {
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}
