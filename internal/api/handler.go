package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-portfolio/internal/aggregator"
	"github.com/kurihiro0119/github-portfolio/internal/config"
	"github.com/kurihiro0119/github-portfolio/internal/contact"
	"github.com/kurihiro0119/github-portfolio/internal/domain"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
	"github.com/kurihiro0119/github-portfolio/internal/filter"
	"github.com/kurihiro0119/github-portfolio/internal/render"
	"github.com/kurihiro0119/github-portfolio/internal/typing"
)

// PortfolioProvider returns the snapshot of the current load cycle
type PortfolioProvider interface {
	Current(ctx context.Context) (*domain.Portfolio, error)
}

// Handler handles page and API requests
type Handler struct {
	portfolios PortfolioProvider
	renderer   *render.Renderer
	projector  *aggregator.Projector
	content    *config.Content
	composer   *contact.Composer
	timings    typing.Timings
	logger     logrus.FieldLogger
}

// NewHandler creates a new handler
func NewHandler(
	portfolios PortfolioProvider,
	renderer *render.Renderer,
	projector *aggregator.Projector,
	content *config.Content,
	logger logrus.FieldLogger,
) *Handler {
	return &Handler{
		portfolios: portfolios,
		renderer:   renderer,
		projector:  projector,
		content:    content,
		composer: &contact.Composer{
			To:      content.ContactEmail,
			Subject: content.ContactSubject,
		},
		timings: typing.DefaultTimings(),
		logger:  logger,
	}
}

// SetTimings overrides the typing animation delays of the terminal stream
func (h *Handler) SetTimings(t typing.Timings) {
	h.timings = t
}

// ListRepos returns the visible repository set as JSON
// GET /api/v1/repos?q=&filter=
func (h *Handler) ListRepos(c *gin.Context) {
	p, err := h.portfolios.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	repos := filter.VisibleSet(p.Repos, parseFilterState(c))
	c.JSON(http.StatusOK, gin.H{
		"data": repos,
	})
}

// GetProfile returns the GitHub profile of the portfolio owner
// GET /api/v1/profile
func (h *Handler) GetProfile(c *gin.Context) {
	p, err := h.portfolios.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": p.Profile,
	})
}

// GetStats returns the terminal listing and language histogram
// GET /api/v1/stats?limit=
func (h *Handler) GetStats(c *gin.Context) {
	p, err := h.portfolios.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	limit := parseIntQuery(c, "limit", aggregator.DefaultListingLimit)
	c.JSON(http.StatusOK, gin.H{
		"data": h.projector.Project(p.Profile, p.Repos, limit),
	})
}

// HealthCheck returns the health status of the API
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

func parseFilterState(c *gin.Context) domain.FilterState {
	return domain.FilterState{
		SearchTerm: c.Query("q"),
		Mode:       domain.ParseFilterMode(c.Query("filter")),
	}
}

// parseIntQuery parses an integer query parameter
func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	valueStr := c.Query(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	if apperrors.IsFetchError(err) {
		err = apperrors.NewFetchFailedError(err)
	}

	var appErr *apperrors.AppError
	if apperrors.AsAppError(err, &appErr) {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeNotFound:
			status = http.StatusNotFound
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeFetchFailed:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
}
