package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-portfolio/internal/aggregator"
	"github.com/kurihiro0119/github-portfolio/internal/config"
	"github.com/kurihiro0119/github-portfolio/internal/domain"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
	"github.com/kurihiro0119/github-portfolio/internal/locale"
	"github.com/kurihiro0119/github-portfolio/internal/logging"
	"github.com/kurihiro0119/github-portfolio/internal/render"
	"github.com/kurihiro0119/github-portfolio/internal/typing"
)

type fakeProvider struct {
	portfolio *domain.Portfolio
	err       error
}

func (f *fakeProvider) Current(ctx context.Context) (*domain.Portfolio, error) {
	return f.portfolio, f.err
}

func testPortfolio() *domain.Portfolio {
	at := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)
	return &domain.Portfolio{
		User:    "alice",
		Profile: &domain.UserProfile{Login: "alice", PublicRepos: 3, Followers: 9},
		Repos: []*domain.Repository{
			{Name: "a", Language: "Go", Stars: 5, UpdatedAt: at, CloneURL: "https://github.com/alice/a.git"},
			{Name: "b", Language: "Python", Stars: 10, UpdatedAt: at.Add(-time.Hour)},
			{Name: "c", Archived: true, UpdatedAt: at.Add(-2 * time.Hour)},
		},
	}
}

func setupTestRouter(t *testing.T, provider PortfolioProvider) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	renderer, err := render.New(locale.English)
	require.NoError(t, err)

	content := config.DefaultContent()
	content.ContactEmail = "me@example.com"

	logger := logging.Discard()
	projector := aggregator.NewProjector(locale.English, time.UTC, "alice")
	handler := NewHandler(provider, renderer, projector, content, logger)
	return SetupRoutes(handler, logger), handler
}

func doRequest(router http.Handler, method, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	w := doRequest(router, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestListRepos(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "all", query: "", want: []string{"a", "b", "c"}},
		{name: "starred", query: "?filter=starred", want: []string{"b", "a"}},
		{name: "archived", query: "?filter=archived", want: []string{"c"}},
		{name: "search", query: "?q=PY", want: []string{"b"}},
		{name: "unknown filter", query: "?filter=bogus", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, "/api/v1/repos"+tt.query)
			require.Equal(t, http.StatusOK, w.Code)

			var body struct {
				Data []domain.Repository `json:"data"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

			names := make([]string, 0, len(body.Data))
			for _, r := range body.Data {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestFetchErrorMapsToBadGateway(t *testing.T) {
	fetchErr := &apperrors.FetchError{Op: "list repositories", Status: 500, Cause: apperrors.CauseStatus, Err: stderrors.New("boom")}
	router, _ := setupTestRouter(t, &fakeProvider{err: fetchErr})

	for _, path := range []string{"/api/v1/repos", "/api/v1/profile", "/api/v1/stats"} {
		w := doRequest(router, http.MethodGet, path)
		assert.Equal(t, http.StatusBadGateway, w.Code, path)
		assert.Contains(t, w.Body.String(), string(apperrors.ErrCodeFetchFailed), path)
	}
}

func TestGetProfileAndStats(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	w := doRequest(router, http.MethodGet, "/api/v1/profile")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"public_repos":3`)

	w = doRequest(router, http.MethodGet, "/api/v1/stats?limit=1")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data aggregator.Stats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, len(strings.Split(body.Data.Listing, "\n")))
	assert.Equal(t, "Go: 1 | Python: 1", body.Data.Languages)
	assert.Equal(t, "Public repos: 3 | Followers: 9 | Languages: Go: 1 | Python: 1", body.Data.Summary)
}

func TestIndex(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	w := doRequest(router, http.MethodGet, "/?filter=archived")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Equal(t, 1, strings.Count(body, "repo-card"))
	assert.Contains(t, body, "total 3")
	assert.Contains(t, body, "Public repos: 3")
}

func TestIndexKeepsSearchTerm(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	w := doRequest(router, http.MethodGet, "/?q=python")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `name="q" value="python"`)
	assert.Equal(t, 1, strings.Count(body, "repo-card"))
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrCode
	}{
		{name: "not found", err: apperrors.NewNotFoundError("repository"), wantStatus: http.StatusNotFound, wantCode: apperrors.ErrCodeNotFound},
		{name: "bad request", err: apperrors.NewBadRequestError("bad"), wantStatus: http.StatusBadRequest, wantCode: apperrors.ErrCodeBadRequest},
		{name: "internal", err: apperrors.NewInternalError("boom", nil), wantStatus: http.StatusInternalServerError, wantCode: apperrors.ErrCodeInternal},
		{name: "fetch error", err: &apperrors.FetchError{Op: "get user", Status: 429, Cause: apperrors.CauseStatus, Err: stderrors.New("rate limited")}, wantStatus: http.StatusBadGateway, wantCode: apperrors.ErrCodeFetchFailed},
		{name: "plain error", err: stderrors.New("unexpected"), wantStatus: http.StatusInternalServerError, wantCode: apperrors.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body struct {
				Error struct {
					Code apperrors.ErrCode `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestIndexShowsErrorPlaceholder(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{err: &apperrors.FetchError{Op: "get user", Cause: apperrors.CauseNetwork, Err: stderrors.New("dial")}})

	w := doRequest(router, http.MethodGet, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), locale.English.Messages.LoadError)
	assert.NotContains(t, w.Body.String(), "repo-card")
}

func TestReposFragment(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	w := doRequest(router, http.MethodGet, "/repos?q=nothing-matches")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), locale.English.Messages.NoResults)
	assert.NotContains(t, w.Body.String(), "<html")

	w = doRequest(router, http.MethodGet, "/repos?filter=starred")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Less(t, strings.Index(w.Body.String(), ">b<"), strings.Index(w.Body.String(), ">a<"))
}

func TestContact(t *testing.T) {
	router, _ := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})

	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi there"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	location := w.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "mailto:me@example.com?subject="))
	assert.Contains(t, location, "Hi%20there")
	assert.Equal(t, location, w.Header().Get("HX-Redirect"))
}

func TestTerminalStream(t *testing.T) {
	router, handler := setupTestRouter(t, &fakeProvider{portfolio: testPortfolio()})
	handler.content.Paragraphs = []string{"hi"}
	handler.content.Commands = []string{"ls"}
	handler.SetTimings(typing.Timings{})

	srv := httptest.NewServer(router)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/terminal/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	var frames []map[string]string
	for len(frames) < 6 {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		var f map[string]string
		require.NoError(t, conn.ReadJSON(&f))
		frames = append(frames, f)
	}

	assert.Equal(t, []map[string]string{
		{"op": "clear", "target": "0"},
		{"op": "append", "target": "0", "text": "h"},
		{"op": "append", "target": "0", "text": "i"},
		{"op": "clear", "target": "command"},
		{"op": "append", "target": "command", "text": "l"},
		{"op": "append", "target": "command", "text": "s"},
	}, frames)
}

func TestFilterModesRoundTrip(t *testing.T) {
	for _, mode := range domain.FilterModes {
		assert.Equal(t, mode, domain.ParseFilterMode(string(mode)))
	}
}
