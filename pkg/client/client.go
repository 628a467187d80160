package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kurihiro0119/github-portfolio/internal/aggregator"
	"github.com/kurihiro0119/github-portfolio/internal/domain"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
)

// Client is the API client for the portfolio server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetRepos retrieves the repositories visible for the given search and filter
func (c *Client) GetRepos(ctx context.Context, state domain.FilterState) ([]*domain.Repository, error) {
	params := url.Values{}
	if state.SearchTerm != "" {
		params.Set("q", state.SearchTerm)
	}
	if state.Mode != "" {
		params.Set("filter", string(state.Mode))
	}

	var response struct {
		Data []*domain.Repository `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/repos", params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetProfile retrieves the profile of the portfolio owner
func (c *Client) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var response struct {
		Data *domain.UserProfile `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/profile", nil, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// GetStats retrieves the terminal listing and language histogram
func (c *Client) GetStats(ctx context.Context, limit int) (*aggregator.Stats, error) {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var response struct {
		Data *aggregator.Stats `json:"data"`
	}
	if err := c.get(ctx, "/api/v1/stats", params, &response); err != nil {
		return nil, err
	}
	return response.Data, nil
}

// HealthCheck checks if the API is healthy
func (c *Client) HealthCheck(ctx context.Context) error {
	var response struct {
		Status string `json:"status"`
	}
	if err := c.get(ctx, "/health", nil, &response); err != nil {
		return err
	}
	if response.Status != "ok" {
		return fmt.Errorf("unhealthy status: %s", response.Status)
	}
	return nil
}

// errorResponse is the error body written by the server
type errorResponse struct {
	Error struct {
		Code    apperrors.ErrCode `json:"code"`
		Message string            `json:"message"`
	} `json:"error"`
}

func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Code != "" {
			return &apperrors.AppError{Code: errResp.Error.Code, Message: errResp.Error.Message}
		}
		return fmt.Errorf("API error: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
