package collector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v55/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
)

const (
	// maxRepositories is the single page size requested from the listing endpoint
	maxRepositories = 100

	anonymousRateLimit     = 60
	authenticatedRateLimit = 5000
)

// Options configures the GitHub collector
type Options struct {
	Token      string        // optional personal access token
	BaseURL    string        // API root, e.g. https://api.github.com/
	HTTPClient *http.Client  // optional base client
	MinDelay   time.Duration // minimum delay between two calls
}

// githubCollector implements Fetcher using the GitHub REST API
type githubCollector struct {
	client      *github.Client
	rateLimiter RateLimiter
	logger      logrus.FieldLogger
}

// NewGitHubCollector creates a new GitHub collector
func NewGitHubCollector(opts Options, logger logrus.FieldLogger) (Fetcher, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	limit := anonymousRateLimit
	if opts.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: opts.Token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
		limit = authenticatedRateLimit
	}

	client := github.NewClient(httpClient)
	if opts.BaseURL != "" {
		base := opts.BaseURL
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		u, err := url.Parse(base)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", opts.BaseURL, err)
		}
		client.BaseURL = u
	}

	return &githubCollector{
		client:      client,
		rateLimiter: NewRateLimiter(limit, opts.MinDelay, logger),
		logger:      logger,
	}, nil
}

// FetchProfile retrieves the public profile counters of a user
func (c *githubCollector) FetchProfile(ctx context.Context, user string) (*domain.UserProfile, error) {
	const op = "fetch profile"
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, classifyError(op, nil, err)
	}

	u, resp, err := c.client.Users.Get(ctx, user)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, classifyError(op, resp, err)
	}

	return &domain.UserProfile{
		Login:       u.GetLogin(),
		PublicRepos: u.GetPublicRepos(),
		Followers:   u.GetFollowers(),
	}, nil
}

// FetchRepositories retrieves the first page of a user's repositories, sorted by last update
func (c *githubCollector) FetchRepositories(ctx context.Context, user string) ([]*domain.Repository, error) {
	const op = "fetch repositories"
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, classifyError(op, nil, err)
	}

	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: maxRepositories},
	}

	repos, resp, err := c.client.Repositories.List(ctx, user, opts)
	c.updateRateLimitFromResponse(resp)
	if err != nil {
		return nil, classifyError(op, resp, err)
	}

	result := make([]*domain.Repository, 0, len(repos))
	for _, repo := range repos {
		result = append(result, toDomainRepository(repo))
	}

	c.logger.WithFields(logrus.Fields{
		"user":  user,
		"count": len(result),
	}).Debug("fetched repositories")
	return result, nil
}

func toDomainRepository(repo *github.Repository) *domain.Repository {
	return &domain.Repository{
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
		Language:    repo.GetLanguage(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Archived:    repo.GetArchived(),
		UpdatedAt:   repo.GetUpdatedAt().Time,
		HTMLURL:     repo.GetHTMLURL(),
		CloneURL:    repo.GetCloneURL(),
	}
}

// classifyError maps a go-github failure onto a FetchError.
// go-github returns the response alongside decode errors, so a 2xx status with
// an error means the body was not valid JSON.
func classifyError(op string, resp *github.Response, err error) *apperrors.FetchError {
	fetchErr := &apperrors.FetchError{Op: op, Err: err}

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		fetchErr.Cause = apperrors.CauseTimeout
	case resp != nil && (resp.StatusCode < 200 || resp.StatusCode > 299):
		fetchErr.Cause = apperrors.CauseStatus
		fetchErr.Status = resp.StatusCode
	case resp != nil:
		fetchErr.Cause = apperrors.CauseParse
	default:
		fetchErr.Cause = apperrors.CauseNetwork
	}
	return fetchErr
}

// updateRateLimitFromResponse updates the rate limiter from API response
func (c *githubCollector) updateRateLimitFromResponse(resp *github.Response) {
	if resp != nil && resp.Rate.Limit > 0 {
		c.rateLimiter.UpdateLimit(resp.Rate.Remaining, resp.Rate.Reset.Time)
	}
}
