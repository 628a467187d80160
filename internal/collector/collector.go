package collector

import (
	"context"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
)

// Fetcher defines the interface for reading a user's public GitHub data.
// Every error it returns carries an *errors.FetchError.
type Fetcher interface {
	// FetchProfile retrieves the public profile counters of a user
	FetchProfile(ctx context.Context, user string) (*domain.UserProfile, error)

	// FetchRepositories retrieves up to 100 public repositories, most recently updated first
	FetchRepositories(ctx context.Context, user string) ([]*domain.Repository, error)
}
