// Package portfolio runs load cycles against GitHub and holds the current snapshot.
package portfolio

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/kurihiro0119/github-portfolio/internal/collector"
	"github.com/kurihiro0119/github-portfolio/internal/domain"
	apperrors "github.com/kurihiro0119/github-portfolio/internal/errors"
	"github.com/kurihiro0119/github-portfolio/internal/filter"
)

// Source produces a complete portfolio snapshot for a user
type Source interface {
	Load(ctx context.Context, user string) (*domain.Portfolio, error)
}

// Loader performs one load cycle: profile and repositories fetched concurrently,
// joined, then sorted by recency.
type Loader struct {
	fetcher collector.Fetcher
	timeout time.Duration
	logger  logrus.FieldLogger
	now     func() time.Time
}

// NewLoader creates a new Loader. A non-positive timeout leaves the join unbounded.
func NewLoader(fetcher collector.Fetcher, timeout time.Duration, logger logrus.FieldLogger) *Loader {
	return &Loader{
		fetcher: fetcher,
		timeout: timeout,
		logger:  logger,
		now:     time.Now,
	}
}

// Load fetches the profile and repositories of user.
// Either fetch failing aborts the whole cycle; no partial snapshot is returned.
func (l *Loader) Load(ctx context.Context, user string) (*domain.Portfolio, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, apperrors.NewBadRequestError("GitHub user is required")
	}

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	var profile *domain.UserProfile
	var repos []*domain.Repository

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		profile, err = l.fetcher.FetchProfile(egCtx, user)
		return err
	})

	eg.Go(func() error {
		var err error
		repos, err = l.fetcher.FetchRepositories(egCtx, user)
		return err
	})

	if err := eg.Wait(); err != nil {
		entry := l.logger.WithError(err).WithField("user", user)
		if fetchErr, ok := apperrors.AsFetchError(err); ok {
			entry = entry.WithFields(logrus.Fields{
				"op":     fetchErr.Op,
				"cause":  fetchErr.Cause,
				"status": fetchErr.Status,
			})
		}
		entry.Error("load cycle failed")
		return nil, err
	}

	p := &domain.Portfolio{
		User:     user,
		Profile:  profile,
		Repos:    filter.SortByRecency(repos),
		LoadedAt: l.now(),
	}
	l.logger.WithFields(logrus.Fields{
		"user":  user,
		"repos": len(p.Repos),
	}).Info("load cycle complete")
	return p, nil
}
