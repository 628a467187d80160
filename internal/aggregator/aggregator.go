// Package aggregator projects the repository set into terminal-style text:
// a fake directory listing and a language histogram.
package aggregator

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
	"github.com/kurihiro0119/github-portfolio/internal/locale"
)

const (
	// DefaultListingLimit is the number of repositories shown by BuildListing
	DefaultListingLimit = 8
	// HistogramSize is the number of languages kept by LanguageHistogram
	HistogramSize = 5

	minSize = 4
	maxSize = 2048

	histogramSeparator = " | "
)

// Projector formats aggregate statistics of a repository set
type Projector struct {
	Locale   *locale.Locale
	Location *time.Location
	Owner    string
	Group    string
}

// NewProjector creates a projector. A nil location means UTC.
func NewProjector(loc *locale.Locale, location *time.Location, owner string) *Projector {
	if location == nil {
		location = time.UTC
	}
	if owner == "" {
		owner = "user"
	}
	return &Projector{
		Locale:   loc,
		Location: location,
		Owner:    owner,
		Group:    "devs",
	}
}

// Stats is the terminal text derived from one load cycle
type Stats struct {
	Listing   string `json:"listing"`
	Languages string `json:"languages"`
	Summary   string `json:"summary"`
}

// Project computes every terminal string at once
func (p *Projector) Project(profile *domain.UserProfile, repos []*domain.Repository, limit int) *Stats {
	return &Stats{
		Listing:   p.BuildListing(repos, limit),
		Languages: p.LanguageHistogram(repos),
		Summary:   p.Summary(profile, repos),
	}
}

// BuildListing renders the first limit repositories as an "ls -la" listing.
// The header counts every repository, not only the listed ones.
func (p *Projector) BuildListing(repos []*domain.Repository, limit int) string {
	if limit <= 0 {
		limit = DefaultListingLimit
	}

	lines := make([]string, 0, min(limit, len(repos))+1)
	lines = append(lines, fmt.Sprintf("total %d", len(repos)))

	for i, repo := range repos {
		if i >= limit {
			break
		}
		updated := repo.UpdatedAt.In(p.Location)
		lines = append(lines, fmt.Sprintf("-rw-r--r--  1 %s %s %4d %-4s %02d %02d:%02d  %s",
			p.Owner,
			p.Group,
			SyntheticSize(repo),
			p.Locale.ShortMonth(updated),
			updated.Day(),
			updated.Hour(),
			updated.Minute(),
			repo.Name,
		))
	}
	return strings.Join(lines, "\n")
}

// SyntheticSize derives a fake file size from a repository's popularity
func SyntheticSize(repo *domain.Repository) int {
	size := repo.Stars*42 + repo.Forks*31
	if size < minSize {
		return minSize
	}
	if size > maxSize {
		return maxSize
	}
	return size
}

// LanguageCount is one histogram bucket
type LanguageCount struct {
	Language string
	Count    int
}

// CountLanguages counts repositories per language, most frequent first.
// Languages with equal counts keep the order in which they first appear.
func CountLanguages(repos []*domain.Repository) []LanguageCount {
	index := make(map[string]int)
	var counts []LanguageCount
	for _, repo := range repos {
		if repo.Language == "" {
			continue
		}
		if i, ok := index[repo.Language]; ok {
			counts[i].Count++
			continue
		}
		index[repo.Language] = len(counts)
		counts = append(counts, LanguageCount{Language: repo.Language, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// LanguageHistogram renders the top languages as "Lang: N" pairs
func (p *Projector) LanguageHistogram(repos []*domain.Repository) string {
	counts := CountLanguages(repos)
	if len(counts) == 0 {
		return p.Locale.Messages.NoLanguages
	}
	if len(counts) > HistogramSize {
		counts = counts[:HistogramSize]
	}

	parts := make([]string, len(counts))
	for i, c := range counts {
		parts[i] = fmt.Sprintf("%s: %d", c.Language, c.Count)
	}
	return strings.Join(parts, histogramSeparator)
}

// Summary renders the profile stats line shown under the listing
func (p *Projector) Summary(profile *domain.UserProfile, repos []*domain.Repository) string {
	msg := p.Locale.Messages
	var publicRepos, followers int
	if profile != nil {
		publicRepos = profile.PublicRepos
		followers = profile.Followers
	}
	return fmt.Sprintf("%s: %d | %s: %d | %s: %s",
		msg.PublicRepos, publicRepos,
		msg.Followers, followers,
		msg.Languages, p.LanguageHistogram(repos),
	)
}
