// Package filter derives the visible repository subset from a search term and a filter mode.
package filter

import (
	"sort"
	"strings"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
)

// RecentLimit is the number of repositories kept by the recent filter
const RecentLimit = 12

// VisibleSet returns the repositories shown for state.
//
// The text filter always runs before the named filter: starred sorting must
// only see repositories that matched the search. all is expected to be
// recency sorted (see SortByRecency); the recent mode relies on it.
// The input slice is never modified.
func VisibleSet(all []*domain.Repository, state domain.FilterState) []*domain.Repository {
	matched := Search(all, state.SearchTerm)

	switch state.Mode {
	case domain.FilterStarred:
		starred := make([]*domain.Repository, 0, len(matched))
		for _, repo := range matched {
			if repo.Stars > 0 {
				starred = append(starred, repo)
			}
		}
		sort.SliceStable(starred, func(i, j int) bool {
			return starred[i].Stars > starred[j].Stars
		})
		return starred
	case domain.FilterArchived:
		archived := make([]*domain.Repository, 0, len(matched))
		for _, repo := range matched {
			if repo.Archived {
				archived = append(archived, repo)
			}
		}
		return archived
	case domain.FilterRecent:
		if len(matched) > RecentLimit {
			return matched[:RecentLimit]
		}
		return matched
	default:
		return matched
	}
}

// Search keeps repositories whose name, description or language contains term,
// case-insensitively. An empty term matches everything.
func Search(all []*domain.Repository, term string) []*domain.Repository {
	term = strings.ToLower(strings.TrimSpace(term))

	matched := make([]*domain.Repository, 0, len(all))
	for _, repo := range all {
		if matches(repo, term) {
			matched = append(matched, repo)
		}
	}
	return matched
}

func matches(repo *domain.Repository, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(repo.Name), term) ||
		strings.Contains(strings.ToLower(repo.Description), term) ||
		strings.Contains(strings.ToLower(repo.Language), term)
}

// SortByRecency returns a copy of repos ordered by last update, newest first.
// Repositories updated at the same instant keep their relative order.
func SortByRecency(repos []*domain.Repository) []*domain.Repository {
	sorted := make([]*domain.Repository, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	return sorted
}
