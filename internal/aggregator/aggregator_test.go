package aggregator

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurihiro0119/github-portfolio/internal/domain"
	"github.com/kurihiro0119/github-portfolio/internal/locale"
)

func repoWith(name, language string, stars, forks int) *domain.Repository {
	return &domain.Repository{
		Name:      name,
		Language:  language,
		Stars:     stars,
		Forks:     forks,
		UpdatedAt: time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC),
	}
}

func TestSyntheticSize(t *testing.T) {
	tests := []struct {
		name  string
		stars int
		forks int
		want  int
	}{
		{name: "lower clamp", stars: 0, forks: 0, want: 4},
		{name: "upper clamp", stars: 1000, forks: 0, want: 2048},
		{name: "in range", stars: 2, forks: 1, want: 115},
		{name: "forks only", stars: 0, forks: 1, want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SyntheticSize(repoWith("r", "", tt.stars, tt.forks)))
		})
	}
}

func TestBuildListing(t *testing.T) {
	p := NewProjector(locale.English, time.UTC, "alice")

	repos := make([]*domain.Repository, 0, 10)
	for i := 0; i < 10; i++ {
		repos = append(repos, repoWith(string(rune('a'+i)), "Go", 0, 0))
	}

	lines := strings.Split(p.BuildListing(repos, 0), "\n")
	require.Len(t, lines, DefaultListingLimit+1)
	assert.Equal(t, "total 10", lines[0])
	assert.Equal(t, "-rw-r--r--  1 alice devs    4 Mar  05 09:07  a", lines[1])
	assert.True(t, strings.HasSuffix(lines[8], "  h"))
}

func TestBuildListingLimitAndLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	p := NewProjector(locale.French, paris, "louis")

	repos := []*domain.Repository{repoWith("site", "", 1, 0), repoWith("other", "", 0, 0)}
	out := p.BuildListing(repos, 1)

	assert.Equal(t, "total 2\n-rw-r--r--  1 louis devs   42 mars 05 10:07  site", out)
}

func TestBuildListingEmpty(t *testing.T) {
	p := NewProjector(locale.English, nil, "")
	assert.Equal(t, "total 0", p.BuildListing(nil, 8))
}

func TestLanguageHistogram(t *testing.T) {
	p := NewProjector(locale.English, time.UTC, "alice")

	t.Run("no languages", func(t *testing.T) {
		repos := []*domain.Repository{repoWith("a", "", 0, 0)}
		assert.Equal(t, locale.English.Messages.NoLanguages, p.LanguageHistogram(repos))
	})

	t.Run("ties keep first seen order", func(t *testing.T) {
		repos := []*domain.Repository{
			repoWith("a", "Go", 0, 0),
			repoWith("b", "Python", 0, 0),
			repoWith("c", "Python", 0, 0),
			repoWith("d", "Shell", 0, 0),
			repoWith("e", "Go", 0, 0),
			repoWith("f", "", 0, 0),
		}
		assert.Equal(t, "Go: 2 | Python: 2 | Shell: 1", p.LanguageHistogram(repos))
	})

	t.Run("top five only", func(t *testing.T) {
		var repos []*domain.Repository
		for _, lang := range []string{"A", "B", "C", "D", "E", "F", "F"} {
			repos = append(repos, repoWith(lang, lang, 0, 0))
		}
		assert.Equal(t, "F: 2 | A: 1 | B: 1 | C: 1 | D: 1", p.LanguageHistogram(repos))
	})
}

func TestSummary(t *testing.T) {
	p := NewProjector(locale.English, time.UTC, "alice")
	profile := &domain.UserProfile{Login: "alice", PublicRepos: 12, Followers: 3}
	repos := []*domain.Repository{repoWith("a", "Go", 0, 0)}

	assert.Equal(t, "Public repos: 12 | Followers: 3 | Languages: Go: 1", p.Summary(profile, repos))

	stats := p.Project(profile, repos, 8)
	assert.Equal(t, "Go: 1", stats.Languages)
	assert.Equal(t, p.Summary(profile, repos), stats.Summary)
	assert.True(t, strings.HasPrefix(stats.Listing, "total 1\n"))
}
