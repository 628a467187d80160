package domain

import "time"

// Repository represents a public GitHub repository as listed for a user
type Repository struct {
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"` // empty means absent
	Language    string    `json:"language,omitempty"`    // empty means absent
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	Archived    bool      `json:"archived"`
	UpdatedAt   time.Time `json:"updated_at"`
	HTMLURL     string    `json:"html_url"`
	CloneURL    string    `json:"clone_url"`
}

// UserProfile represents the public profile counters of a GitHub user
type UserProfile struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

// Portfolio is the result of one load cycle.
// Repos is sorted by recency and must not be mutated once published.
type Portfolio struct {
	User     string
	Profile  *UserProfile
	Repos    []*Repository
	LoadedAt time.Time
}

// FindRepository returns the repository with the given name, if present
func (p *Portfolio) FindRepository(name string) (*Repository, bool) {
	for _, repo := range p.Repos {
		if repo.Name == name {
			return repo, true
		}
	}
	return nil, false
}
