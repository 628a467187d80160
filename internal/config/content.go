package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Content is the editable copy of the portfolio page, corresponding to portfolio.yaml.
type Content struct {
	Name           string   `koanf:"name"`
	Title          string   `koanf:"title"`
	About          string   `koanf:"about"` // markdown
	Paragraphs     []string `koanf:"paragraphs"`
	Commands       []string `koanf:"commands"`
	ContactEmail   string   `koanf:"contact_email"`
	ContactSubject string   `koanf:"contact_subject"`
}

// DefaultContent returns the content used when no file is present.
func DefaultContent() *Content {
	return &Content{
		Name:  "Developer",
		Title: "Software Engineer",
		About: "I build **backend services** and developer tooling.",
		Paragraphs: []string{
			"Hi, I'm a developer who enjoys building reliable software.",
			"I mostly work on services, infrastructure and command-line tools.",
			"Below is a live view of my public GitHub repositories.",
		},
		Commands: []string{
			"git status",
			"docker ps",
			"kubectl get pods",
			"npm run build",
			"ssh root@server.dev",
			"gh repo list",
			"top -b -n1 | head -5",
		},
		ContactSubject: "Contact from the portfolio",
	}
}

// LoadContent reads the content file at path, if it exists, then overlays
// PORTFOLIO_* environment variables (PORTFOLIO_CONTACT_EMAIL -> contact_email).
func LoadContent(path string) (*Content, error) {
	k := koanf.New(".")
	content := DefaultContent()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading content %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing content %s: %w", path, err)
	}

	if err := k.Load(env.Provider("PORTFOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "PORTFOLIO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", content); err != nil {
		return nil, fmt.Errorf("unmarshalling content: %w", err)
	}

	if len(content.Commands) == 0 {
		return nil, &ConfigError{Field: "commands", Message: "at least one terminal command is required"}
	}
	return content, nil
}
