// Package contact composes the mailto link opened by the contact form.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/kurihiro0119/github-portfolio/internal/errors"
)

// Message holds the contact form fields
type Message struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

// Composer builds mailto URIs addressed to a fixed recipient
type Composer struct {
	To      string
	Subject string
}

// BuildMailto returns the mailto URI for msg. Fields are trimmed but not validated.
func (c *Composer) BuildMailto(msg Message) (string, error) {
	to := strings.TrimSpace(c.To)
	if to == "" {
		return "", errors.NewBadRequestError("no contact address configured")
	}

	body := fmt.Sprintf("From: %s (%s)\n\n%s",
		strings.TrimSpace(msg.Name),
		strings.TrimSpace(msg.Email),
		strings.TrimSpace(msg.Message),
	)
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", to, escape(c.Subject), escape(body)), nil
}

// escape percent-encodes s for a mailto header value. Spaces become %20 since
// mail clients do not decode "+".
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
