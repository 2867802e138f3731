// Package model contains abstract data models.
package model

import (
	"strings"
	"time"
)

type Commit struct {
	ID             string `json:"commit"`
	Author         string
	AuthorEmail    string
	AuthorDate     time.Time
	Committer      string
	CommitterEmail string
	CommitterDate  time.Time
	Subject        string

	// Body is everything after the subject, with comment lines removed.
	Body        string
	Raw         string    `json:"raw,omitempty"`
	Trailers    []Trailer `json:"trailers,omitempty"`
	CherryPicks []string  `json:"cherry_picks,omitempty"`
}

// Trailer is a "Key: value" line from the end of a commit body.
type Trailer struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (c *Commit) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// Title returns a one-line description of the commit.
func (c *Commit) Title() string {
	if c.ID == "" {
		return c.Subject
	}
	return c.ShortID() + " " + c.Subject
}

// TrailerValues returns the values of all trailers named key. Keys are
// compared case-insensitively, as git does.
func (c *Commit) TrailerValues(key string) []string {
	key = strings.TrimSuffix(strings.TrimSpace(key), ":")
	var vals []string
	for _, t := range c.Trailers {
		if strings.EqualFold(t.Key, key) {
			vals = append(vals, t.Value)
		}
	}
	return vals
}
