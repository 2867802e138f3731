package vcs

import (
	"context"
	"strings"
	"time"

	"github.com/jeffrom/signoff/model"
)

type Mock struct {
	t       time.Time
	tags    []string
	commits []*model.Commit
	queries []string
}

func NewMock() *Mock {
	return &Mock{
		t: time.Now(),
	}
}

func (m *Mock) SetTags(tags ...string) *Mock {
	m.tags = tags
	return m
}

func (m *Mock) SetCommits(commits ...*model.Commit) *Mock {
	finalCommits := make([]*model.Commit, len(commits))
	for i, commit := range commits {
		c := *commit
		if c.CommitterDate.IsZero() {
			c.CommitterDate = m.t
			m.t = m.t.Add(-time.Minute)
		}
		finalCommits[i] = &c
	}
	m.commits = finalCommits
	return m
}

// LastQuery returns the query passed to the most recent ReadCommits call.
func (m *Mock) LastQuery() string {
	if len(m.queries) == 0 {
		return ""
	}
	return m.queries[len(m.queries)-1]
}

func (m *Mock) ReadTags(ctx context.Context, query string) ([]string, error) {
	var tags []string
	for _, t := range m.tags {
		if globMatches(t, query) {
			tags = append(tags, t)
		}
	}
	return tags, nil
}

func (m *Mock) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	m.queries = append(m.queries, query)
	return m.commits, nil
}

func globMatches(s string, glob string) bool {
	parts := strings.Split(glob, "*")
	remaining := s
	for {
		if len(parts) == 0 {
			break
		}
		part := parts[0]
		parts = parts[1:]

		if !strings.HasPrefix(remaining, part) {
			return false
		}
		remaining = strings.TrimPrefix(remaining, part)
	}
	if len(glob) > 0 && glob[len(glob)-1] == '*' {
		return true
	}
	return remaining == ""
}
