// Package vcs abstracts version control systems. Currently just git.
package vcs

import (
	"context"

	"github.com/jeffrom/signoff/model"
)

type Interface interface {
	// ReadCommits returns the commits matching query, newest first.
	ReadCommits(ctx context.Context, query string) ([]*model.Commit, error)
	ReadTags(ctx context.Context, query string) ([]string, error)
}
