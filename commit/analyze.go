package commit

import (
	"context"
	"errors"

	"github.com/blang/semver/v4"

	"github.com/jeffrom/signoff/config"
	"github.com/jeffrom/signoff/model"
	"github.com/jeffrom/signoff/vcs"
)

const tagQuery = "v*"

// Analyzer reads commits from a vcs.
type Analyzer struct {
	cfg config.Config
	vcs vcs.Interface
}

func NewAnalyzer(cfg config.Config, vcs vcs.Interface) *Analyzer {
	return &Analyzer{
		cfg: cfg,
		vcs: vcs,
	}
}

// LatestRelease returns the latest release version and its tag.
func (a *Analyzer) LatestRelease(ctx context.Context) (semver.Version, string, error) {
	tags, err := a.vcs.ReadTags(ctx, tagQuery)
	if err != nil {
		return semver.Version{}, "", err
	}
	return semverLatest(tags)
}

// ReadCommitsSince reads commits after since up to HEAD. If since is empty,
// the latest release tag is used, and if there are no release tags all
// commits reachable from HEAD are read.
func (a *Analyzer) ReadCommitsSince(ctx context.Context, since string) ([]*model.Commit, error) {
	query := "HEAD"
	if since == "" {
		_, tag, err := a.LatestRelease(ctx)
		if err != nil && !errors.Is(err, ErrNoTags) {
			return nil, err
		}
		if err == nil {
			a.cfg.Debugf("Latest release tag is %s", tag)
			since = tag
		} else {
			a.cfg.Debugf("No release tags found, reading all commits")
		}
	}
	if since != "" {
		query = since + "..HEAD"
	}

	commits, err := a.vcs.ReadCommits(ctx, query)
	if err != nil {
		return nil, err
	}
	a.cfg.Debugf("read %d commit(s) from %s", len(commits), query)
	return commits, nil
}
