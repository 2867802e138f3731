package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jeffrom/signoff/commit"
	"github.com/jeffrom/signoff/model"
)

type CheckFailure struct {
	Failures []FailureEntry
}

type FailureEntry struct {
	commitID    string
	commitTitle string
	policy      string
	err         error
}

func (cf CheckFailure) Error() string {
	return fmt.Sprintf("%d check(s) failed", len(cf.Failures))
}

func (cf CheckFailure) Is(other error) bool {
	_, ok := other.(CheckFailure)
	return ok
}

func (cf CheckFailure) WriteFailure(w io.Writer) error {
	if len(cf.Failures) == 0 {
		return nil
	}
	bw := bufio.NewWriter(w)

	var byCommit [][]FailureEntry
	for _, failure := range cf.Failures {
		foundPrev := false
		for i, prev := range byCommit {
			if sameCommit(prev[0], failure) {
				byCommit[i] = append(prev, failure)
				foundPrev = true
				break
			}
		}
		if !foundPrev {
			byCommit = append(byCommit, []FailureEntry{failure})
		}
	}

	for _, failures := range byCommit {
		title := failures[0].commitTitle
		if title == "" {
			title = "(empty message)"
		}
		bw.WriteString(title)
		bw.WriteString("\n")
		for _, failure := range failures {
			bw.WriteString("  ")
			if failure.policy != "" {
				bw.WriteString(failure.policy)
				bw.WriteString(": ")
			}
			bw.WriteString(failure.err.Error())
			bw.WriteString("\n")
		}
	}

	return bw.Flush()
}

func sameCommit(a, b FailureEntry) bool {
	if a.commitID != "" || b.commitID != "" {
		return a.commitID == b.commitID
	}
	return a.commitTitle == b.commitTitle
}

// checkCommit runs every rule against c.
func (r *Runner) checkCommit(c *model.Commit) []FailureEntry {
	var failures []FailureEntry
	for _, rule := range r.rules {
		ok, msg := rule.Check(c)
		if ok {
			r.cfg.Debugf("%s: %s: ok", c.Title(), rule.Name)
			continue
		}
		failures = append(failures, FailureEntry{
			commitID:    c.ID,
			commitTitle: c.Title(),
			policy:      rule.Name,
			err:         errors.New(msg),
		})
	}
	return failures
}

func (r *Runner) checkAll(commits []*model.Commit) error {
	var failures []FailureEntry
	for _, c := range commits {
		failures = append(failures, r.checkCommit(c)...)
	}
	if len(failures) > 0 {
		return CheckFailure{Failures: failures}
	}
	return nil
}

// CheckCommits checks raw commit messages.
func (r *Runner) CheckCommits(ctx context.Context, raws []string) ([]*model.Commit, error) {
	commits := make([]*model.Commit, len(raws))
	for i, raw := range raws {
		commits[i] = commit.Parse(raw, r.parseOptions())
	}
	if err := r.checkAll(commits); err != nil {
		return nil, err
	}
	return commits, nil
}

// CheckReadCommit reads a single commit message from rdr and checks it.
func (r *Runner) CheckReadCommit(ctx context.Context, rdr io.Reader) (*model.Commit, error) {
	raw, err := io.ReadAll(rdr)
	if err != nil {
		return nil, err
	}
	commits, err := r.CheckCommits(ctx, []string{string(raw)})
	if err != nil {
		return nil, err
	}
	return commits[0], nil
}

// CheckCommitsFromGit checks all commits since the given ref, or the last
// release if since is empty.
func (r *Runner) CheckCommitsFromGit(ctx context.Context, since string) ([]*model.Commit, error) {
	commits, err := r.analyzer.ReadCommitsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	if err := r.checkAll(commits); err != nil {
		return nil, err
	}
	return commits, nil
}
