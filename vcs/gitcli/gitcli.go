// Package gitcli implements vcs.Interface using the git commandline tool.
package gitcli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jeffrom/signoff/commit"
	"github.com/jeffrom/signoff/config"
	"github.com/jeffrom/signoff/model"
)

// Git implements vcs.Interface using the git commandline tool.
type Git struct {
	cfg config.Config
	wd  string
}

func New(cfg config.Config, wd string) *Git {
	return &Git{
		cfg: cfg,
		wd:  wd,
	}
}

const (
	EXPECTED_LOG_PARTS = 8
	logFormat          = "--pretty=tformat:_START_%H_SEP_%aN_SEP_%ae_SEP_%ai_SEP_%cN_SEP_%ce_SEP_%ci_SEP_%B_END_"
)

func (g *Git) ReadCommits(ctx context.Context, query string) ([]*model.Commit, error) {
	args := []string{"log", logFormat, query, "--"}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	return parseLog(b, commit.ParseOptions{CommentChar: g.cfg.CommentChar})
}

func parseLog(b []byte, opts commit.ParseOptions) ([]*model.Commit, error) {
	var commits []*model.Commit
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		s := scanner.Text()
		if s == "" {
			continue
		}
		parts := strings.SplitN(s, "_SEP_", EXPECTED_LOG_PARTS)
		if len(parts) != EXPECTED_LOG_PARTS {
			return nil, fmt.Errorf("gitcli: expected %d parts from git log, got %d", EXPECTED_LOG_PARTS, len(parts))
		}

		commitID := parts[0]
		if !strings.HasPrefix(commitID, "_START_") {
			return nil, fmt.Errorf("gitcli: unexpected git log line: %q", s)
		}
		commitID = strings.TrimPrefix(commitID, "_START_")

		// the raw message can be multiple lines.
		var raw string
		rawpart := parts[len(parts)-1]
		if strings.HasSuffix(rawpart, "_END_") {
			raw = strings.TrimSuffix(rawpart, "_END_")
		} else {
			var rawb strings.Builder
			rawb.WriteString(rawpart)
			rawb.WriteString("\n")
			for scanner.Scan() {
				line := scanner.Text()
				if strings.HasSuffix(line, "_END_") {
					rawb.WriteString(strings.TrimSuffix(line, "_END_"))
					break
				}
				rawb.WriteString(line)
				rawb.WriteString("\n")
			}
			raw = rawb.String()
		}

		authorDate, err := ParseGitISO8601(parts[3])
		if err != nil {
			return nil, err
		}
		committerDate, err := ParseGitISO8601(parts[6])
		if err != nil {
			return nil, err
		}

		c := commit.Parse(raw, opts)
		c.ID = commitID
		c.Author = parts[1]
		c.AuthorEmail = parts[2]
		c.AuthorDate = authorDate
		c.Committer = parts[4]
		c.CommitterEmail = parts[5]
		c.CommitterDate = committerDate
		commits = append(commits, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commits, nil
}

func (g *Git) ReadTags(ctx context.Context, query string) ([]string, error) {
	args := []string{
		"tag",
	}
	if query != "" {
		args = append(args, "-l", query)
	}
	b, err := g.call(ctx, args)
	if err != nil {
		return nil, err
	}
	var tags []string
	scanner := bufio.NewScanner(bytes.NewBuffer(b))
	for scanner.Scan() {
		s := scanner.Text()
		tags = append(tags, s)
	}
	return tags, nil
}
