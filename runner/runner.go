// Package runner manages command-line execution
package runner

import (
	"github.com/jeffrom/signoff/commit"
	"github.com/jeffrom/signoff/config"
	"github.com/jeffrom/signoff/vcs"
)

type Runner struct {
	cfg      config.Config
	vcs      vcs.Interface
	analyzer *commit.Analyzer
	rules    []*commit.Rule
}

func New(cfg config.Config, vcs vcs.Interface) (*Runner, error) {
	rules, err := commit.NewRules(cfg.GetPolicies())
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:      cfg,
		vcs:      vcs,
		rules:    rules,
		analyzer: commit.NewAnalyzer(cfg, vcs),
	}, nil
}

func (r *Runner) parseOptions() commit.ParseOptions {
	return commit.ParseOptions{CommentChar: r.cfg.CommentChar}
}
