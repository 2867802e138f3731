package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/ghodss/yaml"
	"github.com/imdario/mergo"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/jeffrom/signoff/config"
	"github.com/jeffrom/signoff/runner"
	"github.com/jeffrom/signoff/vcs/gitcli"
)

var (
	// these are overridden by go build -X
	ShareDir string
	Version  string
)

const configFileName = "signoff.yaml"

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(rawArgs []string) error {
	return runWithTermIO(rawArgs, config.DefaultTermIO)
}

func runWithTermIO(rawArgs []string, termio config.TerminalIO) error {
	cfg := config.NewWithTerminalIO(nil, &termio)

	var help bool
	var version bool
	var cfgFile string
	var policies []string
	var commentChar string
	var adhoc config.Policy
	var checkCommits []string
	var checkCommitsFromGit bool
	var editFile string
	var readStats bool
	var debugConfig string
	var printConfig bool
	var printPolicies bool
	flags := pflag.NewFlagSet("signoff", pflag.ContinueOnError)
	flags.SetOutput(termio.Stderr)
	flags.BoolVarP(&help, "help", "h", false, "show help")
	flags.BoolVarP(&version, "version", "V", false, "print version and exit")
	flags.BoolVar(&cfg.InCI, "ci", false, "Run in CI mode")
	flags.StringArrayVar(&policies, "policy", cfg.Policies, "check commits against policies by `name`")
	flags.StringVarP(&adhoc.When, "when", "w", "", "require (always) or forbid (never) the sign-off `value`")
	flags.StringVar(&adhoc.Value, "value", config.DefaultSignOffValue, "sign-off marker `text` for --when")
	flags.StringVar(&adhoc.Match, "match", "", "how --value is matched: contains or trailer")
	flags.BoolVar(&adhoc.IgnoreCase, "ignore-case", false, "match --value case-insensitively")
	flags.StringVar(&commentChar, "comment-char", cfg.CommentChar, "drop message lines starting with `char`")
	flags.StringArrayVar(&checkCommits, "check-commit", nil, "only validate provided commit `message` (- reads stdin)")
	flags.StringVarP(&editFile, "edit", "e", "", "validate the commit message in `file` (for commit-msg hooks)")
	flags.BoolVarP(&checkCommitsFromGit, "check", "C", false, "validate commits since last release")
	flags.StringVar(&cfg.Since, "since", "", "validate commits after `ref` instead of the last release")
	flags.BoolVarP(&readStats, "stats", "S", false, "print sign-off stats")
	flags.BoolVarP(&cfg.Debug, "verbose", "v", false, "print additional debugging info")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "print as little as necessary")
	flags.StringVarP(&cfgFile, "config", "c", "", "specify config `file`")
	flags.BoolVar(&printConfig, "print-config", false, "Print default configuration and exit")
	flags.BoolVar(&printPolicies, "print-policies", false, "Print all policies and exit")
	flags.StringVar(&debugConfig, "debug-config", "", "Write configuration to `file` and exit")

	if err := flags.Parse(rawArgs); err != nil {
		return err
	}

	if help {
		usage(cfg, flags)
		return nil
	}
	if version {
		cfg.Printf("%s", Version)
		return nil
	}
	if printConfig {
		b, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		cfg.Printf("%s", string(b))
		return nil
	}
	if !cfg.InCI {
		if env := os.Getenv("CI"); env == "true" || env == "1" || env == "yes" {
			cfg.InCI = true
		}
	}

	fileCfg, err := readConfigYAML(cfgFile)
	if err != nil {
		return err
	}
	if fileCfg != nil {
		if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
			return err
		}
	}
	if flags.Lookup("policy").Changed {
		cfg.Policies = policies
	}
	if flags.Lookup("comment-char").Changed {
		cfg.CommentChar = commentChar
	}
	if flags.Lookup("when").Changed {
		adhoc.Name = "flags"
		cfg.CustomPolicies = append(cfg.CustomPolicies, adhoc)
		if flags.Lookup("policy").Changed {
			cfg.Policies = append(cfg.Policies, adhoc.Name)
		} else {
			cfg.Policies = []string{adhoc.Name}
		}
	}
	if cfg.Debug {
		b, err := json.MarshalIndent(cfg, "", "  ")
		die(err)
		cfg.Debugf("config: %s", string(b))
	}

	if debugConfig != "" {
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		if debugConfig == "-" {
			cfg.Printf("%s", b)
		} else {
			if err := ioutil.WriteFile(debugConfig, b, 0644); err != nil {
				return err
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if debugConfig != "" {
		return nil
	}
	if printPolicies {
		for _, pol := range cfg.AllPolicies() {
			if err := pol.TextSummary(cfg.Term.Stdout); err != nil {
				return err
			}
			cfg.Printf("")
		}
		return nil
	}
	// done setting up config

	git := gitcli.New(cfg, "")
	rnr, err := runner.New(cfg, git)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if readStats {
		stats, err := rnr.Stats(ctx, cfg.Since)
		if err != nil {
			return err
		}
		return stats.TextSummary(cfg.Term.Stdout)
	}

	hasPipe := stdinIsPipe(termio)
	switch {
	case editFile != "":
		f, ferr := os.Open(editFile)
		if ferr != nil {
			return ferr
		}
		defer f.Close()
		_, err = rnr.CheckReadCommit(ctx, f)
	case flags.Lookup("check-commit").Changed:
		if len(checkCommits) == 1 && checkCommits[0] == "-" {
			if !hasPipe {
				return errors.New("--check-commit -: stdin is not a pipe")
			}
			_, err = rnr.CheckReadCommit(ctx, termio.Stdin)
		} else {
			_, err = rnr.CheckCommits(ctx, checkCommits)
		}
	case checkCommitsFromGit:
		_, err = rnr.CheckCommitsFromGit(ctx, cfg.Since)
	case hasPipe && !cfg.InCI:
		cfg.Debugf("reading commit message from stdin")
		_, err = rnr.CheckReadCommit(ctx, termio.Stdin)
	default:
		_, err = rnr.CheckCommitsFromGit(ctx, cfg.Since)
	}
	if err != nil {
		cf := runner.CheckFailure{}
		if errors.As(err, &cf) {
			if werr := cf.WriteFailure(cfg.Term.Stdout); werr != nil {
				cfg.Errorf("failed to write invalid commit information: %v", werr)
			}
		}
		return err
	}
	cfg.Printf("OK")
	return nil
}

func stdinIsPipe(termio config.TerminalIO) bool {
	if termio.Stdin == nil {
		return false
	}
	if f, ok := termio.Stdin.(*os.File); ok {
		return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	}
	return true
}

func die(err error) {
	if err != nil {
		panic(err)
	}
}

func usage(cfg config.Config, flags *pflag.FlagSet) {
	cfg.Printf(`%s [flags]

A utility for checking commit messages for sign-offs.

FLAGS
%s

EXAMPLES

# check commits since the last release tag
$ signoff --check

# check commits on this branch
$ signoff --check --since origin/main

# use as a commit-msg hook
$ signoff --edit "$1"

# require a Developer Certificate of Origin trailer
$ git log -1 --format=%%B | signoff --policy dco

# forbid Change-Id lines
$ signoff --when never --value Change-Id: --check

# print sign-off stats
$ signoff --stats
`, "signoff", flags.FlagUsages())
}

func readConfigYAML(p string) (*config.Config, error) {
	if p != "" {
		b, err := ioutil.ReadFile(p)
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	for {
		candPath := filepath.Join(wd, configFileName)
		b, err := ioutil.ReadFile(candPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				parent := filepath.Dir(filepath.Clean(wd))
				if parent == wd {
					break
				}
				wd = parent
				continue
			}
			return nil, err
		}

		cfg := &config.Config{}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", candPath, err)
		}
		return cfg, nil
	}
	return nil, nil
}
