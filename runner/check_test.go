package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/jeffrom/signoff/commit"
	"github.com/jeffrom/signoff/config"
	"github.com/jeffrom/signoff/model"
	"github.com/jeffrom/signoff/vcs"
)

func mockTermIO(stdin io.Reader) (config.TerminalIO, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return config.TerminalIO{Stdin: stdin, Stdout: stdout, Stderr: stderr}, stdout, stderr
}

func newTestRunner(t *testing.T, overrides *config.Config, m *vcs.Mock) *Runner {
	t.Helper()
	tio, _, _ := mockTermIO(nil)
	cfg := config.NewWithTerminalIO(overrides, &tio)
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if m == nil {
		m = vcs.NewMock()
	}
	rnr, err := New(cfg, m)
	if err != nil {
		t.Fatal(err)
	}
	return rnr
}

func parsedCommit(id, raw string) *model.Commit {
	c := commit.Parse(raw, commit.ParseOptions{CommentChar: "#"})
	c.ID = id
	return c
}

const (
	signedMessage   = "feat: cool\n\nbody\n\nSigned-off-by: A <a@example.com>\n"
	unsignedMessage = "fix: cool\n\nbody\n"
)

func TestCheckCommits(t *testing.T) {
	tcs := []struct {
		name       string
		cfg        *config.Config
		messages   []string
		shouldFail bool
		failures   int
	}{
		{
			name:     "signed",
			messages: []string{signedMessage},
		},
		{
			name:       "unsigned",
			messages:   []string{unsignedMessage},
			shouldFail: true,
			failures:   1,
		},
		{
			name:       "mixed",
			messages:   []string{signedMessage, unsignedMessage, unsignedMessage},
			shouldFail: true,
			failures:   2,
		},
		{
			name:     "never",
			cfg:      &config.Config{Policies: []string{"no-signoff"}},
			messages: []string{unsignedMessage},
		},
		{
			name:       "never-signed",
			cfg:        &config.Config{Policies: []string{"no-signoff"}},
			messages:   []string{signedMessage},
			shouldFail: true,
			failures:   1,
		},
		{
			name:       "dco-inline",
			cfg:        &config.Config{Policies: []string{"dco"}},
			messages:   []string{"fix: a\n\nI Signed-off-by: this\nbut not here\n"},
			shouldFail: true,
			failures:   1,
		},
		{
			name:       "multiple-policies",
			cfg:        &config.Config{Policies: []string{"signed-off", "dco"}},
			messages:   []string{unsignedMessage},
			shouldFail: true,
			failures:   2,
		},
		{
			name:     "trailing-comment",
			messages: []string{"fix: a\n\nSigned-off-by: A <a@example.com>\n# Signed-off-by: comment\n"},
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			rnr := newTestRunner(t, tc.cfg, nil)
			commits, err := rnr.CheckCommits(context.Background(), tc.messages)
			if !tc.shouldFail {
				if err != nil {
					t.Fatal(err)
				}
				if len(commits) != len(tc.messages) {
					t.Fatalf("expected %d commits, got %d", len(tc.messages), len(commits))
				}
				return
			}

			cf := CheckFailure{}
			if !errors.As(err, &cf) {
				t.Fatalf("expected CheckFailure, got %v", err)
			}
			if !errors.Is(err, CheckFailure{}) {
				t.Fatal("expected errors.Is to match CheckFailure")
			}
			if len(cf.Failures) != tc.failures {
				t.Fatalf("expected %d failures, got %d", tc.failures, len(cf.Failures))
			}
		})
	}
}

func TestCheckReadCommit(t *testing.T) {
	rnr := newTestRunner(t, nil, nil)
	c, err := rnr.CheckReadCommit(context.Background(), strings.NewReader(signedMessage))
	if err != nil {
		t.Fatal(err)
	}
	if c.Subject != "feat: cool" {
		t.Fatalf("unexpected subject %q", c.Subject)
	}

	_, err = rnr.CheckReadCommit(context.Background(), strings.NewReader(unsignedMessage))
	if !errors.Is(err, CheckFailure{}) {
		t.Fatalf("expected CheckFailure, got %v", err)
	}
}

func TestCheckCommitsFromGit(t *testing.T) {
	m := vcs.NewMock().SetTags("v0.1.0").SetCommits(
		parsedCommit("aaaaaaaaaaaa", signedMessage),
		parsedCommit("bbbbbbbbbbbb", unsignedMessage),
	)
	rnr := newTestRunner(t, nil, m)

	_, err := rnr.CheckCommitsFromGit(context.Background(), "")
	cf := CheckFailure{}
	if !errors.As(err, &cf) {
		t.Fatalf("expected CheckFailure, got %v", err)
	}
	if len(cf.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %d", len(cf.Failures))
	}
	if q := m.LastQuery(); q != "v0.1.0..HEAD" {
		t.Fatalf("expected query %q, got %q", "v0.1.0..HEAD", q)
	}

	b := &bytes.Buffer{}
	if err := cf.WriteFailure(b); err != nil {
		t.Fatal(err)
	}
	expect := "bbbbbbbb fix: cool\n  signed-off: message must be signed-off-by Signed-off-by:\n"
	if b.String() != expect {
		t.Fatalf("expected output:\n%q\ngot:\n%q", expect, b.String())
	}
}

func TestCheckCommitsFromGitOK(t *testing.T) {
	m := vcs.NewMock().SetCommits(parsedCommit("aaaaaaaaaaaa", signedMessage))
	rnr := newTestRunner(t, nil, m)

	commits, err := rnr.CheckCommitsFromGit(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 1 {
		t.Fatalf("expected 1 commit, got %d", len(commits))
	}
}

func TestWriteFailureGroupsByCommit(t *testing.T) {
	cf := CheckFailure{Failures: []FailureEntry{
		{commitID: "a", commitTitle: "a first", policy: "one", err: errors.New("bad one")},
		{commitID: "b", commitTitle: "b second", policy: "one", err: errors.New("bad one")},
		{commitID: "a", commitTitle: "a first", policy: "two", err: errors.New("bad two")},
		{commitTitle: "", err: errors.New("empty")},
	}}

	b := &bytes.Buffer{}
	if err := cf.WriteFailure(b); err != nil {
		t.Fatal(err)
	}
	expect := `a first
  one: bad one
  two: bad two
b second
  one: bad one
(empty message)
  empty
`
	if b.String() != expect {
		t.Fatalf("expected output:\n%s\ngot:\n%s", expect, b.String())
	}
	if cf.Error() != "4 check(s) failed" {
		t.Fatalf("unexpected error string %q", cf.Error())
	}
}

func TestNewInvalidPolicy(t *testing.T) {
	tio, _, _ := mockTermIO(nil)
	cfg := config.NewWithTerminalIO(&config.Config{
		Policies:       []string{"bad"},
		CustomPolicies: []config.Policy{{Name: "bad", When: "sometimes", Value: "x"}},
	}, &tio)
	if _, err := New(cfg, vcs.NewMock()); err == nil {
		t.Fatal("expected invalid policy to fail")
	}
}
