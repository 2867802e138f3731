package vcs

import (
	"context"
	"testing"

	"github.com/jeffrom/signoff/model"
)

func TestGlobMatches(t *testing.T) {
	tcs := []struct {
		s, glob string
		expect  bool
	}{
		{"v0.1.0", "v*", true},
		{"other", "v*", false},
		{"v0.1.0", "v0.1.0", true},
		{"v0.1.0", "v0.1", false},
		{"anything", "", false},
		{"", "", true},
	}
	for _, tc := range tcs {
		if got := globMatches(tc.s, tc.glob); got != tc.expect {
			t.Errorf("globMatches(%q, %q): expected %v, got %v", tc.s, tc.glob, tc.expect, got)
		}
	}
}

func TestMockCommitDates(t *testing.T) {
	m := NewMock().SetCommits(&model.Commit{ID: "a"}, &model.Commit{ID: "b"})
	commits, err := m.ReadCommits(context.Background(), "HEAD")
	if err != nil {
		t.Fatal(err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if !commits[0].CommitterDate.After(commits[1].CommitterDate) {
		t.Fatal("expected commits to be ordered newest first")
	}
	if m.LastQuery() != "HEAD" {
		t.Fatalf("expected last query HEAD, got %q", m.LastQuery())
	}
}
