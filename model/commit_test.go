package model

import "testing"

func TestCommit(t *testing.T) {
	cmt := &Commit{ID: "deadbeefdeadbeef"}
	short := cmt.ShortID()
	expect := "deadbeef"
	if short != expect {
		t.Fatal("expected", expect, "got", short)
	}
}

func TestCommitTitle(t *testing.T) {
	cmt := &Commit{Subject: "fix: cool"}
	if title := cmt.Title(); title != "fix: cool" {
		t.Fatal("expected subject only, got", title)
	}
	cmt.ID = "deadbeefdeadbeef"
	if title := cmt.Title(); title != "deadbeef fix: cool" {
		t.Fatal("expected short id and subject, got", title)
	}
}

func TestTrailerValues(t *testing.T) {
	cmt := &Commit{Trailers: []Trailer{
		{Key: "Signed-off-by", Value: "A <a@example.com>"},
		{Key: "Reviewed-by", Value: "B <b@example.com>"},
		{Key: "signed-off-by", Value: "C <c@example.com>"},
	}}

	vals := cmt.TrailerValues("Signed-off-by:")
	if len(vals) != 2 {
		t.Fatalf("expected 2 values, got %d: %q", len(vals), vals)
	}
	if vals[0] != "A <a@example.com>" || vals[1] != "C <c@example.com>" {
		t.Fatalf("unexpected values: %q", vals)
	}
	if vals := cmt.TrailerValues("Acked-by"); len(vals) != 0 {
		t.Fatalf("expected no values, got %q", vals)
	}
}
