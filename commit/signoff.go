package commit

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/jeffrom/signoff/config"
	"github.com/jeffrom/signoff/model"
)

// When says whether a policy requires or forbids its value.
type When int

const (
	_ When = iota

	Always
	Never
)

func (w When) String() string {
	switch w {
	case Always:
		return "always"
	case Never:
		return "never"
	default:
		return fmt.Sprintf("When(%d)", int(w))
	}
}

func ParseWhen(s string) (When, error) {
	switch s {
	case "always":
		return Always, nil
	case "never":
		return Never, nil
	default:
		return 0, fmt.Errorf("commit: invalid when %q", s)
	}
}

// Match selects how a value is located in a commit body.
type Match int

const (
	// MatchContains finds the value anywhere in the body.
	MatchContains Match = iota
	// MatchTrailer requires the last body line, ignoring blank lines and
	// cherry-pick annotations, to start with the value.
	MatchTrailer
)

func (m Match) String() string {
	switch m {
	case MatchContains:
		return "contains"
	case MatchTrailer:
		return "trailer"
	default:
		return fmt.Sprintf("Match(%d)", int(m))
	}
}

func ParseMatch(s string) (Match, error) {
	switch s {
	case "", "contains":
		return MatchContains, nil
	case "trailer":
		return MatchTrailer, nil
	default:
		return 0, fmt.Errorf("commit: invalid match %q", s)
	}
}

// SignedOffBy reports whether the body of c satisfies when for value. The
// subject is never searched. The returned message describes the requirement.
func SignedOffBy(c *model.Commit, when When, value string) (bool, string) {
	r := &Rule{When: when, Value: value}
	return r.Check(c)
}

// Rule is a compiled config.Policy.
type Rule struct {
	Name       string
	When       When
	Value      string
	Match      Match
	IgnoreCase bool
}

func NewRule(pol *config.Policy) (*Rule, error) {
	when, err := ParseWhen(pol.When)
	if err != nil {
		return nil, fmt.Errorf("policy %q: %w", pol.Name, err)
	}
	match, err := ParseMatch(pol.Match)
	if err != nil {
		return nil, fmt.Errorf("policy %q: %w", pol.Name, err)
	}
	return &Rule{
		Name:       pol.Name,
		When:       when,
		Value:      pol.Value,
		Match:      match,
		IgnoreCase: pol.IgnoreCase,
	}, nil
}

func NewRules(pols []*config.Policy) ([]*Rule, error) {
	rules := make([]*Rule, len(pols))
	for i, pol := range pols {
		r, err := NewRule(pol)
		if err != nil {
			return nil, err
		}
		rules[i] = r
	}
	return rules, nil
}

func (r *Rule) Check(c *model.Commit) (bool, string) {
	present := r.present(c.Body)
	switch r.When {
	case Always:
		return present, fmt.Sprintf("message must be signed-off-by %s", r.Value)
	case Never:
		return !present, fmt.Sprintf("message must not be signed-off-by %s", r.Value)
	default:
		panic(fmt.Sprintf("commit: invalid when %d", int(r.When)))
	}
}

func (r *Rule) present(body string) bool {
	value := r.Value
	if r.IgnoreCase {
		// Casers are stateful and must not be shared.
		body = cases.Fold().String(body)
		value = cases.Fold().String(value)
	}

	if r.Match == MatchTrailer {
		last, ok := lastLine(body)
		return ok && strings.HasPrefix(last, value)
	}
	return strings.Contains(body, value)
}

func lastLine(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || isCherryPick(line) {
			continue
		}
		return line, true
	}
	return "", false
}
