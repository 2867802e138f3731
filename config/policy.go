package config

import (
	"bufio"
	"fmt"
	"io"
)

const DefaultSignOffValue = "Signed-off-by:"

// Policy describes a sign-off requirement. When is "always" or "never", and
// Match is "contains" (the default) or "trailer".
type Policy struct {
	Name       string `json:"name"`
	When       string `json:"when"`
	Value      string `json:"value"`
	Match      string `json:"match,omitempty"`
	IgnoreCase bool   `json:"ignore_case,omitempty"`
}

func (p *Policy) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("config: policy name is required")
	}
	switch p.When {
	case "always", "never":
	default:
		return fmt.Errorf("config: policy %q: when must be \"always\" or \"never\", got %q", p.Name, p.When)
	}
	switch p.Match {
	case "", "contains", "trailer":
	default:
		return fmt.Errorf("config: policy %q: match must be \"contains\" or \"trailer\", got %q", p.Name, p.Match)
	}
	if p.Value == "" {
		return fmt.Errorf("config: policy %q: value is required", p.Name)
	}
	return nil
}

func (p *Policy) TextSummary(w io.Writer) error {
	bw := bufio.NewWriter(w)

	bw.WriteString(fmt.Sprintf("Name: %s\n", p.Name))
	bw.WriteString(fmt.Sprintf("When: %s\n", p.When))
	bw.WriteString(fmt.Sprintf("Value: %q\n", p.Value))

	match := p.Match
	if match == "" {
		match = "contains"
	}
	bw.WriteString(fmt.Sprintf("Match: %s\n", match))
	if p.IgnoreCase {
		bw.WriteString("Ignore case: true\n")
	}

	return bw.Flush()
}

var builtinPolicies = []Policy{
	{
		Name:  "signed-off",
		When:  "always",
		Value: DefaultSignOffValue,
		Match: "contains",
	},
	{
		Name:  "dco",
		When:  "always",
		Value: DefaultSignOffValue,
		Match: "trailer",
	},
	{
		Name:  "no-signoff",
		When:  "never",
		Value: DefaultSignOffValue,
		Match: "contains",
	},
}

func getBuiltinPolicy(name string) *Policy {
	for _, pol := range builtinPolicies {
		if name == pol.Name {
			p := pol
			return &p
		}
	}
	return nil
}
