// Package config holds signoff's configuration and commit policies.
package config

import (
	"errors"
	"fmt"

	"github.com/imdario/mergo"
)

type Config struct {
	Debug          bool       `json:"debug,omitempty"`
	Quiet          bool       `json:"quiet,omitempty"`
	InCI           bool       `json:"ci,omitempty"`
	CommentChar    string     `json:"comment_char,omitempty"`
	Since          string     `json:"since,omitempty"`
	Policies       []string   `json:"policies,omitempty"`
	CustomPolicies []Policy   `json:"custom_policies,omitempty"`
	Term           TerminalIO `json:"-"`
}

func New(overrides *Config) Config {
	return NewWithTerminalIO(overrides, nil)
}

func NewWithTerminalIO(overrides *Config, termio *TerminalIO) Config {
	cfg := GetDefault()
	if termio == nil {
		termio = &DefaultTermIO
	}
	cfg.Term = *termio

	if overrides != nil {
		if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
			panic(err)
		}
	}
	return cfg
}

func (c Config) Validate() error {
	if len(c.CommentChar) > 1 {
		return fmt.Errorf("config: comment_char must be a single character, got %q", c.CommentChar)
	}
	if len(c.Policies) == 0 {
		return errors.New("config: at least one policy is required")
	}
	for _, name := range c.Policies {
		pol := c.getPolicy(name)
		if pol == nil {
			return fmt.Errorf("config: unknown policy %q", name)
		}
		if err := pol.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) Printf(msg string, args ...interface{}) {
	if c.Quiet {
		return
	}
	c.Term.Printf(msg+"\n", args...)
}

func (c Config) Errorf(msg string, args ...interface{}) {
	c.Term.Errorf(msg+"\n", args...)
}

func (c Config) Debugf(msg string, args ...interface{}) {
	if !c.Debug {
		return
	}
	c.Printf(msg, args...)
}

// GetPolicies returns the policies selected by name, in order. Custom
// policies take precedence over builtins of the same name.
func (c Config) GetPolicies() []*Policy {
	var pols []*Policy
	for _, name := range c.Policies {
		if pol := c.getPolicy(name); pol != nil {
			pols = append(pols, pol)
		}
	}
	return pols
}

// AllPolicies returns every custom and builtin policy, selected or not.
func (c Config) AllPolicies() []*Policy {
	var pols []*Policy
	var seen []string
	for _, pol := range c.CustomPolicies {
		p := pol
		pols = append(pols, &p)
		seen = append(seen, p.Name)
	}
	for _, pol := range builtinPolicies {
		if oneOf(pol.Name, seen) {
			continue
		}
		p := pol
		pols = append(pols, &p)
	}
	return pols
}

func (c Config) getPolicy(name string) *Policy {
	for _, pol := range c.CustomPolicies {
		if pol.Name == name {
			p := pol
			return &p
		}
	}
	return getBuiltinPolicy(name)
}

func oneOf(s string, l []string) bool {
	for _, cand := range l {
		if s == cand {
			return true
		}
	}
	return false
}
