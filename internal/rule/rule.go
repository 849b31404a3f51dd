// Package rule implements the no-focused-tests rule: it reports test declarations
// narrowed with fdescribe, fit, .only and similar markers so they never reach
// committed code.
package rule

import (
	"context"
	"fmt"
	"strings"

	"github.com/temirov/nofocus/internal/syntax"
)

// Name identifies the rule in reports.
const Name = "no-focused-tests"

// Metadata describes the rule for listings.
type Metadata struct {
	Name        string
	Description string
	Type        string
	HasFix      bool
}

// Describe returns the rule metadata.
func Describe() Metadata {
	return Metadata{
		Name:        Name,
		Description: "Ensures that no tests are missed.",
		Type:        "maintainability",
		HasFix:      false,
	}
}

// Options configures one rule instance.
type Options struct {
	Runner Runner
	// Suffix, when set, restricts the rule to file names ending with it.
	Suffix string
}

// Parser builds the syntax tree of one source file.
type Parser interface {
	Parse(ctx context.Context, fileName string, source []byte) (*syntax.Node, error)
}

// Rule is an immutable, resolved rule instance. It is safe for concurrent use.
type Rule struct {
	options Options
	profile Profile
}

// New resolves the runner profile. An unknown runner fails with ErrUnknownRunner.
func New(options Options) (*Rule, error) {
	profile, profileError := ProfileFor(options.Runner)
	if profileError != nil {
		return nil, profileError
	}
	return &Rule{options: options, profile: profile}, nil
}

// Profile returns the resolved runner profile.
func (rule *Rule) Profile() Profile {
	return rule.profile
}

// Accepts applies the suffix filter to a file name.
func (rule *Rule) Accepts(fileName string) bool {
	return rule.options.Suffix == "" || strings.HasSuffix(fileName, rule.options.Suffix)
}

// Apply reports the focused calls of an already parsed file. Files rejected by the
// suffix filter or the prefilter yield no failures without walking the tree.
func (rule *Rule) Apply(fileName string, source []byte, root *syntax.Node) []Failure {
	if !rule.Accepts(fileName) || !rule.profile.PossibleMatches(source) {
		return nil
	}
	return Walk(root, fileName, rule.profile)
}

// Check is Apply for an unparsed file: the parser only runs when the suffix filter and
// the prefilter both pass.
func (rule *Rule) Check(ctx context.Context, fileName string, source []byte, parser Parser) ([]Failure, error) {
	if !rule.Accepts(fileName) || !rule.profile.PossibleMatches(source) {
		return nil, nil
	}
	root, parseError := parser.Parse(ctx, fileName, source)
	if parseError != nil {
		return nil, fmt.Errorf("check %s: %w", fileName, parseError)
	}
	return Walk(root, fileName, rule.profile), nil
}
