// Package categorizer maps free-text iCompta categories onto ledger account
// paths.
package categorizer

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/icompta-ledger/internal/models"
)

// Mode selects the structural normalization applied before the rules.
type Mode string

const (
	// ModeRooted treats the category as an account path already: only the
	// hierarchy separators are cleaned up.
	ModeRooted Mode = "rooted"
	// ModePrefixed places the category under a root account and dot-joins
	// multi-word segments ("Frais bancaires" -> "Frais.bancaires").
	ModePrefixed Mode = "prefixed"
)

// DefaultRoot is the root account used by ModePrefixed when none is given.
const DefaultRoot = "Budget"

// separator matches a hierarchy separator with any surrounding whitespace.
var separator = regexp.MustCompile(`\s*[:;]\s*`)

// ParseMode converts a configuration value into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRooted:
		return ModeRooted, nil
	case ModePrefixed:
		return ModePrefixed, nil
	default:
		return "", fmt.Errorf("unknown category mode %q (must be %q or %q)", s, ModeRooted, ModePrefixed)
	}
}

type compiledRule struct {
	source  models.CategoryRule
	pattern *regexp.Regexp
}

// Normalizer turns raw categories into canonical account paths. It is
// immutable once built and safe for concurrent use.
type Normalizer struct {
	mode  Mode
	root  string
	rules []compiledRule
}

// NewNormalizer compiles rules in order. A nil rules slice selects
// DefaultRules; an empty non-nil slice disables substitution.
func NewNormalizer(mode Mode, root string, rules []models.CategoryRule) (*Normalizer, error) {
	if mode == "" {
		mode = ModeRooted
	}
	if mode != ModeRooted && mode != ModePrefixed {
		return nil, fmt.Errorf("unknown category mode %q", mode)
	}
	if mode == ModePrefixed && strings.TrimSpace(root) == "" {
		root = DefaultRoot
	}
	if rules == nil {
		rules = DefaultRules()
	}

	compiled := make([]compiledRule, 0, len(rules))
	for i, r := range rules {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %d: invalid pattern %q: %w", i+1, r.Pattern, err)
		}
		compiled = append(compiled, compiledRule{source: r, pattern: re})
	}

	return &Normalizer{
		mode:  mode,
		root:  strings.TrimSpace(root),
		rules: compiled,
	}, nil
}

// NewDefaultNormalizer returns a rooted normalizer with the built-in rules.
func NewDefaultNormalizer() *Normalizer {
	n, err := NewNormalizer(ModeRooted, "", nil)
	if err != nil {
		panic(err)
	}
	return n
}

// Mode returns the structural mode of the normalizer.
func (n *Normalizer) Mode() Mode {
	return n.mode
}

// Rules returns a copy of the rule table in application order.
func (n *Normalizer) Rules() []models.CategoryRule {
	out := make([]models.CategoryRule, len(n.rules))
	for i, r := range n.rules {
		out[i] = r.source
	}
	return out
}

// Normalize returns the canonical account path for raw. Rules are applied
// one after the other on the output of the previous one; a rule only
// rewrites the part of the category it matches.
func (n *Normalizer) Normalize(raw string) string {
	category := n.structure(raw)
	for _, r := range n.rules {
		category = r.pattern.ReplaceAllString(category, r.source.Replacement)
	}
	return category
}

func (n *Normalizer) structure(raw string) string {
	raw = strings.TrimSpace(raw)
	if n.mode == ModeRooted {
		return separator.ReplaceAllString(raw, ":")
	}

	var segments []string
	for _, segment := range separator.Split(raw, -1) {
		if words := strings.Fields(segment); len(words) > 0 {
			segments = append(segments, strings.Join(words, "."))
		}
	}
	if len(segments) == 0 {
		return n.root
	}
	return n.root + ":" + strings.Join(segments, ":")
}
