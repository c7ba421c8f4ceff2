// Package pattern provides allow/deny rule parsing and matching for core
// commands. Rules use the textual form Category(body): a body ending in :*
// is a prefix rule, any other body is an exact rule.
package pattern

import (
	"fmt"
	"strings"

	"github.com/xdg/cmdgate/internal/clog"
)

// Kind distinguishes prefix rules from exact rules.
type Kind int

const (
	// Exact matches the whole command string byte-for-byte.
	Exact Kind = iota
	// Prefix matches the whole command string or any extension of it at a
	// token boundary (the body followed by a space).
	Prefix
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case Exact:
		return "exact"
	case Prefix:
		return "prefix"
	default:
		return "unknown"
	}
}

// Pattern is one parsed allow or deny rule. Patterns are immutable once
// loaded for a given invocation.
type Pattern struct {
	Category string
	Body     string
	Kind     Kind
}

// String returns the pattern in its original textual form.
func (p Pattern) String() string {
	if p.Kind == Prefix {
		return p.Category + "(" + p.Body + ":*)"
	}
	return p.Category + "(" + p.Body + ")"
}

// Parse parses a rule string of the form Category(body). A body ending in
// :* denotes a prefix rule; the :* suffix is stripped to get the prefix.
func Parse(s string) (Pattern, error) {
	open := strings.Index(s, "(")
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return Pattern{}, fmt.Errorf("pattern %q: want Category(body)", s)
	}

	category := s[:open]
	body := s[open+1 : len(s)-1]

	kind := Exact
	if strings.HasSuffix(body, ":*") {
		kind = Prefix
		body = strings.TrimSuffix(body, ":*")
	}

	if body == "" {
		return Pattern{}, fmt.Errorf("pattern %q: empty body", s)
	}

	return Pattern{Category: category, Body: body, Kind: kind}, nil
}

// ParseAll parses a slice of rule strings. Invalid rules are logged and
// skipped, not fatal: a dropped allow rule only shrinks the authorization
// surface.
func ParseAll(rules []string, source string) []Pattern {
	result := make([]Pattern, 0, len(rules))
	for _, r := range rules {
		p, err := Parse(r)
		if err != nil {
			clog.Warn("%s: %v (skipped)", source, err)
			continue
		}
		result = append(result, p)
	}
	return result
}
