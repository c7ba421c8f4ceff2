package pattern

import (
	"strings"

	"github.com/xdg/cmdgate/internal/shell"
)

// Matches tests one core command against one pattern. The command is
// rendered to its canonical string form (executable, then a space and the
// arguments when present). Matching is case-sensitive and byte-exact: a
// prefix rule matches the whole string or the body extended at a token
// boundary, so "npm test" never matches "npm testing".
func Matches(cmd shell.CoreCommand, p Pattern) bool {
	s := cmd.String()
	switch p.Kind {
	case Prefix:
		return s == p.Body || strings.HasPrefix(s, p.Body+" ")
	case Exact:
		return s == p.Body
	default:
		return false
	}
}

// Store holds the merged allow and deny rule sets for one invocation. It is
// rebuilt fresh per authorization request and read-only once built.
type Store struct {
	Allow []Pattern
	Deny  []Pattern
}

// MatchAllow returns the first allow pattern matching cmd, if any.
func (s *Store) MatchAllow(cmd shell.CoreCommand) (Pattern, bool) {
	return matchFirst(cmd, s.Allow)
}

// MatchDeny returns the first deny pattern matching cmd, if any.
func (s *Store) MatchDeny(cmd shell.CoreCommand) (Pattern, bool) {
	return matchFirst(cmd, s.Deny)
}

func matchFirst(cmd shell.CoreCommand, patterns []Pattern) (Pattern, bool) {
	for _, p := range patterns {
		if Matches(cmd, p) {
			return p, true
		}
	}
	return Pattern{}, false
}

// Merge appends other's rules to the store. Duplicates are harmless and
// kept: the sets are unions and only the decision has precedence, not the
// lists.
func (s *Store) Merge(other Store) {
	s.Allow = append(s.Allow, other.Allow...)
	s.Deny = append(s.Deny, other.Deny...)
}

// Len returns the total number of rules in the store.
func (s *Store) Len() int {
	return len(s.Allow) + len(s.Deny)
}
