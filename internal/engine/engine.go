// Package engine combines shell parsing and pattern matching into a single
// fail-closed authorization decision. Every error, ambiguity, or unsupported
// construct resolves to "not authorized"; no code path upgrades a failure
// into approval.
package engine

import (
	"fmt"

	"github.com/xdg/cmdgate/internal/pattern"
	"github.com/xdg/cmdgate/internal/shell"
)

// Outcome classifies how a decision was reached.
type Outcome int

const (
	// Deferred means nothing authorized the command; the host falls back
	// to its own confirmation flow. This is the fail-closed default.
	Deferred Outcome = iota
	// Unsafe means the raw text contained a construct the engine refuses
	// to reason about.
	Unsafe
	// DenyHit means a core command matched a deny rule.
	DenyHit
	// Authorized means every core command matched an allow rule and none
	// matched a deny rule.
	Authorized
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Deferred:
		return "deferred"
	case Unsafe:
		return "unsafe"
	case DenyHit:
		return "deny-hit"
	case Authorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// Decision is the sole output of one authorization request. Matched lists
// every core command that passed the allow check when Authorized is true.
// Trace is a human-readable account of how the decision was reached,
// intended for debug logging rather than end-user display.
type Decision struct {
	Authorized bool
	Outcome    Outcome
	Matched    []shell.CoreCommand
	// AllowRules holds the textual form of the allow rule each Matched
	// command hit, in the same order.
	AllowRules []string
	// DenyRule holds the textual form of the deny rule for a DenyHit.
	DenyRule string
	Trace    []string
}

// Decide evaluates a raw command string against the given pattern store and
// returns an authorization decision. It is a pure function of (raw, store):
// no state persists across calls, and the same inputs always yield the same
// Decision.
//
// A command is authorized only when every operator-delimited segment reduces
// to a core command that matches an allow rule, and no core command matches
// a deny rule. Deny takes unconditional precedence and short-circuits.
func Decide(raw string, store *pattern.Store) Decision {
	d := Decision{}

	if reason, found := shell.DetectUnsafe(raw); found {
		d.Outcome = Unsafe
		d.Trace = append(d.Trace, fmt.Sprintf("unsafe construct: %s; deferring", reason))
		return d
	}

	segments, err := shell.Split(shell.Tokenize(raw))
	if err != nil {
		d.Trace = append(d.Trace, fmt.Sprintf("%v; deferring", err))
		return d
	}

	var cores []shell.CoreCommand
	for i, seg := range segments {
		normalized, err := shell.Normalize(seg)
		if err != nil {
			d.Trace = append(d.Trace, fmt.Sprintf("segment %d: %v; deferring", i+1, err))
			return d
		}
		core, ok := shell.Extract(normalized)
		if !ok {
			d.Trace = append(d.Trace, fmt.Sprintf("segment %d: no command after normalization", i+1))
			continue
		}
		d.Trace = append(d.Trace, fmt.Sprintf("segment %d: %s", i+1, core))
		cores = append(cores, core)
	}

	// Nothing left to positively authorize.
	if len(cores) == 0 {
		d.Trace = append(d.Trace, "no actionable command; deferring")
		return d
	}

	var rules []string
	for _, core := range cores {
		if p, ok := store.MatchDeny(core); ok {
			d.Outcome = DenyHit
			d.DenyRule = p.String()
			d.Trace = append(d.Trace, fmt.Sprintf("%q matched deny %s; denied", core, p))
			return d
		}
		p, ok := store.MatchAllow(core)
		if !ok {
			d.Trace = append(d.Trace, fmt.Sprintf("%q matched no allow rule; deferring", core))
			return d
		}
		rules = append(rules, p.String())
		d.Trace = append(d.Trace, fmt.Sprintf("%q matched allow %s", core, p))
	}

	d.Authorized = true
	d.Outcome = Authorized
	d.Matched = cores
	d.AllowRules = rules
	return d
}
