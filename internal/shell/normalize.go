package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrNestedSubshell is returned when a sh -c / bash -c payload contains
// another sh -c / bash -c. Only one level is ever unwrapped; unbounded
// unwrapping is an evasion vector, so a second level defers instead.
var ErrNestedSubshell = errors.New("nested sh -c subshell")

// ErrOperatorInSubshell is returned when a sh -c / bash -c payload chains
// multiple commands with a control operator. The payload is treated as a
// single fresh segment, so a chained payload cannot be decomposed into
// per-command checks and must not be matched as one command.
var ErrOperatorInSubshell = errors.New("control operator in sh -c payload")

// assignmentPattern matches an environment-variable assignment prefix
// such as FOO=bar or API_KEY=x.
var assignmentPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*=`)

// benignBuiltins are shell builtins that carry no externable command. A
// segment led by one of these is discarded entirely.
var benignBuiltins = map[string]bool{
	"export":  true,
	"set":     true,
	"unset":   true,
	"local":   true,
	"declare": true,
	"typeset": true,
}

// wrapperCommands decorate a command without changing its identity.
var wrapperCommands = map[string]bool{
	"timeout": true,
	"time":    true,
	"nice":    true,
	"nohup":   true,
	"env":     true,
}

// durationPattern matches the duration argument of timeout: a number with
// an optional single s/m/h/d suffix, as timeout(1) accepts.
var durationPattern = regexp.MustCompile(`^\d+(\.\d+)?[smhd]?$`)

// redirectionPattern matches redirection operator tokens, optionally
// prefixed by a file descriptor number: >, >>, <, 2>, 2>&1, >out.log.
var redirectionPattern = regexp.MustCompile(`^\d*[<>]`)

// Normalize strips benign decoration from one command segment: leading
// assignments, wrapper commands, one level of sh -c / bash -c, a trailing
// ampersand, and redirections. It returns nil when the segment carries no
// executable command (for example, a bare export). ErrNestedSubshell is the
// only error; it forces the caller to defer.
func Normalize(segment []string) ([]string, error) {
	return normalize(segment, 0)
}

func normalize(seg []string, depth int) ([]string, error) {
	// Leading environment-variable assignments.
	for len(seg) > 0 && assignmentPattern.MatchString(seg[0]) {
		seg = seg[1:]
	}

	// Builtins that never spawn an external command.
	if len(seg) > 0 && benignBuiltins[seg[0]] {
		return nil, nil
	}

	// Wrapper commands. timeout's duration argument goes with it, and a
	// wrapper like env may introduce its own assignments.
	for len(seg) > 0 && wrapperCommands[seg[0]] {
		wrapper := seg[0]
		seg = seg[1:]
		if wrapper == "timeout" && len(seg) > 0 && durationPattern.MatchString(seg[0]) {
			seg = seg[1:]
		}
		for len(seg) > 0 && assignmentPattern.MatchString(seg[0]) {
			seg = seg[1:]
		}
	}

	// One level of sh -c / bash -c: re-tokenize the payload and normalize
	// it as a fresh segment. A second level defers, and so does a payload
	// that chains commands with an operator: one segment must reduce to at
	// most one command, never to the head of several.
	if len(seg) == 3 && (seg[0] == "bash" || seg[0] == "sh") && seg[1] == "-c" {
		if depth >= 1 {
			return nil, ErrNestedSubshell
		}
		flat, err := flattenPayload(Tokenize(seg[2]))
		if err != nil {
			return nil, err
		}
		return normalize(flat, depth+1)
	}

	// Trailing backgrounding.
	if len(seg) > 0 && seg[len(seg)-1] == "&" {
		seg = seg[:len(seg)-1]
	}

	// Redirections. Bare operators consume the following target token;
	// tokens that embed their target (>out.log) or duplicate a descriptor
	// (2>&1) consume nothing else.
	var out []string
	for i := 0; i < len(seg); i++ {
		tok := seg[i]
		if !redirectionPattern.MatchString(tok) {
			out = append(out, tok)
			continue
		}
		if redirectionNeedsTarget(tok) {
			i++
		}
	}

	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// flattenPayload reduces a sh -c payload token stream to a plain segment.
// A trailing unquoted & is dropped as harmless backgrounding; any other
// unquoted control operator, or a word gluing a control character to other
// text, makes the payload more than one command and is refused.
func flattenPayload(payload []Token) ([]string, error) {
	if n := len(payload); n > 0 && !payload[n-1].Quoted && payload[n-1].Text == "&" {
		payload = payload[:n-1]
	}

	flat := make([]string, 0, len(payload))
	for _, tok := range payload {
		if !tok.Quoted && controlOperators[tok.Text] {
			return nil, fmt.Errorf("%w: %q", ErrOperatorInSubshell, tok.Text)
		}
		if err := checkEmbedded(tok); err != nil {
			return nil, err
		}
		flat = append(flat, tok.Text)
	}
	return flat, nil
}

// redirectionNeedsTarget reports whether a redirection token is a bare
// operator (>, >>, <, 2>) whose target is the following token.
func redirectionNeedsTarget(tok string) bool {
	rest := strings.TrimLeft(tok, "0123456789")
	rest = strings.TrimLeft(rest, "<>")
	return rest == ""
}
