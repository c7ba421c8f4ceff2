package shell

import "strings"

// unsafeConstructs maps raw substrings to the reason they make a command
// undecidable. These are scanned before tokenization: substitution and
// heredoc syntax would otherwise corrupt quote tracking, and their contents
// cannot be known without executing them.
var unsafeConstructs = []struct {
	marker string
	reason string
}{
	{"$(", "command substitution $(...)"},
	{"`", "command substitution with backticks"},
	{"<<", "heredoc"},
	{"<(", "process substitution <(...)"},
	{">(", "process substitution >(...)"},
}

// DetectUnsafe scans a raw command string for constructs the engine refuses
// to reason about. It returns a human-readable reason and true if one is
// found. The scan is deliberately literal: even a quoted `$(` defers, since
// telling quoted from unquoted requires the very parsing these constructs
// corrupt.
func DetectUnsafe(raw string) (string, bool) {
	for _, c := range unsafeConstructs {
		if strings.Contains(raw, c.marker) {
			return c.reason, true
		}
	}
	return "", false
}
