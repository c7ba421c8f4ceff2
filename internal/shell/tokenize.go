package shell

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// tokenizer states. escape remembers the state to return to after
// consuming the escaped character.
type tokenState int

const (
	stateNormal tokenState = iota
	stateSingleQuote
	stateDoubleQuote
)

// Token is one shell word after quote removal. Quoted records whether any
// part of the word came from inside quotes or a backslash escape: a quoted
// operator is an ordinary argument to the shell, not a control operator,
// and segmentation must honor that distinction.
type Token struct {
	Text   string
	Quoted bool
}

// ErrEmbeddedOperator is returned when an unquoted word glues a control
// character (;, |, &) to other text, such as ";rm" or "a|b". The shell
// parses such a word as multiple commands, so treating it as one word
// would hide a command from matching.
var ErrEmbeddedOperator = errors.New("control character embedded in word")

// Tokenize splits a raw command string into tokens, honoring single quotes,
// double quotes, and backslash escaping. Token text carries the literal
// post-escape characters; the quoting itself is recorded in Token.Quoted.
//
// Malformed quoting never fails: end of input closes any open quote or
// escape, matching permissive shell behavior. A garbled token simply won't
// match any pattern downstream, which keeps the overall decision closed.
func Tokenize(raw string) []Token {
	var tokens []Token
	var current strings.Builder
	quoted := false

	state := stateNormal
	escaped := false
	escapeReturn := stateNormal

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, Token{Text: current.String(), Quoted: quoted})
			current.Reset()
		}
		quoted = false
	}

	for _, r := range raw {
		if escaped {
			current.WriteRune(r)
			escaped = false
			state = escapeReturn
			continue
		}

		switch state {
		case stateNormal:
			switch {
			case r == '\'':
				state = stateSingleQuote
				quoted = true
			case r == '"':
				state = stateDoubleQuote
				quoted = true
			case r == '\\':
				escaped = true
				escapeReturn = stateNormal
				quoted = true
			case unicode.IsSpace(r):
				flush()
			default:
				current.WriteRune(r)
			}
		case stateSingleQuote:
			// No escaping inside single quotes; backslash is literal.
			if r == '\'' {
				state = stateNormal
			} else {
				current.WriteRune(r)
			}
		case stateDoubleQuote:
			switch r {
			case '"':
				state = stateNormal
			case '\\':
				escaped = true
				escapeReturn = stateDoubleQuote
			default:
				current.WriteRune(r)
			}
		}
	}

	flush()
	return tokens
}

// control operators that bound command segments when they appear as
// unquoted standalone tokens. A bare & terminates a command the way ;
// does, so it splits as well. A quoted operator is an ordinary argument
// and never splits.
var controlOperators = map[string]bool{
	"&&": true,
	"||": true,
	";":  true,
	"|":  true,
	"&":  true,
}

// descriptorDupPattern matches redirection forms that legitimately embed
// an ampersand, such as 2>&1, >&2, or 2>&-.
var descriptorDupPattern = regexp.MustCompile(`^\d*[<>]{1,2}&[\d-]*$`)

// Split divides a token sequence into independent command segments at
// unquoted control-operator boundaries. Empty runs between adjacent
// operators are dropped. Segment order follows token order.
//
// An unquoted word that embeds a control character without being an
// operator or a redirection is more than one command to the shell; Split
// returns ErrEmbeddedOperator rather than guess at its structure.
func Split(tokens []Token) ([][]string, error) {
	var segments [][]string
	var current []string

	for _, tok := range tokens {
		if !tok.Quoted && controlOperators[tok.Text] {
			if len(current) > 0 {
				segments = append(segments, current)
				current = nil
			}
			continue
		}
		if err := checkEmbedded(tok); err != nil {
			return nil, err
		}
		current = append(current, tok.Text)
	}

	if len(current) > 0 {
		segments = append(segments, current)
	}

	return segments, nil
}

func checkEmbedded(tok Token) error {
	if tok.Quoted {
		return nil
	}
	if !strings.ContainsAny(tok.Text, ";|&") {
		return nil
	}
	if descriptorDupPattern.MatchString(tok.Text) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrEmbeddedOperator, tok.Text)
}
