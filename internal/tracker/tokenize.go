package tracker

import (
	"strings"
	"unicode"
)

// Tokenize splits a command line on whitespace. Text between double quotes is
// kept together as one token with the quotes removed, so a multi-word
// description can be passed as a single argument. Single quotes are ordinary
// characters so names like O'Brien need no escaping.
func Tokenize(line string) ([]string, error) {
	var (
		tokens  []string
		buf     strings.Builder
		quoted  bool
		inToken bool
	)

	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			inToken = true
		case unicode.IsSpace(r) && !quoted:
			if inToken {
				tokens = append(tokens, buf.String())
				buf.Reset()
				inToken = false
			}
		default:
			buf.WriteRune(r)
			inToken = true
		}
	}

	if quoted {
		return nil, &ArgumentError{Reason: "unbalanced double quote"}
	}
	if inToken {
		tokens = append(tokens, buf.String())
	}
	return tokens, nil
}
