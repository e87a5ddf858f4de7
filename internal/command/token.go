package command

import "github.com/wmcore/corewm/internal/wmerrors"

// Tokenize splits s on whitespace, honoring "…" and '…' quoting and
// backslash escapes (spec §4.5 step 1). A backslash before a quote
// character, another backslash, or whitespace is consumed and emits the
// escaped character literally; a backslash before anything else (in
// particular '$') is passed through untouched, so Substitute can still
// see and interpret a "\$" sequence as an escaped variable marker.
func Tokenize(s string) ([]string, error) {
	var tokens []string
	var cur []rune
	inToken := false
	runes := []rune(s)
	n := len(runes)
	i := 0

	flush := func() {
		if inToken {
			tokens = append(tokens, string(cur))
			cur = nil
			inToken = false
		}
	}

	for i < n {
		c := runes[i]
		switch {
		case c == '\\' && i+1 < n:
			next := runes[i+1]
			if next == '"' || next == '\'' || next == '\\' || next == ' ' || next == '\t' {
				cur = append(cur, next)
				i += 2
			} else {
				cur = append(cur, c, next)
				i += 2
			}
			inToken = true
		case c == '"' || c == '\'':
			quote := c
			i++
			for i < n && runes[i] != quote {
				if runes[i] == '\\' && i+1 < n {
					next := runes[i+1]
					if next == '"' || next == '\'' || next == '\\' || next == ' ' || next == '\t' {
						cur = append(cur, next)
					} else {
						cur = append(cur, runes[i], next)
					}
					i += 2
					continue
				}
				cur = append(cur, runes[i])
				i++
			}
			if i >= n {
				return nil, wmerrors.New(wmerrors.CommandInvalid, "unterminated quote")
			}
			i++ // skip closing quote
			inToken = true
		case c == ' ' || c == '\t':
			flush()
			i++
		default:
			cur = append(cur, c)
			inToken = true
			i++
		}
	}
	flush()
	return tokens, nil
}
