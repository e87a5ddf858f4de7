package command

import (
	"sort"
	"strings"
)

// Substitute replaces, in every argv token, the longest `$var` prefix
// match found in vars (keys carry their leading '$', e.g. "$mod") with
// its value; "\$" is an escaped dollar sign and is never treated as the
// start of a substitution (spec §4.5 step 2).
func Substitute(argv []string, vars map[string]string) []string {
	if len(vars) == 0 {
		return argv
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	out := make([]string, len(argv))
	for i, tok := range argv {
		out[i] = substituteOne(tok, vars, keys)
	}
	return out
}

func substituteOne(tok string, vars map[string]string, keysByLenDesc []string) string {
	var b strings.Builder
	i := 0
	for i < len(tok) {
		if tok[i] == '\\' && i+1 < len(tok) && tok[i+1] == '$' {
			b.WriteByte('$')
			i += 2
			continue
		}
		if tok[i] == '$' {
			if k := longestPrefixKey(tok[i:], keysByLenDesc); k != "" {
				b.WriteString(vars[k])
				i += len(k)
				continue
			}
		}
		b.WriteByte(tok[i])
		i++
	}
	return b.String()
}

func longestPrefixKey(s string, keysByLenDesc []string) string {
	for _, k := range keysByLenDesc {
		if strings.HasPrefix(s, k) {
			return k
		}
	}
	return ""
}
