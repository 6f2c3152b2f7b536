// Package query builds the select and filter portions of a data-service
// request from user-facing constraint and column specifications.
package query

import "strings"

var parenReplacer = strings.NewReplacer("(", " ", ")", " ")

// Clean normalizes a raw constraint value for safe inclusion in a filter:
// parentheses become spaces, whitespace runs collapse to one space, leading
// and trailing whitespace is trimmed, single quotes are removed, and a value
// with internal whitespace is wrapped in double quotes so the remote service
// treats it as one token. Values already wrapped in double quotes are not
// wrapped again, which keeps the function idempotent.
func Clean(value string) string {
	s := parenReplacer.Replace(value)
	s = strings.Join(strings.Fields(s), " ")
	s = strings.ReplaceAll(s, "'", "")
	if strings.Contains(s, " ") && !isQuoted(s) {
		s = `"` + s + `"`
	}
	return s
}

func isQuoted(s string) bool {
	return len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)
}
