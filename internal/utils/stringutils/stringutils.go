package stringutils

import "fmt"

// INClause builds positional placeholders and the matching argument slice for
// a SQL IN (...) expression: ($1, $2, ...).
func INClause[T any](list []T) (placeholders []string, args []any) {
	placeholders = make([]string, len(list))
	args = make([]any, len(list))
	for i, item := range list {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = item
	}

	return placeholders, args
}

// TruncateRunes returns the first n runes of s. Multibyte characters are never
// split.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
