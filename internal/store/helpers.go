package store

import "strings"

// placeholderList returns "?,?,?" for n placeholders.
func placeholderList(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

// stringsToArgs converts []string to []any for use with database/sql.
func stringsToArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}

// repeatArgs repeats args n times (for queries with multiple IN clauses).
func repeatArgs(args []any, n int) []any {
	result := make([]any, 0, len(args)*n)
	for i := 0; i < n; i++ {
		result = append(result, args...)
	}
	return result
}
