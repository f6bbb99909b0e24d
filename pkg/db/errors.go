package db

import "strings"

// IsUniqueViolation reports whether the provided error references a unique
// constraint violation. When constraint names are given, the helper also
// looks for them in the error message; this matches both Postgres's
// "duplicate key value violates unique constraint" and SQLite's
// "UNIQUE constraint failed: table.column" phrasing used in tests.
func IsUniqueViolation(err error, constraintNames ...string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, name := range constraintNames {
		if name != "" && strings.Contains(msg, name) {
			return true
		}
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
