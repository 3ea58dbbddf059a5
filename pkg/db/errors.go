package db

import "strings"

// IsUniqueViolation reports whether err references a Postgres unique
// violation. When constraintName is set the helper looks for the constraint
// text in the error message, which also covers sqlite's UNIQUE errors in
// tests.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" && strings.Contains(msg, constraintName) {
		return true
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
