package db

import "strings"

// IsUniqueViolation reports whether err is a Postgres unique violation.
// Passing a constraintName narrows the match to that constraint, which works
// under sqlite in tests too since both engines echo the name in the message.
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value")
}
