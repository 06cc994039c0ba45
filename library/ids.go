package library

import "fmt"

// Identifier prefixes. The store itself only concatenates; callers are
// expected to hand in plain digit strings, validated with ValidDigits.
const (
	bookIDPrefix        = "B"
	memberIDPrefix      = "M"
	transactionIDPrefix = "T"
)

// BookID formats a caller-supplied digit string as a book identifier.
func BookID(digits string) string { return bookIDPrefix + digits }

// MemberID formats a caller-supplied digit string as a member identifier.
func MemberID(digits string) string { return memberIDPrefix + digits }

// transactionID derives a transaction identifier from its 1-based sequence
// position at creation time. Transactions are never deleted, so sequence
// numbers are never reused.
func transactionID(seq int) string {
	return fmt.Sprintf("%s%d", transactionIDPrefix, seq)
}

// ValidDigits reports whether s is a non-empty string of ASCII digits.
func ValidDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
