// Package validate provides field-level input validation for form submissions.
//
// Validation failures accumulate into a FieldErrors value so a form can be
// re-presented with every failing field reported at once, not just the first.
package validate

import (
	"net/mail"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinLoginLen and MaxLoginLen bound the length of a login.
	MinLoginLen = 4
	MaxLoginLen = 20

	// MaxNameLen bounds the length of group and expense names.
	MaxNameLen = 200

	// MinPasswordLen bounds the length of a password.
	MinPasswordLen = 8
)

// FieldErrors accumulates user-correctable validation messages.
// The zero value is ready to use.
type FieldErrors []string

// Add appends a message to the accumulated errors.
func (e *FieldErrors) Add(msg string) {
	*e = append(*e, msg)
}

// Error joins the accumulated messages. FieldErrors is only an error when
// non-empty; use Err to convert.
func (e FieldErrors) Error() string {
	return strings.Join(e, "; ")
}

// Err returns the accumulated errors as an error, or nil if there are none.
func (e FieldErrors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// IsEmailValid reports whether s parses as a bare RFC 5322 address.
// Display names ("Alice <a@b.c>") are rejected: forms submit plain addresses.
func IsEmailValid(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

// IsPasswordStrong reports whether the password meets the strength policy:
// at least MinPasswordLen characters with an upper-case letter, a lower-case
// letter, and a digit.
func IsPasswordStrong(s string) bool {
	if utf8.RuneCountInString(s) < MinPasswordLen {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

// ParseAmount parses an expense amount as a whole number of currency units.
// The amount must be a base-10 integer greater than zero.
func ParseAmount(s string) (int64, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, strconv.ErrRange
	}
	return amount, nil
}
