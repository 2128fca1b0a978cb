package api

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// Field shape constraints for user records.
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 8
)

// emailPattern accepts local@domain.tld: no whitespace or '@' in either part,
// at least one dot segment after the '@'. No DNS or mailbox verification.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has the shape of an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidUsername reports whether s is a username of acceptable length.
// Length is counted in characters, not bytes.
func ValidUsername(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= MinUsernameLength && n <= MaxUsernameLength
}

// ValidPassword reports whether s meets the minimum password length.
func ValidPassword(s string) bool {
	return utf8.RuneCountInString(s) >= MinPasswordLength
}

// ValidateUserFields checks the shape of the well-known fields in a
// caller-supplied field map. When requireAll is set (create), username, email
// and password must all be present; otherwise (update) only supplied fields
// are checked. Returns nil when the fields pass.
//
// The store never re-validates; every write path must go through this gate
// first.
func ValidateUserFields(fields map[string]interface{}, requireAll bool) *RequestError {
	checks := []struct {
		key   string
		valid func(string) bool
		hint  string
	}{
		{"username", ValidUsername, fmt.Sprintf("username must be between %d and %d characters", MinUsernameLength, MaxUsernameLength)},
		{"email", ValidEmail, "email must have the form local@domain.tld"},
		{"password", ValidPassword, fmt.Sprintf("password must be at least %d characters", MinPasswordLength)},
	}

	for _, check := range checks {
		raw, present := fields[check.key]
		if !present {
			if requireAll {
				return InvalidInputError(check.key + " is required")
			}
			continue
		}
		s, ok := raw.(string)
		if !ok || !check.valid(s) {
			return InvalidInputError(check.hint)
		}
	}
	return nil
}
