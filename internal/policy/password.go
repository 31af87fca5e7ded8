package policy

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

var (
	upperRe   = regexp.MustCompile(`[A-Z]`)
	lowerRe   = regexp.MustCompile(`[a-z]`)
	digitRe   = regexp.MustCompile(`[0-9]`)
	specialRe = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// Validator checks candidate passwords against the account policy.
// The minimum length comes from the deployment security profile;
// the character-class rules are fixed.
type Validator struct {
	minLength int
}

// NewValidator creates a password validator with the given minimum length
func NewValidator(minLength int) *Validator {
	return &Validator{minLength: minLength}
}

// Validate checks a candidate password against all rules. It returns an
// empty string when the password is acceptable, otherwise the message for
// the first failing rule. Rules are evaluated in a fixed order so the
// user-facing message is deterministic.
func (v *Validator) Validate(password string) string {
	// Length is counted in characters, not bytes
	if utf8.RuneCountInString(password) < v.minLength {
		return fmt.Sprintf("Password must be at least %d characters", v.minLength)
	}
	if !upperRe.MatchString(password) {
		return "Password must include at least one uppercase letter"
	}
	if !lowerRe.MatchString(password) {
		return "Password must include at least one lowercase letter"
	}
	if !digitRe.MatchString(password) {
		return "Password must include at least one number"
	}
	if !specialRe.MatchString(password) {
		return "Password must include at least one special character"
	}
	return ""
}
