package models

// User represents a user account
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // Never expose password hash in JSON
	OTPSecret    string `json:"-"` // Never expose TOTP secret in JSON
}

// HasOTP reports whether the account is enrolled in two-factor auth.
// An empty secret means the user was created under the legacy profile
// and logs in with password only.
func (u *User) HasOTP() bool {
	return u.OTPSecret != ""
}
