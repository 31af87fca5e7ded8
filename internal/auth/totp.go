package auth

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pquerna/otp/totp"
)

const (
	totpIssuer = "SecureNotesApp"
)

// GenerateTOTPSecret generates a new TOTP shared secret for an account
func GenerateTOTPSecret(account string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: account,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}

	return key.Secret(), nil
}

// ProvisioningURI builds the otpauth:// enrollment URI for a secret.
// Authenticator apps consume this (usually via a QR code) to start
// generating codes.
func ProvisioningURI(secret, account, issuer string) string {
	if issuer == "" {
		issuer = totpIssuer
	}

	return fmt.Sprintf("otpauth://totp/%s:%s?secret=%s&issuer=%s",
		url.QueryEscape(issuer),
		url.QueryEscape(account),
		secret,
		url.QueryEscape(issuer))
}

// ValidateTOTP validates a submitted code against a secret.
// Allows for ±1 time window to account for clock skew. A malformed
// secret or code is an ordinary rejected attempt, never an error.
func ValidateTOTP(secret, code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	return totp.Validate(code, secret)
}
