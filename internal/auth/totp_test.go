package auth

import (
	"encoding/base32"
	"encoding/base64"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTOTPSecret(t *testing.T) {
	secret, err := GenerateTOTPSecret("alice")
	require.NoError(t, err)
	require.NotEmpty(t, secret)

	// Standard base32, enough entropy for an authenticator secret
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(raw), 10)

	other, err := GenerateTOTPSecret("alice")
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

func TestValidateTOTP_WithinWindow(t *testing.T) {
	secret, err := GenerateTOTPSecret("alice")
	require.NoError(t, err)

	now := time.Now()

	code, err := totp.GenerateCode(secret, now)
	require.NoError(t, err)
	assert.True(t, ValidateTOTP(secret, code))

	// ±1 step is tolerated for clock skew
	prev, err := totp.GenerateCode(secret, now.Add(-30*time.Second))
	require.NoError(t, err)
	assert.True(t, ValidateTOTP(secret, prev))

	next, err := totp.GenerateCode(secret, now.Add(30*time.Second))
	require.NoError(t, err)
	assert.True(t, ValidateTOTP(secret, next))
}

func TestValidateTOTP_OutsideWindow(t *testing.T) {
	secret, err := GenerateTOTPSecret("alice")
	require.NoError(t, err)

	stale, err := totp.GenerateCode(secret, time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	assert.False(t, ValidateTOTP(secret, stale))
}

func TestValidateTOTP_WrongSecret(t *testing.T) {
	secret, err := GenerateTOTPSecret("alice")
	require.NoError(t, err)
	other, err := GenerateTOTPSecret("bob")
	require.NoError(t, err)

	code, err := totp.GenerateCode(secret, time.Now())
	require.NoError(t, err)
	assert.False(t, ValidateTOTP(other, code))
}

func TestValidateTOTP_MalformedInput(t *testing.T) {
	secret, err := GenerateTOTPSecret("alice")
	require.NoError(t, err)

	// Rejected attempts, never panics or errors
	assert.False(t, ValidateTOTP(secret, ""))
	assert.False(t, ValidateTOTP(secret, "abcdef"))
	assert.False(t, ValidateTOTP(secret, "12345"))
	assert.False(t, ValidateTOTP("%%%not-base32%%%", "123456"))
}

func TestProvisioningURI(t *testing.T) {
	uri := ProvisioningURI("JBSWY3DPEHPK3PXP", "alice", "")

	assert.Contains(t, uri, "otpauth://totp/")
	assert.Contains(t, uri, "SecureNotesApp")
	assert.Contains(t, uri, "alice")
	assert.Contains(t, uri, "secret=JBSWY3DPEHPK3PXP")
}

func TestQRCodePNG(t *testing.T) {
	uri := ProvisioningURI("JBSWY3DPEHPK3PXP", "alice", "")

	encoded, err := QRCodePNG(uri)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	require.NoError(t, err)

	// PNG magic bytes
	require.Greater(t, len(raw), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, raw[:4])
}
