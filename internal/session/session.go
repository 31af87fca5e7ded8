// Package session manages the per-client authentication state: the
// authenticated identity, and the transient pending-registration state
// carried between the registration submit and the 2FA confirmation.
// Exactly one of {unauthenticated, pending, authenticated} holds at a
// time; entering one shape clears the others.
package session

import (
	"fmt"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// CookieName is the session cookie issued to clients
const CookieName = "notes_session"

const (
	keyLoggedIn = "logged_in"
	keyUserID   = "user_id"
	keyUsername = "username"

	keyPendingUsername     = "pending_username"
	keyPendingPasswordHash = "pending_password_hash"
	keyPendingOTPSecret    = "pending_otp_secret"
)

// PendingRegistration holds unconfirmed enrollment data between the
// initial registration submission and the OTP confirmation.
type PendingRegistration struct {
	Username     string
	PasswordHash string
	OTPSecret    string
}

// Manager reads and writes authentication state through the session
// store registered on the router. It only uses the get/set/clear/save
// capability, so the backing store can be swapped without touching it.
type Manager struct{}

// NewManager creates a session manager
func NewManager() *Manager {
	return &Manager{}
}

// Identity returns the authenticated user, if any
func (m *Manager) Identity(c *gin.Context) (int64, string, bool) {
	s := sessions.Default(c)

	loggedIn, ok := s.Get(keyLoggedIn).(bool)
	if !ok || !loggedIn {
		return 0, "", false
	}

	userID, ok := s.Get(keyUserID).(int64)
	if !ok {
		return 0, "", false
	}

	username, ok := s.Get(keyUsername).(string)
	if !ok {
		return 0, "", false
	}

	return userID, username, true
}

// Authenticate transitions the session to the authenticated state,
// discarding any pending registration
func (m *Manager) Authenticate(c *gin.Context, userID int64, username string) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(keyLoggedIn, true)
	s.Set(keyUserID, userID)
	s.Set(keyUsername, username)

	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// BeginRegistration stores the pending enrollment triple, overwriting
// any stale pending state
func (m *Manager) BeginRegistration(c *gin.Context, pending PendingRegistration) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(keyPendingUsername, pending.Username)
	s.Set(keyPendingPasswordHash, pending.PasswordHash)
	s.Set(keyPendingOTPSecret, pending.OTPSecret)

	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Pending returns the pending registration. ok is false unless all
// three fields are present.
func (m *Manager) Pending(c *gin.Context) (PendingRegistration, bool) {
	s := sessions.Default(c)

	username, _ := s.Get(keyPendingUsername).(string)
	passwordHash, _ := s.Get(keyPendingPasswordHash).(string)
	otpSecret, _ := s.Get(keyPendingOTPSecret).(string)

	if username == "" || passwordHash == "" || otpSecret == "" {
		return PendingRegistration{}, false
	}

	return PendingRegistration{
		Username:     username,
		PasswordHash: passwordHash,
		OTPSecret:    otpSecret,
	}, true
}

// Clear returns the session to the unauthenticated state from any
// state, discarding all fields
func (m *Manager) Clear(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()

	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
