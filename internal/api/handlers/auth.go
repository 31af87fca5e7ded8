package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matloa/secretnotes/internal/auth"
	"github.com/matloa/secretnotes/internal/config"
	"github.com/matloa/secretnotes/internal/db/repository"
	"github.com/matloa/secretnotes/internal/models"
	"github.com/matloa/secretnotes/internal/policy"
	"github.com/matloa/secretnotes/internal/session"
)

// AuthHandler handles registration, 2FA confirmation, login and logout
type AuthHandler struct {
	profile  config.SecurityProfile
	policy   *policy.Validator
	userRepo *repository.UserRepository
	sessions *session.Manager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, userRepo *repository.UserRepository, sessions *session.Manager) *AuthHandler {
	profile := cfg.Profile()
	return &AuthHandler{
		profile:  profile,
		policy:   policy.NewValidator(profile.MinPasswordLength),
		userRepo: userRepo,
		sessions: sessions,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register handles the initial registration submission
// POST /register
//
// Under the hardened profile the user is not persisted yet: the hashed
// credentials and a fresh TOTP secret are parked in the session until
// the client confirms a code from its authenticator app. Under the
// legacy profile the user is created immediately, without 2FA.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	usernameError := ""
	passwordError := h.policy.Validate(req.Password)

	taken, err := h.userRepo.UsernameTaken(req.Username)
	if err != nil {
		log.Printf("Error checking username: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgRegistrationError)
		return
	}
	if taken {
		usernameError = "Please choose another username."
	}

	if usernameError != "" || passwordError != "" {
		// Validation errors are inline; the request itself succeeds
		c.JSON(http.StatusOK, gin.H{
			"registered":     false,
			"username_error": usernameError,
			"password_error": passwordError,
		})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgRegistrationError)
		return
	}

	if !h.profile.RequireOTP {
		user := &models.User{Username: req.Username, PasswordHash: passwordHash}
		if err := h.userRepo.Create(user); err != nil {
			log.Printf("Error creating user: %v", err)
			RespondError(c, http.StatusInternalServerError, "database_error", MsgRegistrationError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"registered": true, "redirect": "/login"})
		return
	}

	secret, err := auth.GenerateTOTPSecret(req.Username)
	if err != nil {
		log.Printf("Error generating TOTP secret: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgRegistrationError)
		return
	}

	uri := auth.ProvisioningURI(secret, req.Username, "")
	qrPNG, err := auth.QRCodePNG(uri)
	if err != nil {
		log.Printf("Error rendering QR code: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgRegistrationError)
		return
	}

	err = h.sessions.BeginRegistration(c, session.PendingRegistration{
		Username:     req.Username,
		PasswordHash: passwordHash,
		OTPSecret:    secret,
	})
	if err != nil {
		log.Printf("Error saving pending registration: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgRegistrationError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"show_qr":       true,
		"qr_png_base64": qrPNG,
		"otp_uri":       uri,
	})
}

// ConfirmRequest represents a 2FA enrollment confirmation
type ConfirmRequest struct {
	Code string `json:"code" binding:"required"`
}

// Confirm verifies the enrollment code and persists the pending user
// POST /register/confirm
//
// Enrollment does not authenticate: the new user still has to log in.
// A wrong code keeps the pending secret so the client can retry.
func (h *AuthHandler) Confirm(c *gin.Context) {
	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	pending, ok := h.sessions.Pending(c)
	if !ok {
		RespondError(c, http.StatusBadRequest, "no_pending_registration", "No registration in progress.")
		return
	}

	if !auth.ValidateTOTP(pending.OTPSecret, req.Code) {
		RespondError(c, http.StatusUnauthorized, "invalid_otp", MsgInvalidOTP)
		return
	}

	user := &models.User{
		Username:     pending.Username,
		PasswordHash: pending.PasswordHash,
		OTPSecret:    pending.OTPSecret,
	}
	if err := h.userRepo.Create(user); err != nil {
		log.Printf("Error creating user: %v", err)
		RespondError(c, http.StatusInternalServerError, "database_error", MsgRegistrationError)
		return
	}

	if err := h.sessions.Clear(c); err != nil {
		log.Printf("Error clearing session: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"registered": true, "redirect": "/login"})
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	OTP      string `json:"otp"`
}

// Login handles authentication
// POST /login
//
// The response never distinguishes an unknown username from a wrong
// password.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	user, err := h.userRepo.GetByUsername(req.Username)
	if errors.Is(err, repository.ErrUserNotFound) {
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", MsgWrongCredentials)
		return
	}
	if err != nil {
		log.Printf("Error looking up user: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgServerError)
		return
	}

	if !auth.VerifyPassword(req.Password, user.PasswordHash) {
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", MsgWrongCredentials)
		return
	}

	if h.profile.RequireOTP {
		if !user.HasOTP() {
			RespondError(c, http.StatusUnauthorized, "otp_not_configured", MsgOTPNotConfigured)
			return
		}
		if !auth.ValidateTOTP(user.OTPSecret, req.OTP) {
			RespondError(c, http.StatusUnauthorized, "invalid_otp", MsgInvalidOTP)
			return
		}
	}

	if err := h.sessions.Authenticate(c, user.ID, user.Username); err != nil {
		log.Printf("Error saving session: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"redirect": "/notes",
	})
}

// Logout clears the session
// POST /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Clear(c); err != nil {
		log.Printf("Error clearing session: %v", err)
		RespondError(c, http.StatusInternalServerError, "internal_error", MsgServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logged_in": false, "redirect": "/"})
}

// Index reports the session state
// GET /
func (h *AuthHandler) Index(c *gin.Context) {
	_, username, ok := h.sessions.Identity(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"logged_in": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"logged_in": true,
		"username":  username,
		"redirect":  "/notes",
	})
}
