package handlers

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Generic user-facing messages. Internal error detail never reaches the
// client; it goes to the server log only.
const (
	MsgWrongCredentials  = "Wrong username or password!"
	MsgInvalidOTP        = "Invalid 2FA code."
	MsgOTPNotConfigured  = "2FA not configured for this account."
	MsgNoteSaveFailed    = "An error occurred while saving the note."
	MsgNoteImportFailed  = "An error occurred during note import."
	MsgNoteListFailed    = "Could not retrieve notes due to a server error."
	MsgRegistrationError = "An error occurred during registration."
	MsgServerError       = "An error occurred. Please try again."
)

// RespondError sends an error response
func RespondError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}
