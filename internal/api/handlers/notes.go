package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/matloa/secretnotes/internal/api/middleware"
	"github.com/matloa/secretnotes/internal/models"
	"github.com/matloa/secretnotes/internal/notes"
)

// Note actions accepted by the notes endpoint
const (
	ActionAddNote    = "add"
	ActionImportNote = "import"
)

// NotesHandler handles note listing, creation and import
type NotesHandler struct {
	svc *notes.Service
}

// NewNotesHandler creates a new notes handler
func NewNotesHandler(svc *notes.Service) *NotesHandler {
	return &NotesHandler{svc: svc}
}

// List returns the caller's notes in insertion order
// GET /notes
func (h *NotesHandler) List(c *gin.Context) {
	ownerID := middleware.UserID(c)

	list, err := h.svc.List(ownerID)
	if err != nil {
		log.Printf("Error listing notes: %v", err)
		RespondError(c, http.StatusInternalServerError, "database_error", MsgNoteListFailed)
		return
	}
	if list == nil {
		list = []*models.Note{}
	}

	c.JSON(http.StatusOK, gin.H{"notes": list})
}

// NoteActionRequest is the tagged request for the notes endpoint: the
// action name selects which payload field applies
type NoteActionRequest struct {
	Action string `json:"action" binding:"required"`
	Note   string `json:"note"`
	NoteID string `json:"note_id"`
}

// Action dispatches an add or import request
// POST /notes
func (h *NotesHandler) Action(c *gin.Context) {
	var req NoteActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return
	}

	ownerID := middleware.UserID(c)

	switch req.Action {
	case ActionAddNote:
		h.add(c, ownerID, req.Note)
	case ActionImportNote:
		h.importNote(c, ownerID, req.NoteID)
	default:
		RespondError(c, http.StatusBadRequest, "unknown_action", "Unknown action")
	}
}

func (h *NotesHandler) add(c *gin.Context, ownerID int64, body string) {
	note, err := h.svc.Add(ownerID, body)
	if notes.IsRejection(err) {
		// Inline error; the request itself succeeds
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Error saving note: %v", err)
		RespondError(c, http.StatusInternalServerError, "database_error", MsgNoteSaveFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"note": note})
}

func (h *NotesHandler) importNote(c *gin.Context, ownerID int64, publicID string) {
	note, err := h.svc.Import(ownerID, publicID)
	if notes.IsRejection(err) {
		c.JSON(http.StatusOK, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		log.Printf("Error importing note: %v", err)
		RespondError(c, http.StatusInternalServerError, "database_error", MsgNoteImportFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Note imported successfully!",
		"note":    note,
	})
}
