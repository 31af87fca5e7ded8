package notes

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/matloa/secretnotes/internal/db/repository"
	"github.com/matloa/secretnotes/internal/models"
)

// Business-rule rejections. The error text is the user-facing message;
// handlers surface it inline. Anything else coming out of the service is
// a storage fault and must be replaced with a generic message.
var (
	ErrEmptyNote     = errors.New("Note cannot be empty.")
	ErrNoteTooLong   = fmt.Errorf("Note is too long. Max length is %d characters.", models.MaxNoteLength)
	ErrImportTooLong = fmt.Errorf("Imported note is too long. Max length is %d characters.", models.MaxNoteLength)
	ErrBadPublicID   = errors.New("Invalid Note ID format. It must be a 10-digit number.")
	ErrNoSuchNote    = errors.New("No such note with that ID!")
)

var publicIDRe = regexp.MustCompile(`^\d{10}$`)

// IsRejection reports whether err is a business-rule rejection rather
// than a storage fault.
func IsRejection(err error) bool {
	return errors.Is(err, ErrEmptyNote) ||
		errors.Is(err, ErrNoteTooLong) ||
		errors.Is(err, ErrImportTooLong) ||
		errors.Is(err, ErrBadPublicID) ||
		errors.Is(err, ErrNoSuchNote)
}

// Service enforces per-user note ownership and implements the
// cross-user import path.
type Service struct {
	noteRepo *repository.NoteRepository
}

// NewService creates a new note service
func NewService(noteRepo *repository.NoteRepository) *Service {
	return &Service{noteRepo: noteRepo}
}

// Add validates and persists a new note owned by ownerID. The note gets
// the current timestamp and a freshly generated 10-digit public ID.
func (s *Service) Add(ownerID int64, body string) (*models.Note, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrEmptyNote
	}
	// The limit is in characters, not bytes
	if utf8.RuneCountInString(body) > models.MaxNoteLength {
		return nil, ErrNoteTooLong
	}

	publicID, err := generatePublicID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	note := &models.Note{
		OwnerID:   ownerID,
		WrittenAt: time.Now(),
		Body:      body,
		PublicID:  publicID,
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}

	return note, nil
}

// Import copies the note carrying publicID into a new row owned by
// ownerID. Timestamp, body and public ID are copied verbatim, so the
// imported note can itself be imported again. Any user's note can be
// imported; the lookup performs no ownership check.
func (s *Service) Import(ownerID int64, publicID string) (*models.Note, error) {
	publicID = strings.TrimSpace(publicID)
	if !publicIDRe.MatchString(publicID) {
		return nil, ErrBadPublicID
	}

	source, err := s.noteRepo.FindByPublicID(publicID)
	if errors.Is(err, repository.ErrNoteNotFound) {
		return nil, ErrNoSuchNote
	}
	if err != nil {
		return nil, err
	}

	// Rows predating the length limit may exceed it
	if utf8.RuneCountInString(source.Body) > models.MaxNoteLength {
		return nil, ErrImportTooLong
	}

	note := &models.Note{
		OwnerID:   ownerID,
		WrittenAt: source.WrittenAt,
		Body:      source.Body,
		PublicID:  source.PublicID,
	}

	if err := s.noteRepo.Create(note); err != nil {
		return nil, err
	}

	return note, nil
}

// List returns all notes owned by ownerID in insertion order
func (s *Service) List(ownerID int64) ([]*models.Note, error) {
	return s.noteRepo.ListByOwner(ownerID)
}

// generatePublicID draws a random 10-digit identifier, uniform over
// [1000000000, 9999999999]. Collisions with existing notes are not
// checked; the ID space makes them rare and the schema tolerates them.
func generatePublicID() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000000000), nil
}
