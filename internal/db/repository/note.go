package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matloa/secretnotes/internal/models"
)

// ErrNoteNotFound is returned when no note matches the lookup
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository handles note data access
type NoteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(db *sql.DB) *NoteRepository {
	return &NoteRepository{db: db}
}

// Create inserts a new note row
func (r *NoteRepository) Create(note *models.Note) error {
	query := `
		INSERT INTO notes (owner_id, written_at, body, public_id)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query,
		note.OwnerID,
		note.WrittenAt,
		note.Body,
		note.PublicID,
	)
	if err != nil {
		return fmt.Errorf("failed to create note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	note.ID = id

	return nil
}

// ListByOwner retrieves all notes for a user in insertion order
func (r *NoteRepository) ListByOwner(ownerID int64) ([]*models.Note, error) {
	query := `
		SELECT id, owner_id, written_at, body, public_id
		FROM notes
		WHERE owner_id = ?
		ORDER BY id
	`

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note

	for rows.Next() {
		note := &models.Note{}

		err := rows.Scan(
			&note.ID,
			&note.OwnerID,
			&note.WrittenAt,
			&note.Body,
			&note.PublicID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}

		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// FindByPublicID retrieves the first note carrying the given public ID,
// regardless of owner. The import path deliberately performs no
// ownership check here.
func (r *NoteRepository) FindByPublicID(publicID string) (*models.Note, error) {
	query := `
		SELECT id, owner_id, written_at, body, public_id
		FROM notes
		WHERE public_id = ?
		ORDER BY id
		LIMIT 1
	`

	note := &models.Note{}

	err := r.db.QueryRow(query, publicID).Scan(
		&note.ID,
		&note.OwnerID,
		&note.WrittenAt,
		&note.Body,
		&note.PublicID,
	)

	if err == sql.ErrNoRows {
		return nil, ErrNoteNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note: %w", err)
	}

	return note, nil
}

// CountByOwner returns the number of notes a user owns
func (r *NoteRepository) CountByOwner(ownerID int64) (int, error) {
	query := `SELECT COUNT(*) FROM notes WHERE owner_id = ?`

	var count int
	if err := r.db.QueryRow(query, ownerID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count notes: %w", err)
	}

	return count, nil
}
