package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matloa/secretnotes/internal/models"
)

func newTestNoteRepo(t *testing.T) (*NoteRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewNoteRepository(db), mock, db
}

func TestNoteCreate(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	written := time.Date(1993, 9, 23, 10, 10, 10, 0, time.UTC)

	mock.ExpectExec("INSERT INTO notes").
		WithArgs(int64(2), written, "hello my friend", "1234567890").
		WillReturnResult(sqlmock.NewResult(1, 1))

	note := &models.Note{
		OwnerID:   2,
		WrittenAt: written,
		Body:      "hello my friend",
		PublicID:  "1234567890",
	}
	require.NoError(t, repo.Create(note))
	assert.Equal(t, int64(1), note.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNoteCreate_DBError(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO notes").
		WillReturnError(errors.New("database is locked"))

	err := repo.Create(&models.Note{OwnerID: 1, Body: "x", PublicID: "1234567890"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create note")
}

func TestNoteListByOwner(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "written_at", "body", "public_id"}).
		AddRow(1, 2, now, "hello my friend", "1234567890").
		AddRow(2, 2, now, "i want lunch pls", "1234567891")

	mock.ExpectQuery("SELECT id, owner_id, written_at, body, public_id").
		WithArgs(int64(2)).
		WillReturnRows(rows)

	notes, err := repo.ListByOwner(2)
	require.NoError(t, err)
	require.Len(t, notes, 2)

	// Insertion order
	assert.Equal(t, int64(1), notes[0].ID)
	assert.Equal(t, int64(2), notes[1].ID)
	assert.Equal(t, "hello my friend", notes[0].Body)
	assert.Equal(t, "1234567891", notes[1].PublicID)
}

func TestNoteListByOwner_Empty(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "owner_id", "written_at", "body", "public_id"})

	mock.ExpectQuery("SELECT id, owner_id, written_at, body, public_id").
		WithArgs(int64(5)).
		WillReturnRows(rows)

	notes, err := repo.ListByOwner(5)
	require.NoError(t, err)
	assert.Empty(t, notes)
}

func TestNoteFindByPublicID(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "owner_id", "written_at", "body", "public_id"}).
		AddRow(1, 2, now, "hello my friend", "1234567890")

	mock.ExpectQuery("SELECT id, owner_id, written_at, body, public_id").
		WithArgs("1234567890").
		WillReturnRows(rows)

	note, err := repo.FindByPublicID("1234567890")
	require.NoError(t, err)
	assert.Equal(t, int64(2), note.OwnerID)
	assert.Equal(t, "1234567890", note.PublicID)
}

func TestNoteFindByPublicID_NotFound(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, owner_id, written_at, body, public_id").
		WithArgs("0000000000").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByPublicID("0000000000")
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteCountByOwner(t *testing.T) {
	repo, mock, db := newTestNoteRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountByOwner(2)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
