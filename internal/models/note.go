package models

import "time"

// MaxNoteLength is the maximum accepted note body length, in characters.
const MaxNoteLength = 500

// Note represents a single note row. A note belongs to exactly one owner,
// fixed at creation time. Importing another user's note copies the row
// under a new owner; ownership is never transferred.
type Note struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"-"`
	WrittenAt time.Time `json:"written_at"`
	Body      string    `json:"body"`
	// PublicID is the externally shareable 10-digit identifier used by
	// the import feature. It is copied verbatim on import and is not
	// guaranteed unique across rows.
	PublicID string `json:"public_id"`
}
