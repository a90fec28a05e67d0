package models

import "time"

// NoteFile records one uploaded document belonging to a subject.
type NoteFile struct {
	Filename     string    `json:"filename"`      // stored name, unique per subject
	OriginalName string    `json:"original_name"` // name the user uploaded
	UploadedAt   time.Time `json:"uploaded_at"`
}

// Subject scopes a user's notes and questions. All chunks and note files hang
// off a subject; deleting it removes them en masse.
type Subject struct {
	ID        string     `json:"id"` // sub_{uuid}
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Notes     []NoteFile `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
