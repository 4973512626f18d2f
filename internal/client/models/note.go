// Package models defines the data shapes exchanged with the NoteSphere
// backend and shared across client layers. Field tags follow the server's
// JSON exactly; note and user ids arrive as "_id".
package models

import "time"

// Attachment is one uploaded file belonging to a note. The order of a
// note's attachments is significant: download and view URL lists returned
// by the note details endpoint are index-aligned with it.
type Attachment struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

type Note struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Subject     string       `json:"subject"`
	Topics      []string     `json:"topics"`
	Attachments []Attachment `json:"filePath"`
	User        User         `json:"user"`
	Stars       int          `json:"stars"`
	StarredBy   []string     `json:"starredBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
	Semester    int          `json:"semester"`
}

// NoteDetails bundles a note with the signed URL lists returned by the
// details endpoint. DownloadURLs[i] and ViewURLs[i] belong to
// Note.Attachments[i]; callers must not reorder either side.
type NoteDetails struct {
	Note         Note
	DownloadURLs []string
	ViewURLs     []string
}

// Valid reports whether the note carries the minimum fields the client is
// willing to display. The backend occasionally returns records with blank
// titles; listings skip them.
func (n *Note) Valid() bool {
	return n.Title != "" && n.Subject != ""
}

// IsStarredBy reports whether the given user id appears in the note's
// starred-by set.
func (n *Note) IsStarredBy(userID string) bool {
	if userID == "" {
		return false
	}
	for _, id := range n.StarredBy {
		if id == userID {
			return true
		}
	}
	return false
}
