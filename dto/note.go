package dto

import (
	"time"

	"github.com/notehub/notehub/model"
)

type CreateNoteRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// UpdateNoteRequest carries partial updates. An empty (or absent) field means
// "keep the existing value" -- there is no way to clear a field through this
// endpoint.
type UpdateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type NoteResponse struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type NotesResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// NoteEnvelope wraps a single note, optionally with an outcome message.
type NoteEnvelope struct {
	Message string       `json:"message,omitempty"`
	Note    NoteResponse `json:"note"`
}

func ToNoteResponse(note *model.Note) NoteResponse {
	return NoteResponse{
		ID:        note.ID,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

func ToNoteResponses(notes []*model.Note) []NoteResponse {
	responses := make([]NoteResponse, len(notes))
	for i, note := range notes {
		responses[i] = ToNoteResponse(note)
	}
	return responses
}
