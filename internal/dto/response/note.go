package response

import (
	"time"

	"clinic-backend/internal/data/entity"
)

type NoteResponse struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	SessionDate string    `json:"session_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NoteToResponse(note *entity.Note) NoteResponse {
	return NoteResponse{
		ID:          note.ID.String(),
		PatientID:   note.PatientID.String(),
		Title:       note.Title,
		Content:     note.Content,
		SessionDate: note.SessionDate.Format("2006-01-02"),
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}
}
