package response

import (
	"time"

	"clinic-backend/internal/data/entity"
)

type MaterialResponse struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	URL         string    `json:"url"`
	ContentType *string   `json:"content_type,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MaterialToResponse(material *entity.Material) MaterialResponse {
	return MaterialResponse{
		ID:          material.ID.String(),
		PatientID:   material.PatientID.String(),
		Title:       material.Title,
		Description: material.Description,
		URL:         material.URL,
		ContentType: material.ContentType,
		CreatedAt:   material.CreatedAt,
		UpdatedAt:   material.UpdatedAt,
	}
}
