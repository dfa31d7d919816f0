package response

import (
	"time"

	"clinic-backend/internal/data/entity"
)

type PatientResponse struct {
	ID          string    `json:"id"`
	FullName    string    `json:"full_name"`
	Email       *string   `json:"email,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	DateOfBirth *string   `json:"date_of_birth,omitempty"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func PatientToResponse(patient *entity.Patient) PatientResponse {
	resp := PatientResponse{
		ID:        patient.ID.String(),
		FullName:  patient.FullName,
		Email:     patient.Email,
		Phone:     patient.Phone,
		Notes:     patient.Notes,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}

	if patient.DateOfBirth != nil {
		dob := patient.DateOfBirth.Format("2006-01-02")
		resp.DateOfBirth = &dob
	}

	return resp
}
