package request

type CreatePatientRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type UpdatePatientRequest struct {
	FullName    string  `json:"full_name" validate:"required,min=2,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	DateOfBirth *string `json:"date_of_birth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}
