package request

type CreateMaterialRequest struct {
	PatientID   string  `json:"patient_id" validate:"required,uuid"`
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	URL         string  `json:"url" validate:"required,url"`
	ContentType *string `json:"content_type,omitempty" validate:"omitempty,max=100"`
}

type UpdateMaterialRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	URL         string  `json:"url" validate:"required,url"`
	ContentType *string `json:"content_type,omitempty" validate:"omitempty,max=100"`
}
