package request

type CreateNoteRequest struct {
	PatientID   string `json:"patient_id" validate:"required,uuid"`
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Content     string `json:"content" validate:"required,min=1"`
	SessionDate string `json:"session_date" validate:"required,datetime=2006-01-02"`
}

type UpdateNoteRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Content     string `json:"content" validate:"required,min=1"`
	SessionDate string `json:"session_date" validate:"required,datetime=2006-01-02"`
}
