package adaptor

import (
	"encoding/json"
	"net/http"

	"clinic-backend/internal/dto/request"
	"clinic-backend/internal/usecase"
	"clinic-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NoteHandler struct {
	service usecase.NoteService
	log     *zap.Logger
}

func NewNoteHandler(service usecase.NoteService, log *zap.Logger) *NoteHandler {
	return &NoteHandler{
		service: service,
		log:     log.With(zap.String("handler", "note")),
	}
}

// CreateNote handles POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	note, err := h.service.CreateNote(r.Context(), clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create note")
		return
	}

	utils.ResponseCreated(w, "Note created successfully", note)
}

// GetNote handles GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	noteID := chi.URLParam(r, "id")

	note, err := h.service.GetNote(r.Context(), noteID, clinicianID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get note")
		return
	}

	utils.ResponseSuccess(w, "success", note)
}

// ListPatientNotes handles GET /api/patients/{id}/notes
func (h *NoteHandler) ListPatientNotes(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	patientID := chi.URLParam(r, "id")

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	notes, err := h.service.ListPatientNotes(r.Context(), patientID, clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list notes")
		return
	}

	utils.ResponseSuccess(w, "success", notes)
}

// UpdateNote handles PUT /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	noteID := chi.URLParam(r, "id")

	var req request.UpdateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	note, err := h.service.UpdateNote(r.Context(), noteID, clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update note")
		return
	}

	utils.ResponseSuccess(w, "Note updated successfully", note)
}

// DeleteNote handles DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	noteID := chi.URLParam(r, "id")

	if err := h.service.DeleteNote(r.Context(), noteID, clinicianID.String()); err != nil {
		handleServiceError(w, h.log, err, "delete note")
		return
	}

	utils.ResponseSuccess(w, "Note deleted successfully", nil)
}
