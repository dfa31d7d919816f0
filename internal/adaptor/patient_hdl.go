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

type PatientHandler struct {
	service usecase.PatientService
	log     *zap.Logger
}

func NewPatientHandler(service usecase.PatientService, log *zap.Logger) *PatientHandler {
	return &PatientHandler{
		service: service,
		log:     log.With(zap.String("handler", "patient")),
	}
}

// CreatePatient handles POST /api/patients
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	patient, err := h.service.CreatePatient(r.Context(), clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create patient")
		return
	}

	utils.ResponseCreated(w, "Patient created successfully", patient)
}

// GetPatient handles GET /api/patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	patientID := chi.URLParam(r, "id")

	patient, err := h.service.GetPatient(r.Context(), patientID, clinicianID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get patient")
		return
	}

	utils.ResponseSuccess(w, "success", patient)
}

// ListPatients handles GET /api/patients
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	patients, err := h.service.ListPatients(r.Context(), clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list patients")
		return
	}

	utils.ResponseSuccess(w, "success", patients)
}

// UpdatePatient handles PUT /api/patients/{id}
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	patientID := chi.URLParam(r, "id")

	var req request.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	patient, err := h.service.UpdatePatient(r.Context(), patientID, clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update patient")
		return
	}

	utils.ResponseSuccess(w, "Patient updated successfully", patient)
}

// DeletePatient handles DELETE /api/patients/{id}
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	patientID := chi.URLParam(r, "id")

	if err := h.service.DeletePatient(r.Context(), patientID, clinicianID.String()); err != nil {
		handleServiceError(w, h.log, err, "delete patient")
		return
	}

	utils.ResponseSuccess(w, "Patient deleted successfully", nil)
}
