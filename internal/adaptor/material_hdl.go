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

type MaterialHandler struct {
	service usecase.MaterialService
	log     *zap.Logger
}

func NewMaterialHandler(service usecase.MaterialService, log *zap.Logger) *MaterialHandler {
	return &MaterialHandler{
		service: service,
		log:     log.With(zap.String("handler", "material")),
	}
}

// CreateMaterial handles POST /api/materials
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	material, err := h.service.CreateMaterial(r.Context(), clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create material")
		return
	}

	utils.ResponseCreated(w, "Material created successfully", material)
}

// GetMaterial handles GET /api/materials/{id}
func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	materialID := chi.URLParam(r, "id")

	material, err := h.service.GetMaterial(r.Context(), materialID, clinicianID.String())
	if err != nil {
		handleServiceError(w, h.log, err, "get material")
		return
	}

	utils.ResponseSuccess(w, "success", material)
}

// ListPatientMaterials handles GET /api/patients/{id}/materials
func (h *MaterialHandler) ListPatientMaterials(w http.ResponseWriter, r *http.Request) {
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

	materials, err := h.service.ListPatientMaterials(r.Context(), patientID, clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "list materials")
		return
	}

	utils.ResponseSuccess(w, "success", materials)
}

// UpdateMaterial handles PUT /api/materials/{id}
func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	materialID := chi.URLParam(r, "id")

	var req request.UpdateMaterialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	material, err := h.service.UpdateMaterial(r.Context(), materialID, clinicianID.String(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update material")
		return
	}

	utils.ResponseSuccess(w, "Material updated successfully", material)
}

// DeleteMaterial handles DELETE /api/materials/{id}
func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	clinicianID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	materialID := chi.URLParam(r, "id")

	if err := h.service.DeleteMaterial(r.Context(), materialID, clinicianID.String()); err != nil {
		handleServiceError(w, h.log, err, "delete material")
		return
	}

	utils.ResponseSuccess(w, "Material deleted successfully", nil)
}
