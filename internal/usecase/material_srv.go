package usecase

import (
	"context"
	"fmt"
	"time"

	"clinic-backend/internal/data/entity"
	"clinic-backend/internal/data/repository"
	"clinic-backend/internal/dto/request"
	"clinic-backend/internal/dto/response"
	"clinic-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MaterialService interface {
	CreateMaterial(ctx context.Context, clinicianID string, req *request.CreateMaterialRequest) (*response.MaterialResponse, error)
	GetMaterial(ctx context.Context, materialID, clinicianID string) (*response.MaterialResponse, error)
	ListPatientMaterials(ctx context.Context, patientID, clinicianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MaterialResponse], error)
	UpdateMaterial(ctx context.Context, materialID, clinicianID string, req *request.UpdateMaterialRequest) (*response.MaterialResponse, error)
	DeleteMaterial(ctx context.Context, materialID, clinicianID string) error
}

type materialService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMaterialService(repo *repository.Repository, log *zap.Logger) MaterialService {
	return &materialService{
		repo: repo,
		log:  log.With(zap.String("service", "material")),
	}
}

func (s *materialService) CreateMaterial(ctx context.Context, clinicianID string, req *request.CreateMaterialRequest) (*response.MaterialResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create material validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	patient, err := s.ownedPatient(ctx, req.PatientID, clinicianID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	material := &entity.Material{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   patient.ID,
		ClinicianID: patient.ClinicianID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ContentType: req.ContentType,
	}

	if err := s.repo.Material.Create(ctx, material); err != nil {
		s.log.Error("Failed to create material",
			zap.Error(err),
			zap.String("patient_id", req.PatientID),
		)
		return nil, fmt.Errorf("create material: %w", err)
	}

	s.log.Info("Material created",
		zap.String("material_id", material.ID.String()),
		zap.String("patient_id", req.PatientID))

	resp := response.MaterialToResponse(material)
	return &resp, nil
}

func (s *materialService) GetMaterial(ctx context.Context, materialID, clinicianID string) (*response.MaterialResponse, error) {
	material, err := s.findOwnedMaterial(ctx, materialID, clinicianID)
	if err != nil {
		return nil, err
	}

	resp := response.MaterialToResponse(material)
	return &resp, nil
}

func (s *materialService) ListPatientMaterials(ctx context.Context, patientID, clinicianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MaterialResponse], error) {
	patient, err := s.ownedPatient(ctx, patientID, clinicianID)
	if err != nil {
		return nil, err
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	materials, err := s.repo.Material.FindByPatient(ctx, patient.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list materials", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("list materials: %w", err)
	}

	total, err := s.repo.Material.CountByPatient(ctx, patient.ID)
	if err != nil {
		s.log.Error("Failed to count materials", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("count materials: %w", err)
	}

	items := make([]response.MaterialResponse, 0, len(materials))
	for _, material := range materials {
		items = append(items, response.MaterialToResponse(material))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *materialService) UpdateMaterial(ctx context.Context, materialID, clinicianID string, req *request.UpdateMaterialRequest) (*response.MaterialResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update material validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	material, err := s.findOwnedMaterial(ctx, materialID, clinicianID)
	if err != nil {
		return nil, err
	}

	material.Title = req.Title
	material.Description = req.Description
	material.URL = req.URL
	material.ContentType = req.ContentType
	material.UpdatedAt = time.Now()

	if err := s.repo.Material.Update(ctx, material); err != nil {
		s.log.Error("Failed to update material", zap.Error(err), zap.String("material_id", materialID))
		return nil, fmt.Errorf("update material: %w", err)
	}

	s.log.Info("Material updated", zap.String("material_id", materialID))

	resp := response.MaterialToResponse(material)
	return &resp, nil
}

func (s *materialService) DeleteMaterial(ctx context.Context, materialID, clinicianID string) error {
	material, err := s.findOwnedMaterial(ctx, materialID, clinicianID)
	if err != nil {
		return err
	}

	if err := s.repo.Material.Delete(ctx, material.ID); err != nil {
		s.log.Error("Failed to delete material", zap.Error(err), zap.String("material_id", materialID))
		return fmt.Errorf("delete material: %w", err)
	}

	s.log.Info("Material deleted", zap.String("material_id", materialID))
	return nil
}

func (s *materialService) findOwnedMaterial(ctx context.Context, materialID, clinicianID string) (*entity.Material, error) {
	materialUUID, err := uuid.Parse(materialID)
	if err != nil {
		return nil, fmt.Errorf("invalid material ID format %s: %w", materialID, err)
	}

	clinicianUUID, err := uuid.Parse(clinicianID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinician ID format %s: %w", clinicianID, err)
	}

	material, err := s.repo.Material.FindByID(ctx, materialUUID)
	if err != nil {
		s.log.Error("Failed to find material", zap.Error(err), zap.String("material_id", materialID))
		return nil, fmt.Errorf("find material: %w", err)
	}

	if material == nil || material.ClinicianID != clinicianUUID {
		return nil, fmt.Errorf("material not found")
	}

	return material, nil
}

func (s *materialService) ownedPatient(ctx context.Context, patientID, clinicianID string) (*entity.Patient, error) {
	patientUUID, err := uuid.Parse(patientID)
	if err != nil {
		return nil, fmt.Errorf("invalid patient ID format %s: %w", patientID, err)
	}

	clinicianUUID, err := uuid.Parse(clinicianID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinician ID format %s: %w", clinicianID, err)
	}

	patient, err := s.repo.Patient.FindByID(ctx, patientUUID)
	if err != nil {
		s.log.Error("Failed to find patient", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("find patient: %w", err)
	}

	if patient == nil || patient.ClinicianID != clinicianUUID {
		return nil, fmt.Errorf("patient not found")
	}

	return patient, nil
}
