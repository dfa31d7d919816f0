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

type PatientService interface {
	CreatePatient(ctx context.Context, clinicianID string, req *request.CreatePatientRequest) (*response.PatientResponse, error)
	GetPatient(ctx context.Context, patientID, clinicianID string) (*response.PatientResponse, error)
	ListPatients(ctx context.Context, clinicianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PatientResponse], error)
	UpdatePatient(ctx context.Context, patientID, clinicianID string, req *request.UpdatePatientRequest) (*response.PatientResponse, error)
	DeletePatient(ctx context.Context, patientID, clinicianID string) error
}

type patientService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewPatientService(repo *repository.Repository, log *zap.Logger) PatientService {
	return &patientService{
		repo: repo,
		log:  log.With(zap.String("service", "patient")),
	}
}

func (s *patientService) CreatePatient(ctx context.Context, clinicianID string, req *request.CreatePatientRequest) (*response.PatientResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create patient validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	clinicianUUID, err := uuid.Parse(clinicianID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinician ID format %s: %w", clinicianID, err)
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}

	now := time.Now()
	patient := &entity.Patient{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicianID: clinicianUUID,
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dob,
		Notes:       req.Notes,
	}

	if err := s.repo.Patient.Create(ctx, patient); err != nil {
		s.log.Error("Failed to create patient",
			zap.Error(err),
			zap.String("clinician_id", clinicianID),
		)
		return nil, fmt.Errorf("create patient: %w", err)
	}

	s.log.Info("Patient created",
		zap.String("patient_id", patient.ID.String()),
		zap.String("clinician_id", clinicianID))

	resp := response.PatientToResponse(patient)
	return &resp, nil
}

func (s *patientService) GetPatient(ctx context.Context, patientID, clinicianID string) (*response.PatientResponse, error) {
	patient, err := s.findOwnedPatient(ctx, patientID, clinicianID)
	if err != nil {
		return nil, err
	}

	resp := response.PatientToResponse(patient)
	return &resp, nil
}

func (s *patientService) ListPatients(ctx context.Context, clinicianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.PatientResponse], error) {
	clinicianUUID, err := uuid.Parse(clinicianID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinician ID format %s: %w", clinicianID, err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}

	patients, err := s.repo.Patient.FindByClinician(ctx, clinicianUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list patients", zap.Error(err), zap.String("clinician_id", clinicianID))
		return nil, fmt.Errorf("list patients: %w", err)
	}

	total, err := s.repo.Patient.CountByClinician(ctx, clinicianUUID)
	if err != nil {
		s.log.Error("Failed to count patients", zap.Error(err), zap.String("clinician_id", clinicianID))
		return nil, fmt.Errorf("count patients: %w", err)
	}

	items := make([]response.PatientResponse, 0, len(patients))
	for _, patient := range patients {
		items = append(items, response.PatientToResponse(patient))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *patientService) UpdatePatient(ctx context.Context, patientID, clinicianID string, req *request.UpdatePatientRequest) (*response.PatientResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update patient validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	patient, err := s.findOwnedPatient(ctx, patientID, clinicianID)
	if err != nil {
		return nil, err
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date of birth: %w", err)
	}

	patient.FullName = req.FullName
	patient.Email = req.Email
	patient.Phone = req.Phone
	patient.DateOfBirth = dob
	patient.Notes = req.Notes
	patient.UpdatedAt = time.Now()

	if err := s.repo.Patient.Update(ctx, patient); err != nil {
		s.log.Error("Failed to update patient",
			zap.Error(err),
			zap.String("patient_id", patientID),
		)
		return nil, fmt.Errorf("update patient: %w", err)
	}

	s.log.Info("Patient updated",
		zap.String("patient_id", patientID),
		zap.String("clinician_id", clinicianID))

	resp := response.PatientToResponse(patient)
	return &resp, nil
}

func (s *patientService) DeletePatient(ctx context.Context, patientID, clinicianID string) error {
	patient, err := s.findOwnedPatient(ctx, patientID, clinicianID)
	if err != nil {
		return err
	}

	if err := s.repo.Patient.Delete(ctx, patient.ID); err != nil {
		s.log.Error("Failed to delete patient",
			zap.Error(err),
			zap.String("patient_id", patientID),
		)
		return fmt.Errorf("delete patient: %w", err)
	}

	s.log.Info("Patient deleted",
		zap.String("patient_id", patientID),
		zap.String("clinician_id", clinicianID))

	return nil
}

// findOwnedPatient loads the patient and enforces ownership. A patient that
// belongs to another clinician is reported as not found, so the endpoint
// leaks nothing about other caseloads.
func (s *patientService) findOwnedPatient(ctx context.Context, patientID, clinicianID string) (*entity.Patient, error) {
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

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
