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

type NoteService interface {
	CreateNote(ctx context.Context, clinicianID string, req *request.CreateNoteRequest) (*response.NoteResponse, error)
	GetNote(ctx context.Context, noteID, clinicianID string) (*response.NoteResponse, error)
	ListPatientNotes(ctx context.Context, patientID, clinicianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NoteResponse], error)
	UpdateNote(ctx context.Context, noteID, clinicianID string, req *request.UpdateNoteRequest) (*response.NoteResponse, error)
	DeleteNote(ctx context.Context, noteID, clinicianID string) error
}

type noteService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewNoteService(repo *repository.Repository, log *zap.Logger) NoteService {
	return &noteService{
		repo: repo,
		log:  log.With(zap.String("service", "note")),
	}
}

func (s *noteService) CreateNote(ctx context.Context, clinicianID string, req *request.CreateNoteRequest) (*response.NoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create note validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// The patient must exist and belong to the caller
	patient, err := s.ownedPatient(ctx, req.PatientID, clinicianID)
	if err != nil {
		return nil, err
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid session date: %w", err)
	}

	now := time.Now()
	note := &entity.Note{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		PatientID:   patient.ID,
		ClinicianID: patient.ClinicianID,
		Title:       req.Title,
		Content:     req.Content,
		SessionDate: sessionDate,
	}

	if err := s.repo.Note.Create(ctx, note); err != nil {
		s.log.Error("Failed to create note",
			zap.Error(err),
			zap.String("patient_id", req.PatientID),
		)
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.log.Info("Note created",
		zap.String("note_id", note.ID.String()),
		zap.String("patient_id", req.PatientID))

	resp := response.NoteToResponse(note)
	return &resp, nil
}

func (s *noteService) GetNote(ctx context.Context, noteID, clinicianID string) (*response.NoteResponse, error) {
	note, err := s.findOwnedNote(ctx, noteID, clinicianID)
	if err != nil {
		return nil, err
	}

	resp := response.NoteToResponse(note)
	return &resp, nil
}

func (s *noteService) ListPatientNotes(ctx context.Context, patientID, clinicianID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.NoteResponse], error) {
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

	notes, err := s.repo.Note.FindByPatient(ctx, patient.ID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list notes", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("list notes: %w", err)
	}

	total, err := s.repo.Note.CountByPatient(ctx, patient.ID)
	if err != nil {
		s.log.Error("Failed to count notes", zap.Error(err), zap.String("patient_id", patientID))
		return nil, fmt.Errorf("count notes: %w", err)
	}

	items := make([]response.NoteResponse, 0, len(notes))
	for _, note := range notes {
		items = append(items, response.NoteToResponse(note))
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *noteService) UpdateNote(ctx context.Context, noteID, clinicianID string, req *request.UpdateNoteRequest) (*response.NoteResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update note validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	note, err := s.findOwnedNote(ctx, noteID, clinicianID)
	if err != nil {
		return nil, err
	}

	sessionDate, err := time.Parse("2006-01-02", req.SessionDate)
	if err != nil {
		return nil, fmt.Errorf("invalid session date: %w", err)
	}

	note.Title = req.Title
	note.Content = req.Content
	note.SessionDate = sessionDate
	note.UpdatedAt = time.Now()

	if err := s.repo.Note.Update(ctx, note); err != nil {
		s.log.Error("Failed to update note", zap.Error(err), zap.String("note_id", noteID))
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.log.Info("Note updated", zap.String("note_id", noteID))

	resp := response.NoteToResponse(note)
	return &resp, nil
}

func (s *noteService) DeleteNote(ctx context.Context, noteID, clinicianID string) error {
	note, err := s.findOwnedNote(ctx, noteID, clinicianID)
	if err != nil {
		return err
	}

	if err := s.repo.Note.Delete(ctx, note.ID); err != nil {
		s.log.Error("Failed to delete note", zap.Error(err), zap.String("note_id", noteID))
		return fmt.Errorf("delete note: %w", err)
	}

	s.log.Info("Note deleted", zap.String("note_id", noteID))
	return nil
}

func (s *noteService) findOwnedNote(ctx context.Context, noteID, clinicianID string) (*entity.Note, error) {
	noteUUID, err := uuid.Parse(noteID)
	if err != nil {
		return nil, fmt.Errorf("invalid note ID format %s: %w", noteID, err)
	}

	clinicianUUID, err := uuid.Parse(clinicianID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinician ID format %s: %w", clinicianID, err)
	}

	note, err := s.repo.Note.FindByID(ctx, noteUUID)
	if err != nil {
		s.log.Error("Failed to find note", zap.Error(err), zap.String("note_id", noteID))
		return nil, fmt.Errorf("find note: %w", err)
	}

	if note == nil || note.ClinicianID != clinicianUUID {
		return nil, fmt.Errorf("note not found")
	}

	return note, nil
}

func (s *noteService) ownedPatient(ctx context.Context, patientID, clinicianID string) (*entity.Patient, error) {
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
