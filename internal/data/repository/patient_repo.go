package repository

import (
	"context"
	"fmt"

	"clinic-backend/internal/data/entity"
	"clinic-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error)
	FindByClinician(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]*entity.Patient, error)
	CountByClinician(ctx context.Context, clinicianID uuid.UUID) (int64, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type patientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPatientRepository(db database.PgxIface, log *zap.Logger) PatientRepository {
	return &patientRepository{
		db:  db,
		log: log.With(zap.String("repository", "patient")),
	}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, clinician_id, full_name, email, phone,
		                     date_of_birth, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		patient.ID,
		patient.ClinicianID,
		patient.FullName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Notes,
		patient.CreatedAt,
		patient.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create patient",
			zap.Error(err),
			zap.String("clinician_id", patient.ClinicianID.String()),
		)
		return fmt.Errorf("create patient: %w", err)
	}

	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Patient, error) {
	query := `
		SELECT id, clinician_id, full_name, email, phone,
		       date_of_birth, notes, created_at, updated_at, deleted_at
		FROM patients
		WHERE id = $1 AND deleted_at IS NULL
	`

	var patient entity.Patient
	err := r.db.QueryRow(ctx, query, id).Scan(
		&patient.ID,
		&patient.ClinicianID,
		&patient.FullName,
		&patient.Email,
		&patient.Phone,
		&patient.DateOfBirth,
		&patient.Notes,
		&patient.CreatedAt,
		&patient.UpdatedAt,
		&patient.DeletedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find patient",
			zap.Error(err),
			zap.String("patient_id", id.String()),
		)
		return nil, fmt.Errorf("find patient %s: %w", id.String(), err)
	}

	return &patient, nil
}

func (r *patientRepository) FindByClinician(ctx context.Context, clinicianID uuid.UUID, limit, offset int) ([]*entity.Patient, error) {
	query := `
		SELECT id, clinician_id, full_name, email, phone,
		       date_of_birth, notes, created_at, updated_at, deleted_at
		FROM patients
		WHERE clinician_id = $1 AND deleted_at IS NULL
		ORDER BY full_name ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, clinicianID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list patients",
			zap.Error(err),
			zap.String("clinician_id", clinicianID.String()),
		)
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []*entity.Patient
	for rows.Next() {
		var patient entity.Patient
		if err := rows.Scan(
			&patient.ID,
			&patient.ClinicianID,
			&patient.FullName,
			&patient.Email,
			&patient.Phone,
			&patient.DateOfBirth,
			&patient.Notes,
			&patient.CreatedAt,
			&patient.UpdatedAt,
			&patient.DeletedAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, &patient)
	}

	return patients, rows.Err()
}

func (r *patientRepository) CountByClinician(ctx context.Context, clinicianID uuid.UUID) (int64, error) {
	query := `
		SELECT COUNT(*) FROM patients
		WHERE clinician_id = $1 AND deleted_at IS NULL
	`

	var count int64
	if err := r.db.QueryRow(ctx, query, clinicianID).Scan(&count); err != nil {
		r.log.Error("Failed to count patients",
			zap.Error(err),
			zap.String("clinician_id", clinicianID.String()),
		)
		return 0, fmt.Errorf("count patients: %w", err)
	}

	return count, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $2, email = $3, phone = $4,
		    date_of_birth = $5, notes = $6, updated_at = $7
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		patient.ID,
		patient.FullName,
		patient.Email,
		patient.Phone,
		patient.DateOfBirth,
		patient.Notes,
		patient.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update patient",
			zap.Error(err),
			zap.String("patient_id", patient.ID.String()),
		)
		return fmt.Errorf("update patient %s: %w", patient.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("patient %s not found", patient.ID.String())
	}

	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE patients
		SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete patient",
			zap.Error(err),
			zap.String("patient_id", id.String()),
		)
		return fmt.Errorf("delete patient %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("patient %s not found", id.String())
	}

	return nil
}
