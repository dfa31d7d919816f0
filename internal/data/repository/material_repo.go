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

type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Material, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Material, error)
	CountByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
	Update(ctx context.Context, material *entity.Material) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type materialRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMaterialRepository(db database.PgxIface, log *zap.Logger) MaterialRepository {
	return &materialRepository{
		db:  db,
		log: log.With(zap.String("repository", "material")),
	}
}

func (r *materialRepository) Create(ctx context.Context, material *entity.Material) error {
	query := `
		INSERT INTO materials (id, patient_id, clinician_id, title, description,
		                      url, content_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		material.ID,
		material.PatientID,
		material.ClinicianID,
		material.Title,
		material.Description,
		material.URL,
		material.ContentType,
		material.CreatedAt,
		material.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create material",
			zap.Error(err),
			zap.String("patient_id", material.PatientID.String()),
		)
		return fmt.Errorf("create material: %w", err)
	}

	return nil
}

func (r *materialRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	query := `
		SELECT id, patient_id, clinician_id, title, description,
		       url, content_type, created_at, updated_at
		FROM materials
		WHERE id = $1
	`

	var material entity.Material
	err := r.db.QueryRow(ctx, query, id).Scan(
		&material.ID,
		&material.PatientID,
		&material.ClinicianID,
		&material.Title,
		&material.Description,
		&material.URL,
		&material.ContentType,
		&material.CreatedAt,
		&material.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find material",
			zap.Error(err),
			zap.String("material_id", id.String()),
		)
		return nil, fmt.Errorf("find material %s: %w", id.String(), err)
	}

	return &material, nil
}

func (r *materialRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Material, error) {
	query := `
		SELECT id, patient_id, clinician_id, title, description,
		       url, content_type, created_at, updated_at
		FROM materials
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list materials",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var materials []*entity.Material
	for rows.Next() {
		var material entity.Material
		if err := rows.Scan(
			&material.ID,
			&material.PatientID,
			&material.ClinicianID,
			&material.Title,
			&material.Description,
			&material.URL,
			&material.ContentType,
			&material.CreatedAt,
			&material.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		materials = append(materials, &material)
	}

	return materials, rows.Err()
}

func (r *materialRepository) CountByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM materials WHERE patient_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, patientID).Scan(&count); err != nil {
		r.log.Error("Failed to count materials",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return 0, fmt.Errorf("count materials: %w", err)
	}

	return count, nil
}

func (r *materialRepository) Update(ctx context.Context, material *entity.Material) error {
	query := `
		UPDATE materials
		SET title = $2, description = $3, url = $4, content_type = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		material.ID,
		material.Title,
		material.Description,
		material.URL,
		material.ContentType,
		material.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update material",
			zap.Error(err),
			zap.String("material_id", material.ID.String()),
		)
		return fmt.Errorf("update material %s: %w", material.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("material %s not found", material.ID.String())
	}

	return nil
}

func (r *materialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM materials WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete material",
			zap.Error(err),
			zap.String("material_id", id.String()),
		)
		return fmt.Errorf("delete material %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("material %s not found", id.String())
	}

	return nil
}
