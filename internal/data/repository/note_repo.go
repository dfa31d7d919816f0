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

type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error)
	FindByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Note, error)
	CountByPatient(ctx context.Context, patientID uuid.UUID) (int64, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type noteRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewNoteRepository(db database.PgxIface, log *zap.Logger) NoteRepository {
	return &noteRepository{
		db:  db,
		log: log.With(zap.String("repository", "note")),
	}
}

func (r *noteRepository) Create(ctx context.Context, note *entity.Note) error {
	query := `
		INSERT INTO notes (id, patient_id, clinician_id, title, content,
		                  session_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		note.ID,
		note.PatientID,
		note.ClinicianID,
		note.Title,
		note.Content,
		note.SessionDate,
		note.CreatedAt,
		note.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create note",
			zap.Error(err),
			zap.String("patient_id", note.PatientID.String()),
		)
		return fmt.Errorf("create note: %w", err)
	}

	return nil
}

func (r *noteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Note, error) {
	query := `
		SELECT id, patient_id, clinician_id, title, content,
		       session_date, created_at, updated_at
		FROM notes
		WHERE id = $1
	`

	var note entity.Note
	err := r.db.QueryRow(ctx, query, id).Scan(
		&note.ID,
		&note.PatientID,
		&note.ClinicianID,
		&note.Title,
		&note.Content,
		&note.SessionDate,
		&note.CreatedAt,
		&note.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find note",
			zap.Error(err),
			zap.String("note_id", id.String()),
		)
		return nil, fmt.Errorf("find note %s: %w", id.String(), err)
	}

	return &note, nil
}

func (r *noteRepository) FindByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*entity.Note, error) {
	query := `
		SELECT id, patient_id, clinician_id, title, content,
		       session_date, created_at, updated_at
		FROM notes
		WHERE patient_id = $1
		ORDER BY session_date DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, patientID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list notes",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []*entity.Note
	for rows.Next() {
		var note entity.Note
		if err := rows.Scan(
			&note.ID,
			&note.PatientID,
			&note.ClinicianID,
			&note.Title,
			&note.Content,
			&note.SessionDate,
			&note.CreatedAt,
			&note.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, &note)
	}

	return notes, rows.Err()
}

func (r *noteRepository) CountByPatient(ctx context.Context, patientID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM notes WHERE patient_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, patientID).Scan(&count); err != nil {
		r.log.Error("Failed to count notes",
			zap.Error(err),
			zap.String("patient_id", patientID.String()),
		)
		return 0, fmt.Errorf("count notes: %w", err)
	}

	return count, nil
}

func (r *noteRepository) Update(ctx context.Context, note *entity.Note) error {
	query := `
		UPDATE notes
		SET title = $2, content = $3, session_date = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		note.ID,
		note.Title,
		note.Content,
		note.SessionDate,
		note.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update note",
			zap.Error(err),
			zap.String("note_id", note.ID.String()),
		)
		return fmt.Errorf("update note %s: %w", note.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s not found", note.ID.String())
	}

	return nil
}

func (r *noteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete note",
			zap.Error(err),
			zap.String("note_id", id.String()),
		)
		return fmt.Errorf("delete note %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %s not found", id.String())
	}

	return nil
}
