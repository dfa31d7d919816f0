package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-backend/internal/data/entity"
	"clinic-backend/internal/data/repository"
	"clinic-backend/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPatient(clinicianID uuid.UUID) *entity.Patient {
	now := time.Now()
	return &entity.Patient{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ClinicianID: clinicianID,
		FullName:    "Jane Doe",
	}
}

func TestPatientService(t *testing.T) {
	ctx := context.Background()

	setup := func() (*mockPatientRepository, PatientService) {
		patients := new(mockPatientRepository)
		repo := &repository.Repository{Patient: patients}
		return patients, NewPatientService(repo, zap.NewNop())
	}

	t.Run("create assigns the caller as owner", func(t *testing.T) {
		patients, svc := setup()
		clinicianID := uuid.New()

		patients.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Patient) bool {
			return p.ClinicianID == clinicianID
		})).Return(nil)

		resp, err := svc.CreatePatient(ctx, clinicianID.String(), &request.CreatePatientRequest{
			FullName: "Jane Doe",
		})
		require.NoError(t, err)
		assert.Equal(t, "Jane Doe", resp.FullName)

		patients.AssertExpectations(t)
	})

	t.Run("get own patient succeeds", func(t *testing.T) {
		patients, svc := setup()
		clinicianID := uuid.New()
		patient := newPatient(clinicianID)

		patients.On("FindByID", mock.Anything, patient.ID).Return(patient, nil)

		resp, err := svc.GetPatient(ctx, patient.ID.String(), clinicianID.String())
		require.NoError(t, err)
		assert.Equal(t, patient.ID.String(), resp.ID)
	})

	t.Run("foreign patient reported as not found", func(t *testing.T) {
		patients, svc := setup()
		patient := newPatient(uuid.New())

		patients.On("FindByID", mock.Anything, patient.ID).Return(patient, nil)

		otherClinician := uuid.New()
		_, err := svc.GetPatient(ctx, patient.ID.String(), otherClinician.String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "patient not found")
	})

	t.Run("delete checks ownership first", func(t *testing.T) {
		patients, svc := setup()
		patient := newPatient(uuid.New())

		patients.On("FindByID", mock.Anything, patient.ID).Return(patient, nil)

		err := svc.DeletePatient(ctx, patient.ID.String(), uuid.New().String())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "patient not found")

		patients.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("list is scoped to the caller", func(t *testing.T) {
		patients, svc := setup()
		clinicianID := uuid.New()

		patients.On("FindByClinician", mock.Anything, clinicianID, 10, 0).
			Return([]*entity.Patient{newPatient(clinicianID)}, nil)
		patients.On("CountByClinician", mock.Anything, clinicianID).Return(int64(1), nil)

		resp, err := svc.ListPatients(ctx, clinicianID.String(), &request.PaginatedRequest{Page: 1, PerPage: 10})
		require.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		assert.Equal(t, int64(1), resp.Pagination.Total)

		patients.AssertExpectations(t)
	})
}
