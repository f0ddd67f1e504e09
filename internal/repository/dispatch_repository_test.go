package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

func TestDispatchCreateFlipsJobStatus(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	jobs := NewServiceJobRepository(database)
	clients := NewServiceClientRepository(database)
	repo := NewDispatchRepository(database)

	jobID := setupJob(t, ctx, jobs, clients, 50000)

	sign := []byte{0x89, 0x50, 0x4e, 0x47}
	id, err := repo.Create(ctx, model.ServiceDispatch{
		JobID:             jobID,
		DispatchDate:      time.Now(),
		ReasonForDispatch: "Survey complete",
		CollectedBy:       "S. Wanjiku",
		CollectorPhone:    "0755000001",
		Sign:              sign,
	})
	require.NoError(t, err)
	assert.NotZero(t, id)

	job, err := jobs.GetByID(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDispatched, job.Status)

	got, err := repo.SignatureByJobID(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, sign, got)

	rows, err := repo.List(ctx, DispatchFilter{CollectedBy: "Wanjiku"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "TN-001", rows[0].TitleNumber)
}

func TestDispatchCreateUnknownJob(t *testing.T) {
	database := testDB(t)
	repo := NewDispatchRepository(database)

	_, err := repo.Create(context.Background(), model.ServiceDispatch{
		JobID:        999,
		DispatchDate: time.Now(),
		CollectedBy:  "Nobody",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.SignatureByJobID(context.Background(), 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
