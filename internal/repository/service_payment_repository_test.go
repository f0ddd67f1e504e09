package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
)

func setupJob(t *testing.T, ctx context.Context, jobs *ServiceJobRepository, clients *ServiceClientRepository, fee float64) int64 {
	t.Helper()

	clientID, err := clients.Create(ctx, model.ServiceClient{
		Name:            "S. Wanjiku",
		TelephoneNumber: "0755000001",
		AddedBy:         "clerk",
	})
	require.NoError(t, err)

	fileID, err := clients.CreateFile(ctx, model.ClientFile{
		ClientID: clientID,
		FileName: "FILE-001",
		AddedBy:  "clerk",
	})
	require.NoError(t, err)

	jobID, err := jobs.Create(ctx, model.ServiceJob{
		FileID:         fileID,
		JobDescription: "Boundary survey",
		TitleName:      "Wanjiku",
		TitleNumber:    "TN-001",
		Fee:            fee,
		AddedBy:        "clerk",
		BroughtBy:      "self",
	})
	require.NoError(t, err)
	return jobID
}

func TestJobCreateOpensPaymentRecord(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	jobs := NewServiceJobRepository(database)
	clients := NewServiceClientRepository(database)
	payments := NewServicePaymentRepository(database)

	jobID := setupJob(t, ctx, jobs, clients, 50000)

	payment, err := payments.GetByJobID(ctx, jobID)
	require.NoError(t, err)
	assert.InDelta(t, 50000.0, payment.Fee, 0.0001)
	assert.InDelta(t, 0.0, payment.Amount, 0.0001)
	assert.InDelta(t, 50000.0, payment.Balance, 0.0001)
	assert.Equal(t, model.PaymentStatusUnpaid, payment.Status)
}

func TestRecordPaymentMovesStatus(t *testing.T) {
	database := testDB(t)
	ctx := context.Background()
	jobs := NewServiceJobRepository(database)
	clients := NewServiceClientRepository(database)
	payments := NewServicePaymentRepository(database)

	jobID := setupJob(t, ctx, jobs, clients, 50000)
	payment, err := payments.GetByJobID(ctx, jobID)
	require.NoError(t, err)

	updated, err := payments.RecordPayment(ctx, payment.ID, 20000, "cash")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPartial, updated.Status)
	assert.InDelta(t, 30000.0, updated.Balance, 0.0001)

	updated, err = payments.RecordPayment(ctx, payment.ID, 30000, "mpesa")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPaid, updated.Status)
	assert.InDelta(t, 0.0, updated.Balance, 0.0001)

	history, err := payments.History(ctx, payment.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
