package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

func newSurveyFixture(t *testing.T) (*SurveyService, model.Principal) {
	t.Helper()

	database := testDB(t)
	principal := adminPrincipal(t, database)
	svc := NewSurveyService(
		repository.NewServiceClientRepository(database),
		repository.NewServiceJobRepository(database),
		repository.NewServicePaymentRepository(database),
		repository.NewDispatchRepository(database),
		repository.NewActivityRepository(database),
		stubReceipts{},
	)
	return svc, principal
}

func seedSurveyJob(t *testing.T, svc *SurveyService, principal model.Principal, fee float64) int64 {
	t.Helper()
	ctx := context.Background()

	clientID, err := svc.AddClient(ctx, AddServiceClientInput{
		Name:            "S. Wanjiku",
		TelephoneNumber: "0755000009",
		Principal:       principal,
	})
	require.NoError(t, err)

	fileID, err := svc.AddFile(ctx, principal, clientID, "FILE-009")
	require.NoError(t, err)

	jobID, err := svc.AddJob(ctx, AddJobInput{
		FileID:         fileID,
		JobDescription: "Boundary survey",
		TitleName:      "Wanjiku",
		TitleNumber:    "TN-009",
		Fee:            fee,
		Principal:      principal,
	})
	require.NoError(t, err)
	return jobID
}

func TestAddClientDuplicatePhone(t *testing.T) {
	svc, principal := newSurveyFixture(t)
	ctx := context.Background()

	_, err := svc.AddClient(ctx, AddServiceClientInput{
		Name: "S. Wanjiku", TelephoneNumber: "0755000010", Principal: principal,
	})
	require.NoError(t, err)

	_, err = svc.AddClient(ctx, AddServiceClientInput{
		Name: "Other", TelephoneNumber: "0755000010", Principal: principal,
	})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRecordServicePaymentBounds(t *testing.T) {
	svc, principal := newSurveyFixture(t)
	ctx := context.Background()

	jobID := seedSurveyJob(t, svc, principal, 50000)
	payment, err := svc.GetPaymentByJob(ctx, jobID)
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, RecordServicePaymentInput{
		PaymentID: payment.ID, Amount: 60000, PaymentType: "cash", Principal: principal,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.RecordPayment(ctx, RecordServicePaymentInput{
		PaymentID: payment.ID, Amount: 20000, Principal: principal,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	updated, err := svc.RecordPayment(ctx, RecordServicePaymentInput{
		PaymentID: payment.ID, Amount: 20000, PaymentType: "cash", Principal: principal,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PaymentStatusPartial, updated.Status)

	history, err := svc.PaymentHistory(ctx, payment.ID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDispatchRequiresCompletedJob(t *testing.T) {
	svc, principal := newSurveyFixture(t)
	ctx := context.Background()

	jobID := seedSurveyJob(t, svc, principal, 50000)

	_, err := svc.DispatchJob(ctx, DispatchJobInput{
		JobID: jobID, CollectedBy: "S. Wanjiku", Principal: principal,
	})
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, svc.UpdateJobStatus(ctx, principal, jobID, model.JobStatusCompleted))

	result, err := svc.DispatchJob(ctx, DispatchJobInput{
		JobID:             jobID,
		ReasonForDispatch: "Survey complete",
		CollectedBy:       "S. Wanjiku",
		CollectorPhone:    "0755000009",
		Sign:              []byte{1, 2, 3},
		Principal:         principal,
	})
	require.NoError(t, err)
	assert.NotZero(t, result.DispatchID)
	assert.Equal(t, []byte("pdf"), result.Note)

	job, err := svc.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, model.JobStatusDispatched, job.Status)

	sign, err := svc.Signature(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, sign)
}

func TestUpdateJobStatusRejectsDispatch(t *testing.T) {
	svc, principal := newSurveyFixture(t)
	ctx := context.Background()

	jobID := seedSurveyJob(t, svc, principal, 50000)

	err := svc.UpdateJobStatus(ctx, principal, jobID, model.JobStatusDispatched)
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateJobStatus(ctx, principal, jobID, model.JobStatus("Bogus"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateJobFeeRewritesPayment(t *testing.T) {
	svc, principal := newSurveyFixture(t)
	ctx := context.Background()

	jobID := seedSurveyJob(t, svc, principal, 50000)
	payment, err := svc.GetPaymentByJob(ctx, jobID)
	require.NoError(t, err)

	_, err = svc.RecordPayment(ctx, RecordServicePaymentInput{
		PaymentID: payment.ID, Amount: 20000, PaymentType: "cash", Principal: principal,
	})
	require.NoError(t, err)

	err = svc.UpdateJob(ctx, principal, jobID, map[string]interface{}{"fee": float64(10000)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateJob(ctx, principal, jobID, map[string]interface{}{})
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = svc.UpdateJob(ctx, principal, jobID, map[string]interface{}{
		"fee":             float64(80000),
		"job_description": "Boundary and beacon survey",
	})
	require.NoError(t, err)

	payment, err = svc.GetPaymentByJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, float64(80000), payment.Fee)
	assert.Equal(t, float64(60000), payment.Balance)
	assert.Equal(t, model.PaymentStatusPartial, payment.Status)

	job, err := svc.GetJob(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, "Boundary and beacon survey", job.JobDescription)
}
