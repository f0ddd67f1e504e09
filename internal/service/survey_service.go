package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

// DispatchNoteGenerator renders a dispatch note as a PDF document.
type DispatchNoteGenerator interface {
	DispatchNote(note model.DispatchNote) ([]byte, error)
}

// SurveyService covers the land-survey side: clients, files, jobs,
// payments and dispatch.
type SurveyService struct {
	clients  *repository.ServiceClientRepository
	jobs     *repository.ServiceJobRepository
	payments *repository.ServicePaymentRepository
	dispatch *repository.DispatchRepository
	activity *repository.ActivityRepository
	notes    DispatchNoteGenerator
}

func NewSurveyService(
	clients *repository.ServiceClientRepository,
	jobs *repository.ServiceJobRepository,
	payments *repository.ServicePaymentRepository,
	dispatch *repository.DispatchRepository,
	activity *repository.ActivityRepository,
	notes DispatchNoteGenerator,
) *SurveyService {
	return &SurveyService{
		clients:  clients,
		jobs:     jobs,
		payments: payments,
		dispatch: dispatch,
		activity: activity,
		notes:    notes,
	}
}

type AddServiceClientInput struct {
	Name            string
	TelephoneNumber string
	Email           string
	BroughtBy       string
	Principal       model.Principal
}

type AddJobInput struct {
	FileID         int64
	JobDescription string
	TitleName      string
	TitleNumber    string
	Fee            float64
	BroughtBy      string
	Principal      model.Principal
}

type RecordServicePaymentInput struct {
	PaymentID   int64
	Amount      float64
	PaymentType string
	Principal   model.Principal
}

type DispatchJobInput struct {
	JobID             int64
	ReasonForDispatch string
	CollectedBy       string
	CollectorPhone    string
	Sign              []byte
	Principal         model.Principal
}

type DispatchJobResult struct {
	DispatchID int64
	NoteName   string
	Note       []byte
}

func (s *SurveyService) AddClient(ctx context.Context, input AddServiceClientInput) (int64, error) {
	if input.Name == "" || input.TelephoneNumber == "" {
		return 0, fmt.Errorf("%w: name and telephone number are required", ErrInvalidInput)
	}

	if _, err := s.clients.GetByPhone(ctx, input.TelephoneNumber); err == nil {
		return 0, fmt.Errorf("%w: a service client with phone %q already exists", ErrConflict, input.TelephoneNumber)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	id, err := s.clients.Create(ctx, model.ServiceClient{
		Name:            input.Name,
		TelephoneNumber: input.TelephoneNumber,
		Email:           input.Email,
		BroughtBy:       input.BroughtBy,
		AddedBy:         input.Principal.Username,
	})
	if err != nil {
		return 0, err
	}
	s.audit(ctx, input.Principal.UserID, "service_client_added", fmt.Sprintf("client %q (id %d)", input.Name, id))
	return id, nil
}

func (s *SurveyService) GetClient(ctx context.Context, id int64) (*model.ServiceClient, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *SurveyService) ListClients(ctx context.Context) ([]model.ServiceClient, error) {
	return s.clients.List(ctx)
}

func (s *SurveyService) AddFile(ctx context.Context, principal model.Principal, clientID int64, fileName string) (int64, error) {
	if fileName == "" {
		return 0, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: service client %d", ErrNotFound, clientID)
		}
		return 0, err
	}

	id, err := s.clients.CreateFile(ctx, model.ClientFile{
		ClientID: clientID,
		FileName: fileName,
		AddedBy:  principal.Username,
	})
	if err != nil {
		return 0, err
	}
	s.audit(ctx, principal.UserID, "client_file_added", fmt.Sprintf("file %q (id %d)", fileName, id))
	return id, nil
}

func (s *SurveyService) GetFile(ctx context.Context, id int64) (*model.ClientFile, error) {
	file, err := s.clients.GetFileByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return file, nil
}

func (s *SurveyService) ListFiles(ctx context.Context, search string) ([]model.ClientFileRow, error) {
	return s.clients.ListFiles(ctx, search)
}

func (s *SurveyService) ListFilesByClient(ctx context.Context, clientID int64) ([]model.ClientFile, error) {
	return s.clients.ListFilesByClient(ctx, clientID)
}

// AddJob opens a survey job under a client file. The opening payment
// record (nothing paid, balance = fee) is created with it.
func (s *SurveyService) AddJob(ctx context.Context, input AddJobInput) (int64, error) {
	if input.TitleName == "" || input.TitleNumber == "" {
		return 0, fmt.Errorf("%w: title name and number are required", ErrInvalidInput)
	}
	if input.Fee < 0 {
		return 0, fmt.Errorf("%w: fee cannot be negative", ErrInvalidInput)
	}
	if _, err := s.clients.GetFileByID(ctx, input.FileID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: client file %d", ErrNotFound, input.FileID)
		}
		return 0, err
	}

	broughtBy := input.BroughtBy
	if broughtBy == "" {
		broughtBy = "self"
	}
	id, err := s.jobs.Create(ctx, model.ServiceJob{
		FileID:         input.FileID,
		JobDescription: input.JobDescription,
		TitleName:      input.TitleName,
		TitleNumber:    input.TitleNumber,
		Fee:            input.Fee,
		AddedBy:        input.Principal.Username,
		BroughtBy:      broughtBy,
	})
	if err != nil {
		return 0, err
	}
	s.audit(ctx, input.Principal.UserID, "service_job_added", fmt.Sprintf("job %q (id %d)", input.TitleNumber, id))
	return id, nil
}

func (s *SurveyService) GetJob(ctx context.Context, id int64) (*model.ServiceJobRow, error) {
	job, err := s.jobs.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func (s *SurveyService) ListJobs(ctx context.Context, filter repository.JobFilter) ([]model.ServiceJobRow, error) {
	return s.jobs.List(ctx, filter)
}

func (s *SurveyService) ListJobsByFile(ctx context.Context, fileID int64) ([]model.ServiceJob, error) {
	return s.jobs.ListByFile(ctx, fileID)
}

func (s *SurveyService) ListCompletedJobs(ctx context.Context) ([]model.ServiceJobRow, error) {
	return s.jobs.ListCompleted(ctx)
}

func (s *SurveyService) UpdateJob(ctx context.Context, principal model.Principal, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if raw, ok := changes["fee"]; ok {
		fee, ok := raw.(float64)
		if !ok || fee < 0 {
			return fmt.Errorf("%w: fee cannot be negative", ErrInvalidInput)
		}
		payment, err := s.payments.GetByJobID(ctx, id)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if payment != nil && payment.Amount > fee {
			return fmt.Errorf("%w: fee cannot drop below the %.2f already paid", ErrInvalidInput, payment.Amount)
		}
	}
	if err := s.jobs.Update(ctx, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "service_job_updated", fmt.Sprintf("job id %d", id))
	return nil
}

func (s *SurveyService) UpdateJobStatus(ctx context.Context, principal model.Principal, id int64, status model.JobStatus) error {
	switch status {
	case model.JobStatusOngoing, model.JobStatusCompleted:
	case model.JobStatusDispatched:
		return fmt.Errorf("%w: dispatch a job through the dispatch operation", ErrInvalidInput)
	default:
		return fmt.Errorf("%w: unknown job status %q", ErrInvalidInput, status)
	}
	if err := s.jobs.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "service_job_status_updated", fmt.Sprintf("job id %d -> %s", id, status))
	return nil
}

func (s *SurveyService) JobStatusCounts(ctx context.Context) (map[string]int64, error) {
	return s.jobs.StatusCounts(ctx)
}

func (s *SurveyService) JobReport(ctx context.Context, filter repository.JobReportFilter) ([]model.JobReportRow, error) {
	return s.jobs.Report(ctx, filter)
}

func (s *SurveyService) GetPaymentByJob(ctx context.Context, jobID int64) (*model.ServicePayment, error) {
	payment, err := s.payments.GetByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return payment, nil
}

// RecordPayment applies an instalment against a job's payment record.
func (s *SurveyService) RecordPayment(ctx context.Context, input RecordServicePaymentInput) (*model.ServicePayment, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrInvalidInput)
	}
	if input.PaymentType == "" {
		return nil, fmt.Errorf("%w: payment type is required", ErrInvalidInput)
	}

	current, err := s.payments.GetByID(ctx, input.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, input.PaymentID)
		}
		return nil, err
	}
	if input.Amount > current.Balance {
		return nil, fmt.Errorf("%w: payment exceeds outstanding balance", ErrInvalidInput)
	}

	updated, err := s.payments.RecordPayment(ctx, input.PaymentID, input.Amount, input.PaymentType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, input.PaymentID)
		}
		return nil, err
	}

	s.audit(ctx, input.Principal.UserID, "service_payment_recorded",
		fmt.Sprintf("payment %d, amount %.2f", input.PaymentID, input.Amount))
	return updated, nil
}

func (s *SurveyService) PaymentHistory(ctx context.Context, paymentID int64) ([]model.ServicePaymentHistory, error) {
	if _, err := s.payments.GetByID(ctx, paymentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.payments.History(ctx, paymentID)
}

func (s *SurveyService) ListPayments(ctx context.Context, filter repository.PaymentFilter) ([]model.ServicePaymentRow, int64, error) {
	return s.payments.List(ctx, filter)
}

func (s *SurveyService) SalesSummary(ctx context.Context, monthly bool, from, to *time.Time) ([]model.SalesSummaryRow, error) {
	return s.payments.SalesSummary(ctx, monthly, from, to)
}

// DispatchJob releases a completed job's documents. The dispatch
// record and the status flip commit together; the dispatch note is
// rendered after the commit.
func (s *SurveyService) DispatchJob(ctx context.Context, input DispatchJobInput) (*DispatchJobResult, error) {
	if input.CollectedBy == "" {
		return nil, fmt.Errorf("%w: collector name is required", ErrInvalidInput)
	}

	job, err := s.jobs.GetDetails(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job %d", ErrNotFound, input.JobID)
		}
		return nil, err
	}
	if job.Status != model.JobStatusCompleted {
		return nil, fmt.Errorf("%w: job %d is not completed", ErrConflict, input.JobID)
	}

	now := time.Now()
	dispatchID, err := s.dispatch.Create(ctx, model.ServiceDispatch{
		JobID:             input.JobID,
		DispatchDate:      now,
		ReasonForDispatch: input.ReasonForDispatch,
		CollectedBy:       input.CollectedBy,
		CollectorPhone:    input.CollectorPhone,
		Sign:              input.Sign,
	})
	if err != nil {
		return nil, err
	}

	reference := uuid.NewString()
	note, err := s.notes.DispatchNote(model.DispatchNote{
		ReferenceNumber:   reference,
		JobID:             input.JobID,
		DispatchDate:      now,
		ClientName:        job.ClientName,
		FileName:          job.FileName,
		JobDescription:    job.JobDescription,
		TitleName:         job.TitleName,
		TitleNumber:       job.TitleNumber,
		ReasonForDispatch: input.ReasonForDispatch,
		CollectedBy:       input.CollectedBy,
		CollectorPhone:    input.CollectorPhone,
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, input.Principal.UserID, "service_job_dispatched",
		fmt.Sprintf("job %d collected by %q", input.JobID, input.CollectedBy))

	return &DispatchJobResult{
		DispatchID: dispatchID,
		NoteName:   fmt.Sprintf("dispatch-%s.pdf", reference),
		Note:       note,
	}, nil
}

func (s *SurveyService) ListDispatches(ctx context.Context, filter repository.DispatchFilter) ([]model.DispatchRow, error) {
	return s.dispatch.List(ctx, filter)
}

func (s *SurveyService) Signature(ctx context.Context, jobID int64) ([]byte, error) {
	sign, err := s.dispatch.SignatureByJobID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sign, nil
}

func (s *SurveyService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
