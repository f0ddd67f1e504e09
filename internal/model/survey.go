package model

import "time"

type JobStatus string

const (
	JobStatusOngoing    JobStatus = "Ongoing"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusDispatched JobStatus = "Dispatched"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ServiceClient is a customer of the land-survey side of the business.
type ServiceClient struct {
	ID              int64
	Name            string
	TelephoneNumber string
	Email           string
	BroughtBy       string
	AddedBy         string
	CreatedAt       time.Time
}

type ClientFile struct {
	ID        int64
	ClientID  int64
	FileName  string
	AddedBy   string
	CreatedAt time.Time
}

// ClientFileRow joins a file with the owning service client.
type ClientFileRow struct {
	ID              int64
	FileName        string
	ClientName      string
	TelephoneNumber string
}

type ServiceJob struct {
	ID             int64
	FileID         int64
	JobDescription string
	TitleName      string
	TitleNumber    string
	Fee            float64
	Status         JobStatus
	AddedBy        string
	BroughtBy      string
	CreatedAt      time.Time
}

// ServiceJobRow joins a job with its file and service client.
type ServiceJobRow struct {
	ID              int64
	JobDescription  string
	TitleName       string
	TitleNumber     string
	Fee             float64
	Status          JobStatus
	AddedBy         string
	BroughtBy       string
	CreatedAt       time.Time
	FileName        string
	ClientName      string
	TelephoneNumber string
}

type ServicePayment struct {
	ID          int64
	JobID       int64
	Fee         float64
	Amount      float64
	Balance     float64
	PaymentDate time.Time
	Status      PaymentStatus
}

// ServicePaymentRow joins a payment with its job, file and client for
// the filtered listing.
type ServicePaymentRow struct {
	ID             int64
	ClientName     string
	FileName       string
	JobDescription string
	TitleNumber    string
	Fee            float64
	Amount         float64
	Balance        float64
	PaymentDate    time.Time
}

type ServicePaymentHistory struct {
	ID            int64
	PaymentID     int64
	PaymentAmount float64
	PaymentType   string
	PaymentDate   time.Time
}

// ServiceDispatch records releasing a completed job's documents to a
// collector together with a captured signature.
type ServiceDispatch struct {
	ID                int64
	JobID             int64
	DispatchDate      time.Time
	ReasonForDispatch string
	CollectedBy       string
	CollectorPhone    string
	Sign              []byte
}

// DispatchRow joins a dispatch record with the job it released.
type DispatchRow struct {
	JobID             int64
	DispatchDate      time.Time
	TitleName         string
	TitleNumber       string
	JobDescription    string
	CollectedBy       string
	CollectorPhone    string
	ReasonForDispatch string
}

// SalesSummaryRow is one bucket of the gross/net service revenue
// summary.
type SalesSummaryRow struct {
	Bucket     string
	TotalGross float64
	TotalNet   float64
}

// JobReportRow joins a job with its payment for reporting exports.
type JobReportRow struct {
	JobID          int64
	JobDescription string
	TitleName      string
	TitleNumber    string
	JobFee         float64
	JobStatus      string
	JobCreated     time.Time
	PaymentID      *int64
	AmountPaid     *float64
	Balance        *float64
	AgreedFee      *float64
	PaymentDate    *time.Time
	PaymentStatus  *string
}
