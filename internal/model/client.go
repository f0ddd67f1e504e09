package model

import "time"

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusInactive ClientStatus = "inactive"
)

type Client struct {
	ID              int64
	Name            string
	TelephoneNumber string
	Email           string
	Status          ClientStatus
	AddedByUserID   *int64
}

// ClientRow is a listing row joined with the user who registered the
// client.
type ClientRow struct {
	ID              int64
	Name            string
	TelephoneNumber string
	Email           string
	Status          ClientStatus
	AddedByUserID   *int64
	AddedByUsername *string
}

// ClientVisit records a walk-in at the office.
type ClientVisit struct {
	ID            int64
	ClientID      int64
	Purpose       string
	BroughtBy     string
	AddedByUserID *int64
	VisitedAt     time.Time
}

// ClientVisitRow joins a visit with the client's contact details.
type ClientVisitRow struct {
	ID              int64
	Name            string
	TelephoneNumber string
	Email           string
	Purpose         string
	BroughtBy       string
	VisitedAt       time.Time
}

// ClientPropertyRow is a parcel a client bought, via transactions.
type ClientPropertyRow struct {
	ID              int64
	TitleDeedNumber string
	Location        string
	Size            float64
	Price           float64
	Status          string
	TransactionDate time.Time
	TotalAmountPaid float64
}
