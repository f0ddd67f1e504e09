package model

import "time"

type Transaction struct {
	ID              int64
	PropertyID      int64
	ClientID        int64
	PaymentMode     string
	TotalAmountPaid float64
	Discount        float64
	Balance         float64
	TransactionDate time.Time
	ReceiptPath     string
	AddedByUserID   *int64
}

// TransactionRow joins a sale with its parcel and buyer for the
// detailed listing.
type TransactionRow struct {
	ID                int64
	TransactionDate   time.Time
	PaymentMode       string
	TotalAmountPaid   float64
	Discount          float64
	Balance           float64
	ReceiptPath       string
	ClientName        string
	ClientContactInfo string
	PropertyID        int64
	TitleDeedNumber   string
	Location          string
	Size              float64
	PropertyPrice     float64
	PropertyStatus    string
}
