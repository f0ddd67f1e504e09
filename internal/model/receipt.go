package model

import "time"

// SaleReceipt carries everything printed on a sale receipt.
type SaleReceipt struct {
	ReceiptNumber   string
	TransactionID   int64
	TransactionDate time.Time
	BuyerName       string
	BuyerPhone      string
	TitleDeedNumber string
	Location        string
	Size            float64
	Price           float64
	PaymentMode     string
	AmountPaid      float64
	Discount        float64
	Balance         float64
	ServedBy        string
}

// DispatchNote carries everything printed on a dispatch note.
type DispatchNote struct {
	ReferenceNumber   string
	JobID             int64
	DispatchDate      time.Time
	ClientName        string
	FileName          string
	JobDescription    string
	TitleName         string
	TitleNumber       string
	ReasonForDispatch string
	CollectedBy       string
	CollectorPhone    string
}
