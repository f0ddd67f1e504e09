package model

import "time"

// PropertyTransfer is the audit record of an ownership change.
type PropertyTransfer struct {
	ID                   int64
	PropertyID           int64
	FromClientID         *int64
	ToClientID           int64
	TransferPrice        float64
	TransferDate         time.Time
	ExecutedByUserID     int64
	SupervisingAgentID   *int64
	TransferDocumentPath string
	CreatedAt            time.Time
}

// PropertyTransferRow joins a transfer with client and executor names.
type PropertyTransferRow struct {
	ID             int64
	PropertyID     int64
	FromClientName *string
	ToClientName   string
	TransferPrice  float64
	TransferDate   time.Time
	ExecutedBy     string
	CreatedAt      time.Time
}
