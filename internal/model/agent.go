package model

import "time"

type Agent struct {
	ID        int64
	Name      string
	Status    string
	AddedBy   string
	CreatedAt time.Time
}

// PaymentPlan is an instalment template offered to buyers.
type PaymentPlan struct {
	ID                int64
	Name              string
	DepositPercentage float64
	DurationMonths    int
	InterestRate      float64
	CreatedBy         string
}
