package model

import "time"

type LotStatus string

const (
	LotStatusProposed  LotStatus = "Proposed"
	LotStatusConfirmed LotStatus = "Confirmed"
	LotStatusRejected  LotStatus = "Rejected"
)

// ProposedLot is a pending subdivision carved out of a parent block.
type ProposedLot struct {
	ID              int64
	ParentBlockID   int64
	Size            float64
	Location        string
	SurveyorName    string
	CreatedBy       string
	TitleDeedNumber string
	Price           float64
	Status          LotStatus
	CreatedAt       time.Time
}

// ProposedLotRow joins a proposed lot with its parent block's deed.
type ProposedLotRow struct {
	ID           int64
	ParentDeed   string
	Size         float64
	Location     string
	SurveyorName string
	CreatedBy    string
	Status       LotStatus
}
