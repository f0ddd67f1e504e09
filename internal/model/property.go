package model

import "time"

type PropertyStatus string

const (
	PropertyStatusAvailable   PropertyStatus = "Available"
	PropertyStatusUnavailable PropertyStatus = "Unavailable"
	PropertyStatusSold        PropertyStatus = "Sold"
)

type PropertyType string

const (
	PropertyTypeBlock PropertyType = "Block"
	PropertyTypeLot   PropertyType = "Lot"
)

type Property struct {
	ID              int64
	PropertyType    PropertyType
	TitleDeedNumber string
	Location        string
	Size            float64
	Description     string
	Owner           string
	TelephoneNumber string
	Email           string
	Price           float64
	ImagePaths      string
	TitleImagePaths string
	Status          PropertyStatus
	AddedByUserID   *int64
}

// PropertySource discriminates the two parallel parcel tables when
// they are listed together.
type PropertySource string

const (
	SourceMain     PropertySource = "Main"
	SourceTransfer PropertySource = "Transfer"
)

func (s PropertySource) Valid() bool {
	return s == SourceMain || s == SourceTransfer
}

// TransferPoolProperty is a parcel held only for ownership transfers.
// It carries no price or sale status.
type TransferPoolProperty struct {
	ID              int64
	TitleDeedNumber string
	Location        string
	Size            float64
	Description     string
	Owner           string
	TelephoneNumber string
	Email           string
	ImagePaths      string
	TitleImagePaths string
	AddedByUserID   *int64
}

// PropertyRow is a listing row joined with the user who added the
// parcel; Price/Status are pointers because transfer-pool rows have
// neither.
type PropertyRow struct {
	ID              int64
	PropertyType    string
	TitleDeedNumber string
	Location        string
	Size            float64
	Description     string
	Price           *float64
	TelephoneNumber string
	ImagePaths      string
	TitleImagePaths string
	Status          *string
	AddedByUserID   *int64
	Owner           string
	AddedByUsername *string
	Source          PropertySource
}

// SoldPropertyRow joins a sold parcel with its sale and buyer.
type SoldPropertyRow struct {
	ID                int64
	TitleDeedNumber   string
	Location          string
	Size              float64
	OriginalPrice     float64
	TransactionID     int64
	DateSold          time.Time
	TotalAmountPaid   float64
	Discount          float64
	Balance           float64
	BuyerName         string
	ClientContactInfo string
}
