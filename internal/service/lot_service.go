package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type LotService struct {
	lots       *repository.LotRepository
	properties *repository.PropertyRepository
	activity   *repository.ActivityRepository
}

func NewLotService(
	lots *repository.LotRepository,
	properties *repository.PropertyRepository,
	activity *repository.ActivityRepository,
) *LotService {
	return &LotService{lots: lots, properties: properties, activity: activity}
}

type ProposeLotInput struct {
	ParentBlockID   int64
	Size            float64
	Location        string
	SurveyorName    string
	TitleDeedNumber string
	Price           float64
	Principal       model.Principal
}

type ConfirmLotInput struct {
	LotID           int64
	TitleDeedNumber string
	Owner           string
	TelephoneNumber string
	Email           string
	Price           float64
	Description     string
	Principal       model.Principal
}

// Propose carves a lot out of a Block parcel. The repository runs the
// size check, the insert and the parent adjustment in one transaction.
func (s *LotService) Propose(ctx context.Context, input ProposeLotInput) (int64, error) {
	if input.Size <= 0 {
		return 0, fmt.Errorf("%w: lot size must be positive", ErrInvalidInput)
	}
	if input.SurveyorName == "" {
		return 0, fmt.Errorf("%w: surveyor name is required", ErrInvalidInput)
	}

	parent, err := s.properties.GetByID(ctx, input.ParentBlockID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: block %d", ErrNotFound, input.ParentBlockID)
		}
		return 0, err
	}
	if parent.PropertyType != model.PropertyTypeBlock {
		return 0, fmt.Errorf("%w: property %d is not a block", ErrInvalidInput, input.ParentBlockID)
	}

	deed := input.TitleDeedNumber
	if deed == "" {
		deed = "N/A"
	}
	id, err := s.lots.Propose(ctx, model.ProposedLot{
		ParentBlockID:   input.ParentBlockID,
		Size:            input.Size,
		Location:        input.Location,
		SurveyorName:    input.SurveyorName,
		CreatedBy:       input.Principal.Username,
		TitleDeedNumber: deed,
		Price:           input.Price,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBlockSize) {
			return 0, fmt.Errorf("%w: lot size exceeds the block's remaining size", ErrInvalidInput)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: block %d", ErrNotFound, input.ParentBlockID)
		}
		return 0, err
	}

	s.audit(ctx, input.Principal.UserID, "lot_proposed",
		fmt.Sprintf("lot %d (%.2f) from block %d", id, input.Size, input.ParentBlockID))
	return id, nil
}

func (s *LotService) Get(ctx context.Context, id int64) (*model.ProposedLot, error) {
	lot, err := s.lots.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return lot, nil
}

func (s *LotService) List(ctx context.Context) ([]model.ProposedLotRow, error) {
	return s.lots.ListWithDetails(ctx)
}

func (s *LotService) ListPending(ctx context.Context) ([]model.ProposedLot, error) {
	return s.lots.ListPending(ctx)
}

// Confirm finalizes the subdivision: the lot becomes a sellable
// property of type Lot and the proposal is closed.
func (s *LotService) Confirm(ctx context.Context, input ConfirmLotInput) (int64, error) {
	if input.TitleDeedNumber == "" || input.Owner == "" {
		return 0, fmt.Errorf("%w: title deed and owner are required", ErrInvalidInput)
	}

	lot, err := s.lots.GetByID(ctx, input.LotID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: lot %d", ErrNotFound, input.LotID)
		}
		return 0, err
	}

	addedBy := &input.Principal.UserID
	price := input.Price
	if price == 0 {
		price = lot.Price
	}
	propertyID, err := s.lots.Confirm(ctx, input.LotID, model.Property{
		TitleDeedNumber: input.TitleDeedNumber,
		Location:        lot.Location,
		Size:            lot.Size,
		Description:     input.Description,
		Owner:           input.Owner,
		TelephoneNumber: input.TelephoneNumber,
		Email:           input.Email,
		Price:           price,
		AddedByUserID:   addedBy,
	})
	if err != nil {
		if errors.Is(err, repository.ErrLotNotProposed) {
			return 0, fmt.Errorf("%w: lot %d was already resolved", ErrConflict, input.LotID)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: lot %d", ErrNotFound, input.LotID)
		}
		return 0, err
	}

	s.audit(ctx, input.Principal.UserID, "lot_confirmed",
		fmt.Sprintf("lot %d confirmed as property %d", input.LotID, propertyID))
	return propertyID, nil
}

// Reject undoes a proposal, returning its size to the parent block.
func (s *LotService) Reject(ctx context.Context, principal model.Principal, lotID int64) error {
	if err := s.lots.Reject(ctx, lotID); err != nil {
		if errors.Is(err, repository.ErrLotNotProposed) {
			return fmt.Errorf("%w: lot %d was already resolved", ErrConflict, lotID)
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: lot %d", ErrNotFound, lotID)
		}
		return err
	}
	s.audit(ctx, principal.UserID, "lot_rejected", fmt.Sprintf("lot %d", lotID))
	return nil
}

func (s *LotService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
