package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type TransferService struct {
	transfers *repository.TransferRepository
	users     *repository.UserRepository
	clients   *repository.ClientRepository
	activity  *repository.ActivityRepository
}

func NewTransferService(
	transfers *repository.TransferRepository,
	users *repository.UserRepository,
	clients *repository.ClientRepository,
	activity *repository.ActivityRepository,
) *TransferService {
	return &TransferService{
		transfers: transfers,
		users:     users,
		clients:   clients,
		activity:  activity,
	}
}

type ExecuteTransferInput struct {
	PropertyID           int64
	Source               model.PropertySource
	FromClientID         *int64
	ToClientID           int64
	TransferPrice        float64
	TransferDate         time.Time
	SupervisingAgentID   *int64
	TransferDocumentPath string
	Principal            model.Principal
}

// Execute changes a parcel's owner. The name lookup, the owner update
// and the audit row run in one transaction inside the repository; a
// failure at any point leaves the parcel untouched.
func (s *TransferService) Execute(ctx context.Context, input ExecuteTransferInput) (int64, error) {
	if !input.Source.Valid() {
		return 0, fmt.Errorf("%w: source must be Main or Transfer", ErrInvalidInput)
	}
	if input.ToClientID == 0 {
		return 0, fmt.Errorf("%w: destination client is required", ErrInvalidInput)
	}
	if input.TransferPrice < 0 {
		return 0, fmt.Errorf("%w: transfer price cannot be negative", ErrInvalidInput)
	}
	transferDate := input.TransferDate
	if transferDate.IsZero() {
		transferDate = time.Now()
	}

	if input.SupervisingAgentID != nil {
		agent, err := s.users.GetByID(ctx, *input.SupervisingAgentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: supervising agent %d", ErrNotFound, *input.SupervisingAgentID)
			}
			return 0, err
		}
		if !agent.IsAgent {
			return 0, fmt.Errorf("%w: user %q is not an agent", ErrInvalidInput, agent.Username)
		}
	}

	id, err := s.transfers.Execute(ctx, model.PropertyTransfer{
		PropertyID:           input.PropertyID,
		FromClientID:         input.FromClientID,
		ToClientID:           input.ToClientID,
		TransferPrice:        input.TransferPrice,
		TransferDate:         transferDate,
		ExecutedByUserID:     input.Principal.UserID,
		SupervisingAgentID:   input.SupervisingAgentID,
		TransferDocumentPath: input.TransferDocumentPath,
	}, input.Source)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: property or destination client", ErrNotFound)
		}
		return 0, err
	}

	s.audit(ctx, input.Principal.UserID, "property_transferred",
		fmt.Sprintf("property %d (%s) to client %d", input.PropertyID, input.Source, input.ToClientID))
	return id, nil
}

func (s *TransferService) List(ctx context.Context, from, to *time.Time) ([]model.PropertyTransferRow, error) {
	return s.transfers.List(ctx, from, to)
}

func (s *TransferService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
