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

type ClientService struct {
	clients  *repository.ClientRepository
	activity *repository.ActivityRepository
}

func NewClientService(clients *repository.ClientRepository, activity *repository.ActivityRepository) *ClientService {
	return &ClientService{clients: clients, activity: activity}
}

type AddClientInput struct {
	Name            string
	TelephoneNumber string
	Email           string
	Principal       model.Principal
}

type AddVisitInput struct {
	ClientID  int64
	Purpose   string
	BroughtBy string
	Principal model.Principal
}

// Add registers a client. Phone numbers are unique while active: an
// inactive row under the same phone is reactivated in place instead of
// duplicated.
func (s *ClientService) Add(ctx context.Context, input AddClientInput) (int64, error) {
	if input.Name == "" || input.TelephoneNumber == "" {
		return 0, fmt.Errorf("%w: name and telephone number are required", ErrInvalidInput)
	}

	addedBy := &input.Principal.UserID
	existing, err := s.clients.GetByPhone(ctx, input.TelephoneNumber)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
		id, err := s.clients.Create(ctx, model.Client{
			Name:            input.Name,
			TelephoneNumber: input.TelephoneNumber,
			Email:           input.Email,
			Status:          model.ClientStatusActive,
			AddedByUserID:   addedBy,
		})
		if err != nil {
			return 0, err
		}
		s.audit(ctx, input.Principal.UserID, "client_added", fmt.Sprintf("client %q (id %d)", input.Name, id))
		return id, nil
	}

	if existing.Status == model.ClientStatusActive {
		return 0, fmt.Errorf("%w: an active client with phone %q already exists", ErrConflict, input.TelephoneNumber)
	}
	if err := s.clients.Reactivate(ctx, existing.ID, input.Name, input.Email, addedBy); err != nil {
		return 0, err
	}
	s.audit(ctx, input.Principal.UserID, "client_reactivated", fmt.Sprintf("client %q (id %d)", input.Name, existing.ID))
	return existing.ID, nil
}

func (s *ClientService) Get(ctx context.Context, id int64) (*model.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetByPhone(ctx context.Context, phone string) (*model.Client, error) {
	if phone == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	client, err := s.clients.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) ListActive(ctx context.Context) ([]model.ClientRow, error) {
	return s.clients.ListActive(ctx)
}

func (s *ClientService) ListAll(ctx context.Context) ([]model.ClientRow, error) {
	return s.clients.ListAll(ctx)
}

func (s *ClientService) Update(ctx context.Context, principal model.Principal, id int64, changes map[string]interface{}) error {
	if len(changes) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if err := s.clients.Update(ctx, id, changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "client_updated", fmt.Sprintf("client id %d", id))
	return nil
}

// Deactivate is a soft delete: the row stays for history and can be
// reactivated by a later Add under the same phone.
func (s *ClientService) Deactivate(ctx context.Context, principal model.Principal, id int64) error {
	if err := s.clients.Deactivate(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "client_deactivated", fmt.Sprintf("client id %d", id))
	return nil
}

func (s *ClientService) CountActive(ctx context.Context) (int64, error) {
	return s.clients.CountActive(ctx)
}

// ListProperties returns the parcels a client has bought.
func (s *ClientService) ListProperties(ctx context.Context, clientID int64) ([]model.ClientPropertyRow, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.clients.ListProperties(ctx, clientID)
}

func (s *ClientService) AddVisit(ctx context.Context, input AddVisitInput) (int64, error) {
	if input.Purpose == "" {
		return 0, fmt.Errorf("%w: purpose is required", ErrInvalidInput)
	}
	if _, err := s.clients.GetByID(ctx, input.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	addedBy := &input.Principal.UserID
	id, err := s.clients.AddVisit(ctx, model.ClientVisit{
		ClientID:      input.ClientID,
		Purpose:       input.Purpose,
		BroughtBy:     input.BroughtBy,
		AddedByUserID: addedBy,
		VisitedAt:     time.Now(),
	})
	if err != nil {
		return 0, err
	}
	s.audit(ctx, input.Principal.UserID, "client_visit_recorded", fmt.Sprintf("client id %d", input.ClientID))
	return id, nil
}

func (s *ClientService) ListVisits(ctx context.Context, from, to *time.Time, purpose string) ([]model.ClientVisitRow, error) {
	return s.clients.ListVisits(ctx, from, to, purpose)
}

func (s *ClientService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
