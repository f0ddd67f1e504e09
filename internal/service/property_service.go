package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/config"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type PropertyService struct {
	properties *repository.PropertyRepository
	pool       *repository.TransferPoolRepository
	clients    *repository.ClientRepository
	activity   *repository.ActivityRepository
	pages      pageLimits
}

func NewPropertyService(
	properties *repository.PropertyRepository,
	pool *repository.TransferPoolRepository,
	clients *repository.ClientRepository,
	activity *repository.ActivityRepository,
	cfg *config.Config,
) *PropertyService {
	return &PropertyService{
		properties: properties,
		pool:       pool,
		clients:    clients,
		activity:   activity,
		pages:      newPageLimits(cfg.Listing),
	}
}

type AddPropertyInput struct {
	PropertyType    model.PropertyType
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
	Principal       model.Principal
}

type ListPropertiesInput struct {
	Search   string
	MinSize  *float64
	MaxSize  *float64
	Status   string
	Page     int
	PageSize int
}

type UpdatePropertyInput struct {
	PropertyID int64
	Changes    map[string]interface{}
	Principal  model.Principal
}

// Add registers a parcel. A second Available parcel under the same
// title deed is rejected; the owner is auto-registered as a client
// when the phone number is new.
func (s *PropertyService) Add(ctx context.Context, input AddPropertyInput) (int64, error) {
	if input.TitleDeedNumber == "" || input.Location == "" || input.Owner == "" {
		return 0, fmt.Errorf("%w: title deed, location and owner are required", ErrInvalidInput)
	}
	if input.Size <= 0 {
		return 0, fmt.Errorf("%w: size must be positive", ErrInvalidInput)
	}
	propertyType := input.PropertyType
	if propertyType == "" {
		propertyType = model.PropertyTypeBlock
	}

	existing, err := s.properties.ListByTitleDeed(ctx, input.TitleDeedNumber)
	if err != nil {
		return 0, err
	}
	for _, p := range existing {
		if p.Status == model.PropertyStatusAvailable {
			return 0, fmt.Errorf("%w: an available property with deed %q already exists", ErrConflict, input.TitleDeedNumber)
		}
	}

	addedBy := &input.Principal.UserID
	id, err := s.properties.Create(ctx, model.Property{
		PropertyType:    propertyType,
		TitleDeedNumber: input.TitleDeedNumber,
		Location:        input.Location,
		Size:            input.Size,
		Description:     input.Description,
		Owner:           input.Owner,
		TelephoneNumber: input.TelephoneNumber,
		Email:           input.Email,
		Price:           input.Price,
		ImagePaths:      input.ImagePaths,
		TitleImagePaths: input.TitleImagePaths,
		Status:          model.PropertyStatusAvailable,
		AddedByUserID:   addedBy,
	})
	if err != nil {
		return 0, err
	}

	if input.TelephoneNumber != "" {
		s.registerOwnerClient(ctx, input.Owner, input.TelephoneNumber, input.Email, addedBy)
	}

	s.audit(ctx, input.Principal.UserID, "property_added", fmt.Sprintf("property %q (id %d)", input.TitleDeedNumber, id))
	return id, nil
}

// AddToTransferPool registers a parcel held only for ownership
// transfers. Duplicate deeds are rejected outright there.
func (s *PropertyService) AddToTransferPool(ctx context.Context, input AddPropertyInput) (int64, error) {
	if input.TitleDeedNumber == "" || input.Location == "" || input.Owner == "" {
		return 0, fmt.Errorf("%w: title deed, location and owner are required", ErrInvalidInput)
	}
	if input.Size <= 0 {
		return 0, fmt.Errorf("%w: size must be positive", ErrInvalidInput)
	}

	existing, err := s.pool.ListByTitleDeed(ctx, input.TitleDeedNumber)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, fmt.Errorf("%w: a transfer property with deed %q already exists", ErrConflict, input.TitleDeedNumber)
	}

	addedBy := &input.Principal.UserID
	id, err := s.pool.Create(ctx, model.TransferPoolProperty{
		TitleDeedNumber: input.TitleDeedNumber,
		Location:        input.Location,
		Size:            input.Size,
		Description:     input.Description,
		Owner:           input.Owner,
		TelephoneNumber: input.TelephoneNumber,
		Email:           input.Email,
		ImagePaths:      input.ImagePaths,
		TitleImagePaths: input.TitleImagePaths,
		AddedByUserID:   addedBy,
	})
	if err != nil {
		return 0, err
	}

	if input.TelephoneNumber != "" {
		s.registerOwnerClient(ctx, input.Owner, input.TelephoneNumber, input.Email, addedBy)
	}

	s.audit(ctx, input.Principal.UserID, "transfer_property_added", fmt.Sprintf("property %q (id %d)", input.TitleDeedNumber, id))
	return id, nil
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*model.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return property, nil
}

func (s *PropertyService) GetBySource(ctx context.Context, id int64, source model.PropertySource) (*model.PropertyRow, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("%w: source must be Main or Transfer", ErrInvalidInput)
	}
	row, err := s.pool.GetBySource(ctx, id, source)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return row, nil
}

func (s *PropertyService) List(ctx context.Context, input ListPropertiesInput) ([]model.PropertyRow, error) {
	return s.properties.List(ctx, s.buildFilter(input))
}

// ListCombined spans the main table and the transfer pool.
func (s *PropertyService) ListCombined(ctx context.Context, input ListPropertiesInput) ([]model.PropertyRow, error) {
	return s.pool.ListCombined(ctx, s.buildFilter(input))
}

func (s *PropertyService) ListSold(ctx context.Context, page, pageSize int, from, to *time.Time) ([]model.SoldPropertyRow, int64, error) {
	limit, offset := s.pages.resolve(page, pageSize)
	rows, err := s.properties.ListSold(ctx, limit, offset, from, to)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.properties.CountSold(ctx, from, to)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *PropertyService) Update(ctx context.Context, input UpdatePropertyInput) error {
	if len(input.Changes) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if err := s.properties.Update(ctx, input.PropertyID, input.Changes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, input.Principal.UserID, "property_updated", fmt.Sprintf("property id %d", input.PropertyID))
	return nil
}

func (s *PropertyService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.properties.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "property_deleted", fmt.Sprintf("property id %d", id))
	return nil
}

func (s *PropertyService) buildFilter(input ListPropertiesInput) repository.PropertyFilter {
	limit, offset := s.pages.resolve(input.Page, input.PageSize)
	return repository.PropertyFilter{
		Search:  input.Search,
		MinSize: input.MinSize,
		MaxSize: input.MaxSize,
		Status:  input.Status,
		Limit:   limit,
		Offset:  offset,
	}
}

// registerOwnerClient mirrors the walk-in client rules: a new phone
// creates a client, an inactive one is reactivated, an active one is
// left alone.
func (s *PropertyService) registerOwnerClient(ctx context.Context, name, phone, email string, addedBy *int64) {
	client, err := s.clients.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = s.clients.Create(ctx, model.Client{
				Name:            name,
				TelephoneNumber: phone,
				Email:           email,
				Status:          model.ClientStatusActive,
				AddedByUserID:   addedBy,
			})
		}
		return
	}
	if client.Status == model.ClientStatusInactive {
		_ = s.clients.Reactivate(ctx, client.ID, name, email, addedBy)
	}
}

func (s *PropertyService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
