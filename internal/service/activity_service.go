package service

import (
	"context"
	"time"

	"github.com/drelocd/estate-service/internal/config"
	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type ActivityService struct {
	activity *repository.ActivityRepository
	pages    pageLimits
}

func NewActivityService(activity *repository.ActivityRepository, cfg *config.Config) *ActivityService {
	return &ActivityService{activity: activity, pages: newPageLimits(cfg.Listing)}
}

type ListActivityInput struct {
	UserID     *int64
	ActionType string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
	Principal  model.Principal
}

func (s *ActivityService) List(ctx context.Context, input ListActivityInput) ([]model.ActivityLogRow, error) {
	if !input.Principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	limit, offset := s.pages.resolve(input.Page, input.PageSize)
	return s.activity.List(ctx, repository.ActivityFilter{
		UserID:     input.UserID,
		ActionType: input.ActionType,
		From:       input.From,
		To:         input.To,
		Limit:      limit,
		Offset:     offset,
	})
}
