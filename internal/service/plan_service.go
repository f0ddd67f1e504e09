package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type PlanService struct {
	plans    *repository.PlanRepository
	activity *repository.ActivityRepository
}

func NewPlanService(plans *repository.PlanRepository, activity *repository.ActivityRepository) *PlanService {
	return &PlanService{plans: plans, activity: activity}
}

type PaymentPlanInput struct {
	PlanID            int64
	Name              string
	DepositPercentage float64
	DurationMonths    int
	InterestRate      float64
	Principal         model.Principal
}

func (p PaymentPlanInput) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if p.DepositPercentage < 0 || p.DepositPercentage > 100 {
		return fmt.Errorf("%w: deposit percentage must be between 0 and 100", ErrInvalidInput)
	}
	if p.DurationMonths <= 0 {
		return fmt.Errorf("%w: duration must be at least one month", ErrInvalidInput)
	}
	if p.InterestRate < 0 {
		return fmt.Errorf("%w: interest rate cannot be negative", ErrInvalidInput)
	}
	return nil
}

func (s *PlanService) Create(ctx context.Context, input PaymentPlanInput) (int64, error) {
	if err := input.validate(); err != nil {
		return 0, err
	}
	id, err := s.plans.Create(ctx, model.PaymentPlan{
		Name:              input.Name,
		DepositPercentage: input.DepositPercentage,
		DurationMonths:    input.DurationMonths,
		InterestRate:      input.InterestRate,
		CreatedBy:         input.Principal.Username,
	})
	if err != nil {
		return 0, err
	}
	s.audit(ctx, input.Principal.UserID, "payment_plan_created", fmt.Sprintf("plan %q (id %d)", input.Name, id))
	return id, nil
}

func (s *PlanService) Get(ctx context.Context, id int64) (*model.PaymentPlan, error) {
	plan, err := s.plans.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *PlanService) List(ctx context.Context) ([]model.PaymentPlan, error) {
	return s.plans.List(ctx)
}

func (s *PlanService) Update(ctx context.Context, input PaymentPlanInput) error {
	if err := input.validate(); err != nil {
		return err
	}
	err := s.plans.Update(ctx, model.PaymentPlan{
		ID:                input.PlanID,
		Name:              input.Name,
		DepositPercentage: input.DepositPercentage,
		DurationMonths:    input.DurationMonths,
		InterestRate:      input.InterestRate,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, input.Principal.UserID, "payment_plan_updated", fmt.Sprintf("plan id %d", input.PlanID))
	return nil
}

func (s *PlanService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.plans.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "payment_plan_deleted", fmt.Sprintf("plan id %d", id))
	return nil
}

func (s *PlanService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
