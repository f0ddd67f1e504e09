package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type PlanRepository struct {
	db *gorm.DB
}

func NewPlanRepository(db *gorm.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

func (r *PlanRepository) Create(ctx context.Context, p model.PaymentPlan) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO payment_plans (
			name, deposit_percentage, duration_months, interest_rate, created_by
		) VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, p.Name, p.DepositPercentage, p.DurationMonths, p.InterestRate, p.CreatedBy).
		Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PlanRepository) GetByID(ctx context.Context, id int64) (*model.PaymentPlan, error) {
	var plan model.PaymentPlan
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, deposit_percentage, duration_months, interest_rate, created_by
		FROM payment_plans
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&plan).Error
	if err != nil {
		return nil, err
	}
	if plan.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &plan, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]model.PaymentPlan, error) {
	var plans []model.PaymentPlan
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, deposit_percentage, duration_months, interest_rate, created_by
		FROM payment_plans
		ORDER BY name
	`).Scan(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *PlanRepository) Update(ctx context.Context, p model.PaymentPlan) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE payment_plans
		SET name = ?, deposit_percentage = ?, duration_months = ?, interest_rate = ?
		WHERE id = ?
	`, p.Name, p.DepositPercentage, p.DurationMonths, p.InterestRate, p.ID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PlanRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM payment_plans WHERE id = ?`, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
