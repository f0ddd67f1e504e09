package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

// ActivityRepository is the append-only audit trail.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// ActivityFilter narrows the log listing.
type ActivityFilter struct {
	UserID     *int64
	ActionType string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

func (r *ActivityRepository) Append(ctx context.Context, userID int64, actionType, details string) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO activity_logs (logged_at, user_id, action_type, details)
		VALUES (?, ?, ?, ?)
	`, time.Now(), userID, actionType, details).Error
}

func (r *ActivityRepository) List(ctx context.Context, f ActivityFilter) ([]model.ActivityLogRow, error) {
	query := `
		SELECT
			l.id,
			l.logged_at,
			l.action_type,
			l.details,
			u.username
		FROM activity_logs l
		LEFT JOIN users u ON l.user_id = u.id
		WHERE 1=1`
	args := []interface{}{}
	if f.UserID != nil {
		query += ` AND l.user_id = ?`
		args = append(args, *f.UserID)
	}
	if f.ActionType != "" {
		query += ` AND l.action_type = ?`
		args = append(args, f.ActionType)
	}
	if f.From != nil {
		query += ` AND l.logged_at >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND l.logged_at <= ?`
		args = append(args, *f.To)
	}
	query += ` ORDER BY l.logged_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, f.Offset)
	}

	var rows []model.ActivityLogRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
