package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type DispatchRepository struct {
	db *gorm.DB
}

func NewDispatchRepository(db *gorm.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// DispatchFilter narrows the dispatch listing.
type DispatchFilter struct {
	From        *time.Time
	To          *time.Time
	TitleNumber string
	CollectedBy string
}

// Create records the handover and marks the job Dispatched in the
// same transaction.
func (r *DispatchRepository) Create(ctx context.Context, d model.ServiceDispatch) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Raw(`
			INSERT INTO service_dispatch (
				job_id, dispatch_date, reason_for_dispatch,
				collected_by, collector_phone, sign
			) VALUES (?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			d.JobID, d.DispatchDate, d.ReasonForDispatch,
			d.CollectedBy, d.CollectorPhone, d.Sign,
		).Scan(&id).Error; err != nil {
			return err
		}

		res := tx.Exec(`
			UPDATE service_jobs SET status = ? WHERE id = ?
		`, model.JobStatusDispatched, d.JobID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *DispatchRepository) List(ctx context.Context, f DispatchFilter) ([]model.DispatchRow, error) {
	query := `
		SELECT
			sd.job_id,
			sd.dispatch_date,
			sj.title_name,
			sj.title_number,
			sj.job_description,
			sd.collected_by,
			sd.collector_phone,
			sd.reason_for_dispatch
		FROM service_dispatch sd
		JOIN service_jobs sj ON sd.job_id = sj.id
		WHERE 1=1`
	args := []interface{}{}
	if f.From != nil {
		query += ` AND sd.dispatch_date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND sd.dispatch_date <= ?`
		args = append(args, *f.To)
	}
	if f.TitleNumber != "" {
		query += ` AND sj.title_number LIKE ?`
		args = append(args, "%"+f.TitleNumber+"%")
	}
	if f.CollectedBy != "" {
		query += ` AND sd.collected_by LIKE ?`
		args = append(args, "%"+f.CollectedBy+"%")
	}
	query += ` ORDER BY sd.dispatch_date DESC`

	var rows []model.DispatchRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// SignatureByJobID returns the captured signature image for a
// dispatched job.
func (r *DispatchRepository) SignatureByJobID(ctx context.Context, jobID int64) ([]byte, error) {
	var row struct {
		ID   int64
		Sign []byte
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, sign FROM service_dispatch WHERE job_id = ? LIMIT 1
	`, jobID).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return row.Sign, nil
}
