package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type ServiceJobRepository struct {
	db *gorm.DB
}

func NewServiceJobRepository(db *gorm.DB) *ServiceJobRepository {
	return &ServiceJobRepository{db: db}
}

// JobFilter narrows the paginated job listing.
type JobFilter struct {
	Search string
	Limit  int
	Offset int
}

// JobReportFilter narrows the job/payment report join.
type JobReportFilter struct {
	From   *time.Time
	To     *time.Time
	Status string
}

// Create inserts the job together with its opening payment record:
// nothing paid yet, balance equal to the agreed fee. One transaction
// so a job can never exist without a payment row.
func (r *ServiceJobRepository) Create(ctx context.Context, job model.ServiceJob) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		if err := tx.Raw(`
			INSERT INTO service_jobs (
				file_id, job_description, title_name, title_number,
				fee, status, added_by, brought_by, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			job.FileID, job.JobDescription, job.TitleName, job.TitleNumber,
			job.Fee, model.JobStatusOngoing, job.AddedBy, job.BroughtBy, now,
		).Scan(&id).Error; err != nil {
			return err
		}

		return tx.Exec(`
			INSERT INTO service_payments (job_id, fee, amount, balance, payment_date, status)
			VALUES (?, ?, 0, ?, ?, ?)
		`, id, job.Fee, job.Fee, now, model.PaymentStatusUnpaid).Error
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ServiceJobRepository) GetByID(ctx context.Context, id int64) (*model.ServiceJob, error) {
	var job model.ServiceJob
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, file_id, job_description, title_name, title_number,
			fee, status, added_by, brought_by, created_at
		FROM service_jobs
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&job).Error
	if err != nil {
		return nil, err
	}
	if job.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &job, nil
}

// GetDetails joins the job with its file and client, as needed for
// receipts and dispatch notes.
func (r *ServiceJobRepository) GetDetails(ctx context.Context, id int64) (*model.ServiceJobRow, error) {
	var row model.ServiceJobRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sj.id,
			sj.job_description,
			sj.title_name,
			sj.title_number,
			sj.fee,
			sj.status,
			sj.added_by,
			sj.brought_by,
			sj.created_at,
			cf.file_name,
			sc.name AS client_name,
			sc.telephone_number
		FROM service_jobs sj
		JOIN client_files cf ON sj.file_id = cf.id
		JOIN service_clients sc ON cf.client_id = sc.id
		WHERE sj.id = ?
		LIMIT 1
	`, id).Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *ServiceJobRepository) List(ctx context.Context, f JobFilter) ([]model.ServiceJobRow, error) {
	query := `
		SELECT
			sj.id, sj.job_description, sj.title_name, sj.title_number,
			sj.fee, sj.status, sj.added_by, sj.brought_by, sj.created_at,
			cf.file_name, sc.name AS client_name, sc.telephone_number
		FROM service_jobs sj
		JOIN client_files cf ON sj.file_id = cf.id
		JOIN service_clients sc ON cf.client_id = sc.id
		WHERE 1=1`
	args := []interface{}{}
	if f.Search != "" {
		query += ` AND (sj.title_name LIKE ? OR sj.title_number LIKE ? OR sj.job_description LIKE ? OR sc.name LIKE ?)`
		pattern := "%" + f.Search + "%"
		args = append(args, pattern, pattern, pattern, pattern)
	}
	query += ` ORDER BY sj.created_at DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, f.Offset)
	}

	var rows []model.ServiceJobRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ServiceJobRepository) ListByFile(ctx context.Context, fileID int64) ([]model.ServiceJob, error) {
	var jobs []model.ServiceJob
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, file_id, job_description, title_name, title_number,
			fee, status, added_by, brought_by, created_at
		FROM service_jobs
		WHERE file_id = ?
		ORDER BY created_at DESC
	`, fileID).Scan(&jobs).Error
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *ServiceJobRepository) ListCompleted(ctx context.Context) ([]model.ServiceJobRow, error) {
	var rows []model.ServiceJobRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			sj.id, sj.job_description, sj.title_name, sj.title_number,
			sj.fee, sj.status, sj.added_by, sj.brought_by, sj.created_at,
			cf.file_name, sc.name AS client_name, sc.telephone_number
		FROM service_jobs sj
		JOIN client_files cf ON sj.file_id = cf.id
		JOIN service_clients sc ON cf.client_id = sc.id
		WHERE sj.status = ?
		ORDER BY sj.created_at DESC
	`, model.JobStatusCompleted).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update writes only columns the caller is allowed to change. A fee
// change also rewrites the payment record so balance stays fee minus
// the amount already paid.
func (r *ServiceJobRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) error {
	var sets []string
	var args []interface{}
	for _, column := range []string{
		"job_description", "title_name", "title_number", "brought_by", "fee",
	} {
		value, ok := changes[column]
		if !ok {
			continue
		}
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("UPDATE service_jobs SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		fee, ok := changes["fee"]
		if !ok {
			return nil
		}
		return tx.Exec(`
			UPDATE service_payments
			SET fee = ?,
				balance = ? - amount,
				status = CASE
					WHEN amount <= 0 THEN ?
					WHEN amount >= ? THEN ?
					ELSE ?
				END
			WHERE job_id = ?
		`, fee, fee, model.PaymentStatusUnpaid, fee, model.PaymentStatusPaid, model.PaymentStatusPartial, id).Error
	})
}

func (r *ServiceJobRepository) UpdateStatus(ctx context.Context, id int64, status model.JobStatus) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE service_jobs SET status = ? WHERE id = ?
	`, status, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// StatusCounts returns how many jobs sit in each status.
func (r *ServiceJobRepository) StatusCounts(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*) AS count FROM service_jobs GROUP BY status
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Report joins jobs with their payment records for exporting; jobs
// without a payment row still appear.
func (r *ServiceJobRepository) Report(ctx context.Context, f JobReportFilter) ([]model.JobReportRow, error) {
	query := `
		SELECT
			sj.id AS job_id,
			sj.job_description,
			sj.title_name,
			sj.title_number,
			sj.fee AS job_fee,
			sj.status AS job_status,
			sj.created_at AS job_created,
			sp.id AS payment_id,
			sp.amount AS amount_paid,
			sp.balance,
			sp.fee AS agreed_fee,
			sp.payment_date,
			sp.status AS payment_status
		FROM service_jobs sj
		LEFT JOIN service_payments sp ON sj.id = sp.job_id
		WHERE 1=1`
	args := []interface{}{}
	if f.From != nil {
		query += ` AND sp.payment_date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND sp.payment_date <= ?`
		args = append(args, *f.To)
	}
	if f.Status != "" {
		query += ` AND sj.status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY sj.created_at DESC`

	var rows []model.JobReportRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
