package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type ServicePaymentRepository struct {
	db *gorm.DB
}

func NewServicePaymentRepository(db *gorm.DB) *ServicePaymentRepository {
	return &ServicePaymentRepository{db: db}
}

// PaymentFilter narrows the paginated payment listing.
type PaymentFilter struct {
	Status      model.PaymentStatus
	PaymentType string
	ClientName  string
	FileName    string
	TitleNumber string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

func (r *ServicePaymentRepository) GetByID(ctx context.Context, id int64) (*model.ServicePayment, error) {
	var payment model.ServicePayment
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, job_id, fee, amount, balance, payment_date, status
		FROM service_payments
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

func (r *ServicePaymentRepository) GetByJobID(ctx context.Context, jobID int64) (*model.ServicePayment, error) {
	var payment model.ServicePayment
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, job_id, fee, amount, balance, payment_date, status
		FROM service_payments
		WHERE job_id = ?
		LIMIT 1
	`, jobID).Scan(&payment).Error
	if err != nil {
		return nil, err
	}
	if payment.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &payment, nil
}

// RecordPayment applies an instalment: the cumulative amount grows,
// the balance shrinks, the status moves with the remaining balance and
// a history row keeps the individual instalment. One transaction.
func (r *ServicePaymentRepository) RecordPayment(ctx context.Context, paymentID int64, amount float64, paymentType string) (*model.ServicePayment, error) {
	var updated model.ServicePayment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.ServicePayment
		if err := tx.Raw(`
			SELECT id, job_id, fee, amount, balance, payment_date, status
			FROM service_payments
			WHERE id = ?
		`, paymentID).Scan(&current).Error; err != nil {
			return err
		}
		if current.ID == 0 {
			return gorm.ErrRecordNotFound
		}

		newAmount := current.Amount + amount
		newBalance := current.Balance - amount
		status := model.PaymentStatusPartial
		if newBalance <= 0 {
			status = model.PaymentStatusPaid
		}
		now := time.Now()

		if err := tx.Exec(`
			UPDATE service_payments
			SET amount = ?, balance = ?, status = ?, payment_date = ?
			WHERE id = ?
		`, newAmount, newBalance, status, now, paymentID).Error; err != nil {
			return err
		}

		if err := tx.Exec(`
			INSERT INTO service_payment_history (payment_id, payment_amount, payment_type, payment_date)
			VALUES (?, ?, ?, ?)
		`, paymentID, amount, paymentType, now).Error; err != nil {
			return err
		}

		updated = current
		updated.Amount = newAmount
		updated.Balance = newBalance
		updated.Status = status
		updated.PaymentDate = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ServicePaymentRepository) History(ctx context.Context, paymentID int64) ([]model.ServicePaymentHistory, error) {
	var entries []model.ServicePaymentHistory
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, payment_id, payment_amount, payment_type, payment_date
		FROM service_payment_history
		WHERE payment_id = ?
		ORDER BY payment_date DESC
	`, paymentID).Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// List returns one page of payments joined with job, file and client,
// plus the total row count under the same filters.
func (r *ServicePaymentRepository) List(ctx context.Context, f PaymentFilter) ([]model.ServicePaymentRow, int64, error) {
	base := `
		FROM service_payments sp
		JOIN service_jobs sj ON sp.job_id = sj.id
		JOIN client_files cf ON sj.file_id = cf.id
		JOIN service_clients sc ON cf.client_id = sc.id
		WHERE 1=1`
	args := []interface{}{}
	if f.Status != "" {
		base += ` AND sp.status = ?`
		args = append(args, f.Status)
	}
	if f.PaymentType != "" {
		base += ` AND EXISTS (
			SELECT 1 FROM service_payment_history h
			WHERE h.payment_id = sp.id AND h.payment_type = ?
		)`
		args = append(args, f.PaymentType)
	}
	if f.ClientName != "" {
		base += ` AND sc.name LIKE ?`
		args = append(args, "%"+f.ClientName+"%")
	}
	if f.FileName != "" {
		base += ` AND cf.file_name LIKE ?`
		args = append(args, "%"+f.FileName+"%")
	}
	if f.TitleNumber != "" {
		base += ` AND sj.title_number LIKE ?`
		args = append(args, "%"+f.TitleNumber+"%")
	}
	if f.From != nil {
		base += ` AND sp.payment_date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		base += ` AND sp.payment_date <= ?`
		args = append(args, *f.To)
	}

	var total int64
	if err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*)`+base, args...).Scan(&total).Error; err != nil {
		return nil, 0, err
	}

	query := `
		SELECT
			sp.id,
			sc.name AS client_name,
			cf.file_name,
			sj.job_description,
			sj.title_number,
			sp.fee,
			sp.amount,
			sp.balance,
			sp.payment_date` + base + `
		ORDER BY sp.payment_date DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	if f.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, f.Offset)
	}

	var rows []model.ServicePaymentRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SalesSummary buckets gross (agreed fee) and net (amount received)
// revenue by day or month. Bucket expressions differ per dialect.
func (r *ServicePaymentRepository) SalesSummary(ctx context.Context, monthly bool, from, to *time.Time) ([]model.SalesSummaryRow, error) {
	bucket := r.bucketExpr(monthly)
	query := `
		SELECT ` + bucket + ` AS bucket,
			SUM(fee) AS total_gross,
			SUM(amount) AS total_net
		FROM service_payments
		WHERE 1=1`
	args := []interface{}{}
	if from != nil {
		query += ` AND payment_date >= ?`
		args = append(args, *from)
	}
	if to != nil {
		query += ` AND payment_date <= ?`
		args = append(args, *to)
	}
	query += ` GROUP BY ` + bucket + ` ORDER BY ` + bucket + ` DESC`

	var rows []model.SalesSummaryRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ServicePaymentRepository) bucketExpr(monthly bool) string {
	if r.db.Dialector.Name() == "sqlite" {
		if monthly {
			return `strftime('%Y-%m', payment_date)`
		}
		return `DATE(payment_date)`
	}
	if monthly {
		return `to_char(payment_date, 'YYYY-MM')`
	}
	return `to_char(payment_date, 'YYYY-MM-DD')`
}
