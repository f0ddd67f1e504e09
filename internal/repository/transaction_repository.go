package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

// ErrPropertyNotAvailable is returned when a sale targets a parcel that
// is no longer Available.
var ErrPropertyNotAvailable = errors.New("property is not available for sale")

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// TransactionFilter narrows the detailed sales listing.
type TransactionFilter struct {
	Status        string // "complete" or "pending", via balance
	From          *time.Time
	To            *time.Time
	PaymentMode   string
	ClientName    string
	PropertyQuery string
	ClientContact string
}

// RecordSale writes the sale and flips the parcel to Sold in one
// transaction. The status guard in the UPDATE's WHERE clause keeps two
// concurrent sales of the same parcel from both succeeding.
func (r *TransactionRepository) RecordSale(ctx context.Context, t model.Transaction) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			UPDATE properties SET status = ? WHERE id = ? AND status = ?
		`, model.PropertyStatusSold, t.PropertyID, model.PropertyStatusAvailable)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrPropertyNotAvailable
		}

		return tx.Raw(`
			INSERT INTO transactions (
				property_id, client_id, payment_mode, total_amount_paid,
				discount, balance, transaction_date, receipt_path,
				added_by_user_id
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			t.PropertyID, t.ClientID, t.PaymentMode, t.TotalAmountPaid,
			t.Discount, t.Balance, t.TransactionDate, t.ReceiptPath,
			t.AddedByUserID,
		).Scan(&id).Error
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var t model.Transaction
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, property_id, client_id, payment_mode, total_amount_paid,
			discount, balance, transaction_date, receipt_path,
			added_by_user_id
		FROM transactions
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&t).Error
	if err != nil {
		return nil, err
	}
	if t.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &t, nil
}

func (r *TransactionRepository) ListByProperty(ctx context.Context, propertyID int64) ([]model.Transaction, error) {
	return r.list(ctx, "property_id", propertyID)
}

func (r *TransactionRepository) ListByClient(ctx context.Context, clientID int64) ([]model.Transaction, error) {
	return r.list(ctx, "client_id", clientID)
}

func (r *TransactionRepository) list(ctx context.Context, column string, value int64) ([]model.Transaction, error) {
	var list []model.Transaction
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, property_id, client_id, payment_mode, total_amount_paid,
			discount, balance, transaction_date, receipt_path,
			added_by_user_id
		FROM transactions
		WHERE `+column+` = ?
		ORDER BY transaction_date DESC
	`, value).Scan(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *TransactionRepository) ListDetailed(ctx context.Context, filter TransactionFilter) ([]model.TransactionRow, error) {
	query := `
		SELECT
			t.id,
			t.transaction_date,
			t.payment_mode,
			t.total_amount_paid,
			t.discount,
			t.balance,
			t.receipt_path,
			c.name AS client_name,
			c.telephone_number AS client_contact_info,
			p.id AS property_id,
			p.title_deed_number,
			p.location,
			p.size,
			p.price AS property_price,
			p.status AS property_status
		FROM transactions t
		JOIN clients c ON t.client_id = c.id
		JOIN properties p ON t.property_id = p.id
		WHERE 1=1
	`
	var args []interface{}

	switch filter.Status {
	case "complete":
		query += " AND t.balance = 0"
	case "pending":
		query += " AND t.balance > 0"
	}
	if filter.From != nil {
		query += " AND t.transaction_date >= ?"
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query += " AND t.transaction_date <= ?"
		args = append(args, *filter.To)
	}
	if filter.PaymentMode != "" {
		query += " AND t.payment_mode = ?"
		args = append(args, filter.PaymentMode)
	}
	if filter.ClientName != "" {
		query += " AND c.name LIKE ?"
		args = append(args, "%"+filter.ClientName+"%")
	}
	if filter.PropertyQuery != "" {
		query += " AND (p.title_deed_number LIKE ? OR p.location LIKE ?)"
		pattern := "%" + filter.PropertyQuery + "%"
		args = append(args, pattern, pattern)
	}
	if filter.ClientContact != "" {
		query += " AND c.telephone_number LIKE ?"
		args = append(args, "%"+filter.ClientContact+"%")
	}
	query += " ORDER BY t.transaction_date DESC"

	var rows []model.TransactionRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// PendingBalance sums the outstanding balances across all sales.
func (r *TransactionRepository) PendingBalance(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(balance), 0) FROM transactions WHERE balance > 0
	`).Scan(&total).Error
	return total, err
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) error {
	var sets []string
	var args []interface{}
	for _, column := range []string{
		"payment_mode", "total_amount_paid", "discount", "balance",
		"receipt_path",
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

	result := r.db.WithContext(ctx).Exec(
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
