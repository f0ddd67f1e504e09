package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type TransferRepository struct {
	db *gorm.DB
}

func NewTransferRepository(db *gorm.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

// Execute performs the ownership change atomically: the new owner's
// name is resolved, the owner column on the selected source table is
// rewritten and one audit row is appended. Any failure rolls the whole
// thing back.
func (r *TransferRepository) Execute(ctx context.Context, transfer model.PropertyTransfer, source model.PropertySource) (int64, error) {
	var transferID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var newOwner string
		if err := tx.Raw(`
			SELECT name FROM clients WHERE id = ?
		`, transfer.ToClientID).Scan(&newOwner).Error; err != nil {
			return err
		}
		if newOwner == "" {
			return gorm.ErrRecordNotFound
		}

		var table string
		switch source {
		case model.SourceMain:
			table = "properties"
		case model.SourceTransfer:
			table = "properties_for_transfer"
		default:
			return fmt.Errorf("invalid source table %q", source)
		}

		result := tx.Exec(
			"UPDATE "+table+" SET owner = ? WHERE id = ?",
			newOwner, transfer.PropertyID,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Raw(`
			INSERT INTO property_transfers (
				property_id, from_client_id, to_client_id, transfer_price,
				transfer_date, executed_by_user_id, supervising_agent_id,
				transfer_document_path, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			transfer.PropertyID, transfer.FromClientID, transfer.ToClientID,
			transfer.TransferPrice, transfer.TransferDate,
			transfer.ExecutedByUserID, transfer.SupervisingAgentID,
			transfer.TransferDocumentPath, time.Now(),
		).Scan(&transferID).Error
	})
	if err != nil {
		return 0, err
	}
	return transferID, nil
}

func (r *TransferRepository) List(ctx context.Context, from, to *time.Time) ([]model.PropertyTransferRow, error) {
	query := `
		SELECT
			pt.id,
			pt.property_id,
			cf.name AS from_client_name,
			ct.name AS to_client_name,
			pt.transfer_price,
			pt.transfer_date,
			u.username AS executed_by,
			pt.created_at
		FROM property_transfers pt
		LEFT JOIN clients cf ON pt.from_client_id = cf.id
		JOIN clients ct ON pt.to_client_id = ct.id
		JOIN users u ON pt.executed_by_user_id = u.id
		WHERE 1=1
	`
	var args []interface{}
	if from != nil {
		query += " AND pt.transfer_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND pt.transfer_date <= ?"
		args = append(args, *to)
	}
	query += " ORDER BY pt.transfer_date DESC"

	var rows []model.PropertyTransferRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
