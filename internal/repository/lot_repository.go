package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

// Errors surfaced by the subdivision transactions.
var (
	ErrInsufficientBlockSize = errors.New("lot size exceeds remaining block size")
	ErrLotNotProposed        = errors.New("lot is not in Proposed status")
)

// Size below which a block counts as fully subdivided; guards
// floating-point residue.
const exhaustedSizeTolerance = 0.001

type LotRepository struct {
	db *gorm.DB
}

func NewLotRepository(db *gorm.DB) *LotRepository {
	return &LotRepository{db: db}
}

// Propose carves a lot out of a parent block: the parent's remaining
// size is decremented with the size check in the UPDATE's WHERE clause,
// the proposed-lot row is inserted and the parent is flipped to
// Unavailable once exhausted. The guarded decrement keeps concurrent
// proposals from double-booking a block.
func (r *LotRepository) Propose(ctx context.Context, lot model.ProposedLot) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			UPDATE properties SET size = size - ? WHERE id = ? AND size >= ?
		`, lot.Size, lot.ParentBlockID, lot.Size)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var parentID int64
			if err := tx.Raw(`
				SELECT id FROM properties WHERE id = ?
			`, lot.ParentBlockID).Scan(&parentID).Error; err != nil {
				return err
			}
			if parentID == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrInsufficientBlockSize
		}

		if err := tx.Raw(`
			INSERT INTO proposed_lots (
				parent_block_id, size, location, surveyor_name, created_by,
				title_deed_number, price, status, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			lot.ParentBlockID, lot.Size, lot.Location, lot.SurveyorName,
			lot.CreatedBy, lot.TitleDeedNumber, lot.Price,
			model.LotStatusProposed, time.Now(),
		).Scan(&id).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE properties SET status = ? WHERE id = ? AND size <= ?
		`, model.PropertyStatusUnavailable, lot.ParentBlockID, exhaustedSizeTolerance).Error
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *LotRepository) GetByID(ctx context.Context, id int64) (*model.ProposedLot, error) {
	var lot model.ProposedLot
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, parent_block_id, size, location, surveyor_name,
			created_by, title_deed_number, price, status, created_at
		FROM proposed_lots
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&lot).Error
	if err != nil {
		return nil, err
	}
	if lot.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &lot, nil
}

// ListWithDetails joins each proposed lot with its parent block's
// title deed.
func (r *LotRepository) ListWithDetails(ctx context.Context) ([]model.ProposedLotRow, error) {
	var rows []model.ProposedLotRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			pl.id,
			p.title_deed_number AS parent_deed,
			pl.size,
			pl.location,
			pl.surveyor_name,
			pl.created_by,
			pl.status
		FROM proposed_lots pl
		JOIN properties p ON pl.parent_block_id = p.id
		ORDER BY pl.created_at DESC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPending returns lots still awaiting confirmation or rejection.
func (r *LotRepository) ListPending(ctx context.Context) ([]model.ProposedLot, error) {
	var lots []model.ProposedLot
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, parent_block_id, size, location, surveyor_name,
			created_by, title_deed_number, price, status, created_at
		FROM proposed_lots
		WHERE status = ?
		ORDER BY created_at DESC
	`, model.LotStatusProposed).Scan(&lots).Error
	if err != nil {
		return nil, err
	}
	return lots, nil
}

// Confirm promotes a proposed lot into the properties table and marks
// the lot Confirmed, atomically. The parent block keeps its reduced
// size.
func (r *LotRepository) Confirm(ctx context.Context, lotID int64, property model.Property) (int64, error) {
	var propertyID int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var status string
		if err := tx.Raw(`
			SELECT status FROM proposed_lots WHERE id = ?
		`, lotID).Scan(&status).Error; err != nil {
			return err
		}
		if status == "" {
			return gorm.ErrRecordNotFound
		}
		if status != string(model.LotStatusProposed) {
			return ErrLotNotProposed
		}

		if err := tx.Raw(`
			INSERT INTO properties (
				property_type, title_deed_number, location, size,
				description, owner, telephone_number, email, price,
				image_paths, title_image_paths, status, added_by_user_id
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id
		`,
			model.PropertyTypeLot, property.TitleDeedNumber, property.Location,
			property.Size, property.Description, property.Owner,
			property.TelephoneNumber, property.Email, property.Price,
			property.ImagePaths, property.TitleImagePaths,
			model.PropertyStatusAvailable, property.AddedByUserID,
		).Scan(&propertyID).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE proposed_lots SET status = ? WHERE id = ?
		`, model.LotStatusConfirmed, lotID).Error
	})
	if err != nil {
		return 0, err
	}
	return propertyID, nil
}

// Reject returns the lot's size to the parent block, restores the
// parent to Available when subdivision had exhausted it, and marks the
// lot Rejected, all in one transaction.
func (r *LotRepository) Reject(ctx context.Context, lotID int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lot struct {
			ID            int64
			ParentBlockID int64
			Size          float64
			Status        string
		}
		if err := tx.Raw(`
			SELECT id, parent_block_id, size, status
			FROM proposed_lots
			WHERE id = ?
		`, lotID).Scan(&lot).Error; err != nil {
			return err
		}
		if lot.ID == 0 {
			return gorm.ErrRecordNotFound
		}
		if lot.Status != string(model.LotStatusProposed) {
			return ErrLotNotProposed
		}

		res := tx.Exec(`
			UPDATE properties SET size = size + ? WHERE id = ?
		`, lot.Size, lot.ParentBlockID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Exec(`
			UPDATE properties SET status = ? WHERE id = ? AND status = ?
		`, model.PropertyStatusAvailable, lot.ParentBlockID,
			model.PropertyStatusUnavailable).Error; err != nil {
			return err
		}

		return tx.Exec(`
			UPDATE proposed_lots SET status = ? WHERE id = ?
		`, model.LotStatusRejected, lotID).Error
	})
}
