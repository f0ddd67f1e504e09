package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

// TransferPoolRepository covers the parallel parcel table used only
// for ownership transfers, plus the combined listing over both tables.
type TransferPoolRepository struct {
	db *gorm.DB
}

func NewTransferPoolRepository(db *gorm.DB) *TransferPoolRepository {
	return &TransferPoolRepository{db: db}
}

func (r *TransferPoolRepository) Create(ctx context.Context, p model.TransferPoolProperty) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO properties_for_transfer (
			title_deed_number, location, size, description, owner,
			telephone_number, email, image_paths, title_image_paths,
			added_by_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		p.TitleDeedNumber, p.Location, p.Size, p.Description, p.Owner,
		p.TelephoneNumber, p.Email, p.ImagePaths, p.TitleImagePaths,
		p.AddedByUserID,
	).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *TransferPoolRepository) ListByTitleDeed(ctx context.Context, titleDeed string) ([]model.TransferPoolProperty, error) {
	var props []model.TransferPoolProperty
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, title_deed_number, location, size, description, owner,
			telephone_number, email, image_paths, title_image_paths,
			added_by_user_id
		FROM properties_for_transfer
		WHERE title_deed_number = ?
	`, titleDeed).Scan(&props).Error
	if err != nil {
		return nil, err
	}
	return props, nil
}

// ListCombined unions both parcel tables into one page; transfer-pool
// rows surface NULL price and status.
func (r *TransferPoolRepository) ListCombined(ctx context.Context, filter PropertyFilter) ([]model.PropertyRow, error) {
	query := `
		SELECT * FROM (
			SELECT
				p.id,
				p.property_type,
				p.title_deed_number,
				p.location,
				p.size,
				p.description,
				p.price,
				p.telephone_number,
				p.image_paths,
				p.title_image_paths,
				p.status,
				p.added_by_user_id,
				p.owner,
				u.username AS added_by_username,
				'Main' AS source
			FROM properties p
			LEFT JOIN users u ON p.added_by_user_id = u.id
			UNION ALL
			SELECT
				pt.id,
				'' AS property_type,
				pt.title_deed_number,
				pt.location,
				pt.size,
				pt.description,
				NULL AS price,
				pt.telephone_number,
				pt.image_paths,
				pt.title_image_paths,
				NULL AS status,
				pt.added_by_user_id,
				pt.owner,
				u.username AS added_by_username,
				'Transfer' AS source
			FROM properties_for_transfer pt
			LEFT JOIN users u ON pt.added_by_user_id = u.id
		) combined
		WHERE 1=1
	`
	var args []interface{}

	if filter.Search != "" {
		query += " AND (title_deed_number LIKE ? OR location LIKE ? OR description LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.MinSize != nil {
		query += " AND size >= ?"
		args = append(args, *filter.MinSize)
	}
	if filter.MaxSize != nil {
		query += " AND size <= ?"
		args = append(args, *filter.MaxSize)
	}
	if filter.Status != "" {
		query += " AND (status = ? OR status IS NULL)"
		args = append(args, filter.Status)
	}

	query += " ORDER BY id DESC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	var rows []model.PropertyRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBySource fetches one parcel from whichever table the caller
// points at.
func (r *TransferPoolRepository) GetBySource(ctx context.Context, id int64, source model.PropertySource) (*model.PropertyRow, error) {
	var query string
	switch source {
	case model.SourceMain:
		query = `
			SELECT
				p.id, p.property_type, p.title_deed_number, p.location,
				p.size, p.description, p.price, p.telephone_number,
				p.image_paths, p.title_image_paths, p.status,
				p.added_by_user_id, p.owner,
				u.username AS added_by_username,
				'Main' AS source
			FROM properties p
			LEFT JOIN users u ON p.added_by_user_id = u.id
			WHERE p.id = ?
		`
	case model.SourceTransfer:
		query = `
			SELECT
				pt.id, '' AS property_type, pt.title_deed_number,
				pt.location, pt.size, pt.description, NULL AS price,
				pt.telephone_number, pt.image_paths, pt.title_image_paths,
				NULL AS status, pt.added_by_user_id, pt.owner,
				u.username AS added_by_username,
				'Transfer' AS source
			FROM properties_for_transfer pt
			LEFT JOIN users u ON pt.added_by_user_id = u.id
			WHERE pt.id = ?
		`
	default:
		return nil, gorm.ErrRecordNotFound
	}

	var row model.PropertyRow
	if err := r.db.WithContext(ctx).Raw(query, id).Scan(&row).Error; err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}
