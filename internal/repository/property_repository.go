package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// PropertyFilter narrows the paginated listings. Zero values mean "no
// filter"; size bounds use pointers so 0 is a usable bound.
type PropertyFilter struct {
	Search  string
	MinSize *float64
	MaxSize *float64
	Status  string
	Limit   int
	Offset  int
}

func (r *PropertyRepository) Create(ctx context.Context, p model.Property) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO properties (
			property_type, title_deed_number, location, size, description,
			owner, telephone_number, email, price, image_paths,
			title_image_paths, status, added_by_user_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`,
		p.PropertyType, p.TitleDeedNumber, p.Location, p.Size, p.Description,
		p.Owner, p.TelephoneNumber, p.Email, p.Price, p.ImagePaths,
		p.TitleImagePaths, p.Status, p.AddedByUserID,
	).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id int64) (*model.Property, error) {
	var p model.Property
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, property_type, title_deed_number, location, size,
			description, owner, telephone_number, email, price,
			image_paths, title_image_paths, status, added_by_user_id
		FROM properties
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r *PropertyRepository) ListByTitleDeed(ctx context.Context, titleDeed string) ([]model.Property, error) {
	var props []model.Property
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, property_type, title_deed_number, location, size,
			description, owner, telephone_number, email, price,
			image_paths, title_image_paths, status, added_by_user_id
		FROM properties
		WHERE title_deed_number = ?
	`, titleDeed).Scan(&props).Error
	if err != nil {
		return nil, err
	}
	return props, nil
}

func (r *PropertyRepository) List(ctx context.Context, filter PropertyFilter) ([]model.PropertyRow, error) {
	query := `
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
		WHERE 1=1
	`
	var args []interface{}

	if filter.Search != "" {
		query += " AND (p.title_deed_number LIKE ? OR p.location LIKE ? OR p.description LIKE ?)"
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.MinSize != nil {
		query += " AND p.size >= ?"
		args = append(args, *filter.MinSize)
	}
	if filter.MaxSize != nil {
		query += " AND p.size <= ?"
		args = append(args, *filter.MaxSize)
	}
	if filter.Status != "" {
		query += " AND p.status = ?"
		args = append(args, filter.Status)
	}

	query += " ORDER BY p.id DESC"
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

// Update writes only columns the caller is allowed to change.
func (r *PropertyRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) error {
	var sets []string
	var args []interface{}
	for _, column := range []string{
		"title_deed_number", "location", "size", "description", "price",
		"image_paths", "title_image_paths", "status", "owner",
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
		"UPDATE properties SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM properties WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *PropertyRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM properties`).Scan(&count).Error
	return count, err
}

func (r *PropertyRepository) CountByStatus(ctx context.Context, status model.PropertyStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM properties WHERE status = ?
	`, status).Scan(&count).Error
	return count, err
}

func (r *PropertyRepository) CountSold(ctx context.Context, from, to *time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM properties p
		JOIN transactions t ON p.id = t.property_id
		WHERE p.status = 'Sold'
	`
	var args []interface{}
	if from != nil {
		query += " AND t.transaction_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND t.transaction_date <= ?"
		args = append(args, *to)
	}

	var count int64
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&count).Error
	return count, err
}

func (r *PropertyRepository) ListSold(ctx context.Context, limit, offset int, from, to *time.Time) ([]model.SoldPropertyRow, error) {
	query := `
		SELECT
			p.id,
			p.title_deed_number,
			p.location,
			p.size,
			p.price AS original_price,
			t.id AS transaction_id,
			t.transaction_date AS date_sold,
			t.total_amount_paid,
			t.discount,
			t.balance,
			c.name AS buyer_name,
			c.telephone_number AS client_contact_info
		FROM properties p
		JOIN transactions t ON p.id = t.property_id
		JOIN clients c ON t.client_id = c.id
		WHERE p.status = 'Sold'
	`
	var args []interface{}
	if from != nil {
		query += " AND t.transaction_date >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND t.transaction_date <= ?"
		args = append(args, *to)
	}
	query += " ORDER BY t.transaction_date DESC, p.title_deed_number ASC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var rows []model.SoldPropertyRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
