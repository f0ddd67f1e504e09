package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c model.Client) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO clients (name, telephone_number, email, status, added_by_user_id)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, c.Name, c.TelephoneNumber, c.Email, c.Status, c.AddedByUserID).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Reactivate flips an inactive client back to active with fresh
// details, keeping the row and its history.
func (r *ClientRepository) Reactivate(ctx context.Context, id int64, name, email string, addedBy *int64) error {
	return r.db.WithContext(ctx).Exec(`
		UPDATE clients
		SET name = ?, email = ?, status = 'active', added_by_user_id = ?
		WHERE id = ?
	`, name, email, addedBy, id).Error
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, telephone_number, email, status, added_by_user_id
		FROM clients
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

func (r *ClientRepository) GetByPhone(ctx context.Context, phone string) (*model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, telephone_number, email, status, added_by_user_id
		FROM clients
		WHERE telephone_number = ?
		LIMIT 1
	`, phone).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &c, nil
}

// ListActive returns active clients with the registering username.
func (r *ClientRepository) ListActive(ctx context.Context) ([]model.ClientRow, error) {
	var rows []model.ClientRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.telephone_number,
			c.email,
			c.status,
			c.added_by_user_id,
			u.username AS added_by_username
		FROM clients c
		LEFT JOIN users u ON c.added_by_user_id = u.id
		WHERE c.status = 'active'
		ORDER BY c.name ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll includes inactive clients; transfers may involve either.
func (r *ClientRepository) ListAll(ctx context.Context) ([]model.ClientRow, error) {
	var rows []model.ClientRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			c.id,
			c.name,
			c.telephone_number,
			c.email,
			c.status,
			c.added_by_user_id,
			u.username AS added_by_username
		FROM clients c
		LEFT JOIN users u ON c.added_by_user_id = u.id
		ORDER BY c.name ASC
	`).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClientRepository) Update(ctx context.Context, id int64, changes map[string]interface{}) error {
	var sets []string
	var args []interface{}
	for _, column := range []string{"name", "telephone_number", "email"} {
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
		"UPDATE clients SET "+strings.Join(sets, ", ")+" WHERE id = ?", args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Deactivate soft-deletes a client; rows are never removed.
func (r *ClientRepository) Deactivate(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`
		UPDATE clients SET status = 'inactive' WHERE id = ?
	`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ClientRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM clients WHERE status = 'active'
	`).Scan(&count).Error
	return count, err
}

// ListProperties returns parcels a client has bought, via the sales
// records.
func (r *ClientRepository) ListProperties(ctx context.Context, clientID int64) ([]model.ClientPropertyRow, error) {
	var rows []model.ClientPropertyRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.title_deed_number,
			p.location,
			p.size,
			p.price,
			p.status,
			t.transaction_date,
			t.total_amount_paid
		FROM properties p
		JOIN transactions t ON p.id = t.property_id
		WHERE t.client_id = ?
		ORDER BY t.transaction_date DESC
	`, clientID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClientRepository) AddVisit(ctx context.Context, v model.ClientVisit) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO client_visits (client_id, purpose, brought_by, added_by_user_id, visited_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id
	`, v.ClientID, v.Purpose, v.BroughtBy, v.AddedByUserID, v.VisitedAt).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ClientRepository) ListVisits(ctx context.Context, from, to *time.Time, purpose string) ([]model.ClientVisitRow, error) {
	query := `
		SELECT
			v.id,
			c.name,
			c.telephone_number,
			c.email,
			v.purpose,
			v.brought_by,
			v.visited_at
		FROM client_visits v
		JOIN clients c ON v.client_id = c.id
		WHERE 1=1
	`
	var args []interface{}
	if from != nil {
		query += " AND v.visited_at >= ?"
		args = append(args, *from)
	}
	if to != nil {
		query += " AND v.visited_at <= ?"
		args = append(args, *to)
	}
	if purpose != "" {
		query += " AND v.purpose = ?"
		args = append(args, purpose)
	}
	query += " ORDER BY v.visited_at DESC"

	var rows []model.ClientVisitRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
