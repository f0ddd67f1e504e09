package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

// ServiceClientRepository covers the survey side's customers and their
// document files.
type ServiceClientRepository struct {
	db *gorm.DB
}

func NewServiceClientRepository(db *gorm.DB) *ServiceClientRepository {
	return &ServiceClientRepository{db: db}
}

func (r *ServiceClientRepository) Create(ctx context.Context, c model.ServiceClient) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO service_clients (
			name, telephone_number, email, brought_by, added_by, created_at
		) VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id
	`, c.Name, c.TelephoneNumber, c.Email, c.BroughtBy, c.AddedBy, time.Now()).
		Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ServiceClientRepository) GetByID(ctx context.Context, id int64) (*model.ServiceClient, error) {
	var client model.ServiceClient
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, telephone_number, email, brought_by, added_by, created_at
		FROM service_clients
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &client, nil
}

func (r *ServiceClientRepository) GetByPhone(ctx context.Context, phone string) (*model.ServiceClient, error) {
	var client model.ServiceClient
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, telephone_number, email, brought_by, added_by, created_at
		FROM service_clients
		WHERE telephone_number = ?
		LIMIT 1
	`, phone).Scan(&client).Error
	if err != nil {
		return nil, err
	}
	if client.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &client, nil
}

func (r *ServiceClientRepository) List(ctx context.Context) ([]model.ServiceClient, error) {
	var clients []model.ServiceClient
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, telephone_number, email, brought_by, added_by, created_at
		FROM service_clients
		ORDER BY name
	`).Scan(&clients).Error
	if err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ServiceClientRepository) CreateFile(ctx context.Context, f model.ClientFile) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO client_files (client_id, file_name, added_by, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, f.ClientID, f.FileName, f.AddedBy, time.Now()).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *ServiceClientRepository) GetFileByID(ctx context.Context, id int64) (*model.ClientFile, error) {
	var file model.ClientFile
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, file_name, added_by, created_at
		FROM client_files
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&file).Error
	if err != nil {
		return nil, err
	}
	if file.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &file, nil
}

func (r *ServiceClientRepository) ListFilesByClient(ctx context.Context, clientID int64) ([]model.ClientFile, error) {
	var files []model.ClientFile
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, client_id, file_name, added_by, created_at
		FROM client_files
		WHERE client_id = ?
		ORDER BY created_at DESC
	`, clientID).Scan(&files).Error
	if err != nil {
		return nil, err
	}
	return files, nil
}

// ListFiles joins each file with its owning client, filtered by an
// optional search over file name, client name and phone.
func (r *ServiceClientRepository) ListFiles(ctx context.Context, search string) ([]model.ClientFileRow, error) {
	query := `
		SELECT
			cf.id,
			cf.file_name,
			sc.name AS client_name,
			sc.telephone_number
		FROM client_files cf
		JOIN service_clients sc ON cf.client_id = sc.id
		WHERE 1=1`
	args := []interface{}{}
	if search != "" {
		query += ` AND (cf.file_name LIKE ? OR sc.name LIKE ? OR sc.telephone_number LIKE ?)`
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern, pattern)
	}
	query += ` ORDER BY cf.created_at DESC`

	var rows []model.ClientFileRow
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
