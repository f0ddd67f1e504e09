package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO users (username, password_hash, is_agent, role)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, user.Username, user.PasswordHash, user.IsAgent, user.Role).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, password_hash, is_agent, role
		FROM users
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, password_hash, is_agent, role
		FROM users
		WHERE username = ?
		LIMIT 1
	`, username).Scan(&user).Error
	if err != nil {
		return nil, err
	}
	if user.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`SELECT COUNT(*) FROM users`).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, username, password_hash, is_agent, role
		FROM users
		ORDER BY username ASC
	`).Scan(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Update writes only the fields that were provided.
func (r *UserRepository) Update(ctx context.Context, id int64, username, passwordHash *string, role *model.Role) error {
	var sets []string
	var args []interface{}
	if username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *username)
	}
	if passwordHash != nil {
		sets = append(sets, "password_hash = ?")
		args = append(args, *passwordHash)
	}
	if role != nil {
		sets = append(sets, "role = ?")
		args = append(args, *role)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	query := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	result := r.db.WithContext(ctx).Exec(query, args...)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Exec(`DELETE FROM users WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
