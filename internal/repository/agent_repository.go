package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
)

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

func (r *AgentRepository) Create(ctx context.Context, a model.Agent) (int64, error) {
	var id int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO agents (name, status, added_by, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`, a.Name, a.Status, a.AddedBy, time.Now()).Scan(&id).Error
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id int64) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, status, added_by, created_at
		FROM agents
		WHERE id = ?
		LIMIT 1
	`, id).Scan(&agent).Error
	if err != nil {
		return nil, err
	}
	if agent.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &agent, nil
}

func (r *AgentRepository) GetByName(ctx context.Context, name string) (*model.Agent, error) {
	var agent model.Agent
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, status, added_by, created_at
		FROM agents
		WHERE name = ?
		LIMIT 1
	`, name).Scan(&agent).Error
	if err != nil {
		return nil, err
	}
	if agent.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &agent, nil
}

func (r *AgentRepository) List(ctx context.Context) ([]model.Agent, error) {
	var agents []model.Agent
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, name, status, added_by, created_at
		FROM agents
		ORDER BY name
	`).Scan(&agents).Error
	if err != nil {
		return nil, err
	}
	return agents, nil
}

func (r *AgentRepository) UpdateName(ctx context.Context, id int64, name string) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE agents SET name = ? WHERE id = ?
	`, name, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgentRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE agents SET status = ? WHERE id = ?
	`, status, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *AgentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Exec(`DELETE FROM agents WHERE id = ?`, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
