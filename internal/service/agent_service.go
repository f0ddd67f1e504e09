package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type AgentService struct {
	agents   *repository.AgentRepository
	activity *repository.ActivityRepository
}

func NewAgentService(agents *repository.AgentRepository, activity *repository.ActivityRepository) *AgentService {
	return &AgentService{agents: agents, activity: activity}
}

func (s *AgentService) Add(ctx context.Context, principal model.Principal, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if _, err := s.agents.GetByName(ctx, name); err == nil {
		return 0, fmt.Errorf("%w: agent %q already exists", ErrConflict, name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	id, err := s.agents.Create(ctx, model.Agent{
		Name:    name,
		Status:  "active",
		AddedBy: principal.Username,
	})
	if err != nil {
		return 0, err
	}
	s.audit(ctx, principal.UserID, "agent_added", fmt.Sprintf("agent %q (id %d)", name, id))
	return id, nil
}

func (s *AgentService) Get(ctx context.Context, id int64) (*model.Agent, error) {
	agent, err := s.agents.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return agent, nil
}

func (s *AgentService) GetByName(ctx context.Context, name string) (*model.Agent, error) {
	agent, err := s.agents.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return agent, nil
}

func (s *AgentService) List(ctx context.Context) ([]model.Agent, error) {
	return s.agents.List(ctx)
}

func (s *AgentService) Rename(ctx context.Context, principal model.Principal, id int64, name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if existing, err := s.agents.GetByName(ctx, name); err == nil {
		if existing.ID != id {
			return fmt.Errorf("%w: agent %q already exists", ErrConflict, name)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err := s.agents.UpdateName(ctx, id, name); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "agent_renamed", fmt.Sprintf("agent id %d -> %q", id, name))
	return nil
}

func (s *AgentService) UpdateStatus(ctx context.Context, principal model.Principal, id int64, status string) error {
	if status != "active" && status != "inactive" {
		return fmt.Errorf("%w: status must be active or inactive", ErrInvalidInput)
	}
	if err := s.agents.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "agent_status_updated", fmt.Sprintf("agent id %d -> %s", id, status))
	return nil
}

func (s *AgentService) Delete(ctx context.Context, principal model.Principal, id int64) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if err := s.agents.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	s.audit(ctx, principal.UserID, "agent_deleted", fmt.Sprintf("agent id %d", id))
	return nil
}

func (s *AgentService) audit(ctx context.Context, userID int64, action, details string) {
	_ = s.activity.Append(ctx, userID, action, details)
}
