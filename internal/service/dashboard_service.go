package service

import (
	"context"

	"github.com/drelocd/estate-service/internal/model"
	"github.com/drelocd/estate-service/internal/repository"
)

type DashboardService struct {
	properties   *repository.PropertyRepository
	clients      *repository.ClientRepository
	transactions *repository.TransactionRepository
	jobs         *repository.ServiceJobRepository
}

func NewDashboardService(
	properties *repository.PropertyRepository,
	clients *repository.ClientRepository,
	transactions *repository.TransactionRepository,
	jobs *repository.ServiceJobRepository,
) *DashboardService {
	return &DashboardService{
		properties:   properties,
		clients:      clients,
		transactions: transactions,
		jobs:         jobs,
	}
}

type DashboardSummary struct {
	TotalProperties     int64            `json:"total_properties"`
	AvailableProperties int64            `json:"available_properties"`
	SoldProperties      int64            `json:"sold_properties"`
	ActiveClients       int64            `json:"active_clients"`
	PendingBalance      float64          `json:"pending_balance"`
	JobStatusCounts     map[string]int64 `json:"job_status_counts"`
}

// Summary aggregates the headline counters shown on the landing view.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	total, err := s.properties.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.properties.CountByStatus(ctx, model.PropertyStatusAvailable)
	if err != nil {
		return nil, err
	}
	sold, err := s.properties.CountByStatus(ctx, model.PropertyStatusSold)
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.transactions.PendingBalance(ctx)
	if err != nil {
		return nil, err
	}
	jobCounts, err := s.jobs.StatusCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardSummary{
		TotalProperties:     total,
		AvailableProperties: available,
		SoldProperties:      sold,
		ActiveClients:       clients,
		PendingBalance:      pending,
		JobStatusCounts:     jobCounts,
	}, nil
}
