package services

import (
	"context"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
)

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalAccounts       int64 `json:"totalAccounts"`
	PointsIssued        int64 `json:"pointsIssued"`
	PointsRedeemed      int64 `json:"pointsRedeemed"`
	OutstandingBalance  int64 `json:"outstandingBalance"`
	TotalBatches        int64 `json:"totalBatches"`
	UnusedAgentCodes    int64 `json:"unusedAgentCodes"`
	PendingWithdrawals  int64 `json:"pendingWithdrawals"`
	PendingRedemptions  int64 `json:"pendingRedemptions"`
}

// StatsService aggregates counters for the admin dashboard
type StatsService struct {
	accountRepo    repositories.AccountRepository
	batchRepo      repositories.QRBatchRepository
	agentCodeRepo  repositories.AgentCodeRepository
	redemptionRepo repositories.RedemptionRepository
	withdrawalRepo repositories.WithdrawalRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(
	accountRepo repositories.AccountRepository,
	batchRepo repositories.QRBatchRepository,
	agentCodeRepo repositories.AgentCodeRepository,
	redemptionRepo repositories.RedemptionRepository,
	withdrawalRepo repositories.WithdrawalRepository,
) *StatsService {
	return &StatsService{
		accountRepo:    accountRepo,
		batchRepo:      batchRepo,
		agentCodeRepo:  agentCodeRepo,
		redemptionRepo: redemptionRepo,
		withdrawalRepo: withdrawalRepo,
	}
}

// Dashboard collects the admin dashboard summary
func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	var err error
	if stats.TotalAccounts, err = s.accountRepo.Count(ctx); err != nil {
		return nil, err
	}
	totals, err := s.accountRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	stats.PointsIssued = totals.Earned
	stats.PointsRedeemed = totals.Redeemed
	stats.OutstandingBalance = totals.Balance

	if stats.TotalBatches, err = s.batchRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.UnusedAgentCodes, err = s.agentCodeRepo.CountUnused(ctx); err != nil {
		return nil, err
	}
	if stats.PendingWithdrawals, err = s.withdrawalRepo.CountByStatus(ctx, models.WithdrawalStatusPending); err != nil {
		return nil, err
	}
	if stats.PendingRedemptions, err = s.redemptionRepo.CountByStatus(ctx, models.RedemptionStatusPending); err != nil {
		return nil, err
	}

	return stats, nil
}
