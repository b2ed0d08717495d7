package services

import (
	"context"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LedgerService exposes the append-only activity log. History is never
// edited; a mistaken entry is corrected by appending a compensating one.
type LedgerService struct {
	accountRepo  repositories.AccountRepository
	activityRepo repositories.ActivityRepository
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(accountRepo repositories.AccountRepository, activityRepo repositories.ActivityRepository) *LedgerService {
	return &LedgerService{
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
	}
}

// Append adds one entry. It fails only when the account does not exist.
func (s *LedgerService) Append(ctx context.Context, accountID primitive.ObjectID, entryType models.ActivityType, description string, pointsDelta int) error {
	if _, err := s.accountRepo.FindByID(ctx, accountID); err != nil {
		return err
	}
	return s.activityRepo.Create(ctx, &models.ActivityEntry{
		AccountID:   accountID,
		Type:        entryType,
		Description: description,
		Points:      pointsDelta,
	})
}

// Query retrieves an account's entries, newest first
func (s *LedgerService) Query(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.ActivityEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.activityRepo.FindByAccount(ctx, accountID, limit)
}
