package services

import (
	"context"
	"strings"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"github.com/rewardhub/rewardhub-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AccountService handles member account business logic. Every balance change
// flows through AdjustBalance so the balance, the lifetime totals and the
// ledger move together or not at all.
type AccountService struct {
	accountRepo    repositories.AccountRepository
	agentCodeRepo  repositories.AgentCodeRepository
	activityRepo   repositories.ActivityRepository
	redemptionRepo repositories.RedemptionRepository
	withdrawalRepo repositories.WithdrawalRepository
	txn            TxnRunner
	logger         *zap.Logger
}

// NewAccountService creates a new AccountService
func NewAccountService(
	accountRepo repositories.AccountRepository,
	agentCodeRepo repositories.AgentCodeRepository,
	activityRepo repositories.ActivityRepository,
	redemptionRepo repositories.RedemptionRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	txn TxnRunner,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{
		accountRepo:    accountRepo,
		agentCodeRepo:  agentCodeRepo,
		activityRepo:   activityRepo,
		redemptionRepo: redemptionRepo,
		withdrawalRepo: withdrawalRepo,
		txn:            txn,
		logger:         logger,
	}
}

// CreateAccount registers a new member. The agent code is consumed in the
// same transaction that creates the account, so a code can never be spent
// without producing an account or vice versa.
func (s *AccountService) CreateAccount(ctx context.Context, phone, name, agentCode string) (*models.Account, error) {
	code := utils.NormalizeCode(agentCode)
	if code == "" {
		return nil, apperrors.ErrInvalidAgentCode
	}

	if _, err := s.accountRepo.FindByPhone(ctx, phone); err == nil {
		return nil, apperrors.ErrDuplicatePhone
	} else if err != apperrors.ErrAccountNotFound {
		return nil, err
	}

	account := &models.Account{
		Phone:     phone,
		Name:      name,
		AgentCode: code,
		Points:    0,
		Role:      "user",
		Status:    models.AccountStatusActive,
	}

	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Create(ctx, account); err != nil {
			return err
		}
		return s.agentCodeRepo.Consume(ctx, code, account.ID, name)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("account created",
		zap.String("accountId", account.ID.Hex()),
		zap.String("agentCode", code))
	return account, nil
}

// GetAccount retrieves an account by ID
func (s *AccountService) GetAccount(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	return s.accountRepo.FindByID(ctx, id)
}

// GetAccountByPhone retrieves an account by phone number
func (s *AccountService) GetAccountByPhone(ctx context.Context, phone string) (*models.Account, error) {
	return s.accountRepo.FindByPhone(ctx, phone)
}

// ListAccounts retrieves accounts with pagination. A non-empty search
// query narrows the result to accounts whose name or phone contains it.
func (s *AccountService) ListAccounts(ctx context.Context, search string, page, limit int) ([]*models.Account, error) {
	if search = strings.TrimSpace(search); search != "" {
		return s.accountRepo.Search(ctx, search, page, limit)
	}
	return s.accountRepo.FindAll(ctx, page, limit)
}

// AdjustBalance applies a signed points delta and appends the matching
// ledger entry as one unit. Positive deltas raise totalEarned, negative
// deltas raise totalRedeemed; a deduction that exceeds the balance fails
// with ErrInsufficientPoints and nothing is applied.
func (s *AccountService) AdjustBalance(ctx context.Context, accountID primitive.ObjectID, delta int, reason string, category models.ActivityType) error {
	if delta == 0 {
		return apperrors.Validation("points delta must not be zero")
	}
	if reason == "" {
		return apperrors.Validation("a reason is required")
	}

	return s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if delta > 0 {
			if err := s.accountRepo.CreditPoints(ctx, accountID, delta); err != nil {
				return err
			}
		} else {
			if err := s.accountRepo.DebitPoints(ctx, accountID, -delta); err != nil {
				return err
			}
		}
		return s.activityRepo.Create(ctx, &models.ActivityEntry{
			AccountID:   accountID,
			Type:        category,
			Description: reason,
			Points:      delta,
		})
	})
}

// Suspend blocks the account from authenticating
func (s *AccountService) Suspend(ctx context.Context, accountID primitive.ObjectID) error {
	return s.accountRepo.UpdateStatus(ctx, accountID, models.AccountStatusSuspended)
}

// Activate re-enables a suspended account
func (s *AccountService) Activate(ctx context.Context, accountID primitive.ObjectID) error {
	return s.accountRepo.UpdateStatus(ctx, accountID, models.AccountStatusActive)
}

// ResetBalance zeroes the balance, folds the zeroed amount into
// totalRedeemed, and logs a deduction for the prior balance.
func (s *AccountService) ResetBalance(ctx context.Context, accountID primitive.ObjectID) error {
	return s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		prior, err := s.accountRepo.ResetPoints(ctx, accountID)
		if err != nil {
			return err
		}
		if prior == 0 {
			return nil
		}
		return s.activityRepo.Create(ctx, &models.ActivityEntry{
			AccountID:   accountID,
			Type:        models.ActivityDeduction,
			Description: "Admin reset points to zero",
			Points:      -prior,
		})
	})
}

// Erase permanently removes the account and cascades deletion of its
// redemption, withdrawal and activity rows. Irreversible.
func (s *AccountService) Erase(ctx context.Context, accountID primitive.ObjectID) error {
	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.Delete(ctx, accountID); err != nil {
			return err
		}
		if err := s.redemptionRepo.DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		if err := s.withdrawalRepo.DeleteByAccount(ctx, accountID); err != nil {
			return err
		}
		return s.activityRepo.DeleteByAccount(ctx, accountID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("account erased", zap.String("accountId", accountID.Hex()))
	return nil
}

// CountAccounts returns the total number of accounts
func (s *AccountService) CountAccounts(ctx context.Context) (int64, error) {
	return s.accountRepo.Count(ctx)
}
