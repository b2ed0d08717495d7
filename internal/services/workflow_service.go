package services

import (
	"context"
	"fmt"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// WorkflowService drives the admin approval state machines for product
// redemptions and bank withdrawals.
//
// Points are deducted when a request is created, and rejection does NOT
// refund them. This mirrors the product's optimistic-deduction policy;
// compensation is an explicit admin bonus through the ledger, never an
// implicit side effect of a transition.
type WorkflowService struct {
	redemptionRepo repositories.RedemptionRepository
	withdrawalRepo repositories.WithdrawalRepository
	accountRepo    repositories.AccountRepository
	activityRepo   repositories.ActivityRepository
	txn            TxnRunner
	logger         *zap.Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	redemptionRepo repositories.RedemptionRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	accountRepo repositories.AccountRepository,
	activityRepo repositories.ActivityRepository,
	txn TxnRunner,
	logger *zap.Logger,
) *WorkflowService {
	return &WorkflowService{
		redemptionRepo: redemptionRepo,
		withdrawalRepo: withdrawalRepo,
		accountRepo:    accountRepo,
		activityRepo:   activityRepo,
		txn:            txn,
		logger:         logger,
	}
}

// CreateWithdrawal opens a bank payout request. The amount must be at least
// MinWithdrawalPoints and no more than the current balance; the deduction is
// conditional, so two concurrent requests can never overdraw the account.
func (s *WorkflowService) CreateWithdrawal(ctx context.Context, accountID primitive.ObjectID, amount int, bankName, accountNumber string) (*models.WithdrawalRequest, error) {
	if amount < models.MinWithdrawalPoints {
		return nil, apperrors.ErrBelowMinimum
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	req := &models.WithdrawalRequest{
		AccountID:     accountID,
		AccountName:   account.Name,
		Amount:        amount,
		PointsUsed:    amount,
		BankName:      bankName,
		AccountNumber: accountNumber,
		Status:        models.WithdrawalStatusPending,
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.DebitPoints(ctx, accountID, amount); err != nil {
			return err
		}
		if err := s.withdrawalRepo.Create(ctx, req); err != nil {
			return err
		}
		return s.activityRepo.Create(ctx, &models.ActivityEntry{
			AccountID:   accountID,
			Type:        models.ActivityWithdraw,
			Description: fmt.Sprintf("Withdrawal request of %d points to %s", amount, bankName),
			Points:      -amount,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("withdrawal requested",
		zap.String("accountId", accountID.Hex()),
		zap.Int("amount", amount))
	return req, nil
}

// TransitionWithdrawal moves a withdrawal to the given status. Illegal
// moves fail with ErrInvalidTransition and change nothing.
func (s *WorkflowService) TransitionWithdrawal(ctx context.Context, id primitive.ObjectID, to models.WithdrawalStatus) error {
	req, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransitionWithdrawal(req.Status, to) {
		return apperrors.ErrInvalidTransition
	}
	// The from-status guard makes concurrent admin clicks race safely:
	// only one transition out of pending can win.
	if err := s.withdrawalRepo.UpdateStatusFrom(ctx, id, req.Status, to); err != nil {
		return err
	}

	s.logger.Info("withdrawal transitioned",
		zap.String("id", id.Hex()),
		zap.String("from", string(req.Status)),
		zap.String("to", string(to)))
	return nil
}

// TransitionRedemption moves a redemption request along its state machine:
// pending -> approved -> dispatched -> completed, or pending -> rejected.
func (s *WorkflowService) TransitionRedemption(ctx context.Context, id primitive.ObjectID, to models.RedemptionStatus) error {
	req, err := s.redemptionRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !models.CanTransitionRedemption(req.Status, to) {
		return apperrors.ErrInvalidTransition
	}
	if err := s.redemptionRepo.UpdateStatusFrom(ctx, id, req.Status, to); err != nil {
		return err
	}

	s.logger.Info("redemption transitioned",
		zap.String("id", id.Hex()),
		zap.String("from", string(req.Status)),
		zap.String("to", string(to)))
	return nil
}

// ListWithdrawals retrieves all withdrawal requests, newest first
func (s *WorkflowService) ListWithdrawals(ctx context.Context, page, limit int) ([]*models.WithdrawalRequest, error) {
	return s.withdrawalRepo.FindAll(ctx, page, limit)
}

// ListAccountWithdrawals retrieves one account's withdrawal requests
func (s *WorkflowService) ListAccountWithdrawals(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.WithdrawalRequest, error) {
	return s.withdrawalRepo.FindByAccount(ctx, accountID, page, limit)
}

// ListRedemptions retrieves all redemption requests, newest first
func (s *WorkflowService) ListRedemptions(ctx context.Context, page, limit int) ([]*models.RedemptionRequest, error) {
	return s.redemptionRepo.FindAll(ctx, page, limit)
}

// ListAccountRedemptions retrieves one account's redemption requests
func (s *WorkflowService) ListAccountRedemptions(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.RedemptionRequest, error) {
	return s.redemptionRepo.FindByAccount(ctx, accountID, page, limit)
}
