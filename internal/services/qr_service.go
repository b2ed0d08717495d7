package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"github.com/rewardhub/rewardhub-backend/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// QRService manages QR batches and the scan redemption flow
type QRService struct {
	batchRepo    repositories.QRBatchRepository
	codeRepo     repositories.QRCodeRepository
	accountRepo  repositories.AccountRepository
	activityRepo repositories.ActivityRepository
	txn          TxnRunner
	logger       *zap.Logger
}

// NewQRService creates a new QRService
func NewQRService(
	batchRepo repositories.QRBatchRepository,
	codeRepo repositories.QRCodeRepository,
	accountRepo repositories.AccountRepository,
	activityRepo repositories.ActivityRepository,
	txn TxnRunner,
	logger *zap.Logger,
) *QRService {
	return &QRService{
		batchRepo:    batchRepo,
		codeRepo:     codeRepo,
		accountRepo:  accountRepo,
		activityRepo: activityRepo,
		txn:          txn,
		logger:       logger,
	}
}

// CreateBatch generates count codes for one product run. Codes are derived
// from the product-name prefix, the sequence number and a batch-id fragment
// so they never collide across batches.
func (s *QRService) CreateBatch(ctx context.Context, productName string, pointsPerCode, count int) (*models.QRBatch, error) {
	batch := &models.QRBatch{
		ProductName:   productName,
		PointsPerCode: pointsPerCode,
		TotalCodes:    count,
		RedeemedCount: 0,
	}

	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.batchRepo.Create(ctx, batch); err != nil {
			return err
		}

		prefix := utils.QRCodePrefix(productName)
		fragment := batch.ID.Hex()[:4]
		codes := make([]*models.QRCode, 0, count)
		for i := 1; i <= count; i++ {
			codes = append(codes, &models.QRCode{
				Code:        utils.FormatQRCode(prefix, i, fragment),
				ProductName: productName,
				Points:      pointsPerCode,
				BatchID:     batch.ID,
				Status:      models.QRStatusPending,
			})
		}
		return s.codeRepo.CreateMany(ctx, codes)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("qr batch created",
		zap.String("batchId", batch.ID.Hex()),
		zap.String("product", productName),
		zap.Int("codes", count))
	return batch, nil
}

// Redeem exchanges a scanned code for points. The code flip, the batch
// counter, the account credit and the ledger entry are one transaction, so
// a code is worth points at most once and no partial state survives.
func (s *QRService) Redeem(ctx context.Context, rawCode string, accountID primitive.ObjectID) (*models.QRCode, error) {
	code := utils.NormalizeCode(rawCode)

	var redeemed *models.QRCode
	err := s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		qr, err := s.codeRepo.MarkRedeemed(ctx, code, accountID, time.Now())
		if err != nil {
			return err
		}
		if err := s.batchRepo.IncrementRedeemed(ctx, qr.BatchID); err != nil {
			return err
		}
		if err := s.accountRepo.CreditPoints(ctx, accountID, qr.Points); err != nil {
			return err
		}
		if err := s.activityRepo.Create(ctx, &models.ActivityEntry{
			AccountID:   accountID,
			Type:        models.ActivityScan,
			Description: fmt.Sprintf("Scanned %s (%s)", qr.Code, qr.ProductName),
			Points:      qr.Points,
		}); err != nil {
			return err
		}
		redeemed = qr
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("qr code redeemed",
		zap.String("code", redeemed.Code),
		zap.String("accountId", accountID.Hex()),
		zap.Int("points", redeemed.Points))
	return redeemed, nil
}

// BatchProgress pairs a batch with a live count of its pending codes. The
// batch's own redeemedCount is the authoritative redeemed figure; the
// pending count is recomputed so deleted or exhausted codes never skew it.
type BatchProgress struct {
	Batch        *models.QRBatch `json:"batch"`
	PendingCodes int64           `json:"pendingCodes"`
}

// GetBatch retrieves one batch together with its scan progress
func (s *QRService) GetBatch(ctx context.Context, batchID primitive.ObjectID) (*BatchProgress, error) {
	batch, err := s.batchRepo.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	pending, err := s.codeRepo.CountByBatchAndStatus(ctx, batchID, models.QRStatusPending)
	if err != nil {
		return nil, err
	}
	return &BatchProgress{Batch: batch, PendingCodes: pending}, nil
}

// ListBatches retrieves batches, newest first
func (s *QRService) ListBatches(ctx context.Context, page, limit int) ([]*models.QRBatch, error) {
	return s.batchRepo.FindAll(ctx, page, limit)
}

// ListCodes retrieves a batch's codes in creation order
func (s *QRService) ListCodes(ctx context.Context, batchID primitive.ObjectID, page, limit int) ([]*models.QRCode, error) {
	if _, err := s.batchRepo.FindByID(ctx, batchID); err != nil {
		return nil, err
	}
	return s.codeRepo.FindByBatch(ctx, batchID, page, limit)
}

// DeleteBatch removes a batch and its member codes. Points already earned
// from redeemed codes are not reversed.
func (s *QRService) DeleteBatch(ctx context.Context, batchID primitive.ObjectID) error {
	return s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.batchRepo.Delete(ctx, batchID); err != nil {
			return err
		}
		return s.codeRepo.DeleteByBatch(ctx, batchID)
	})
}
