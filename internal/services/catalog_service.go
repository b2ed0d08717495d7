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

// CatalogService manages reward products and catalog redemptions
type CatalogService struct {
	productRepo    repositories.RewardProductRepository
	storeRepo      repositories.StoreLocationRepository
	accountRepo    repositories.AccountRepository
	redemptionRepo repositories.RedemptionRepository
	activityRepo   repositories.ActivityRepository
	txn            TxnRunner
	logger         *zap.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	productRepo repositories.RewardProductRepository,
	storeRepo repositories.StoreLocationRepository,
	accountRepo repositories.AccountRepository,
	redemptionRepo repositories.RedemptionRepository,
	activityRepo repositories.ActivityRepository,
	txn TxnRunner,
	logger *zap.Logger,
) *CatalogService {
	return &CatalogService{
		productRepo:    productRepo,
		storeRepo:      storeRepo,
		accountRepo:    accountRepo,
		redemptionRepo: redemptionRepo,
		activityRepo:   activityRepo,
		txn:            txn,
		logger:         logger,
	}
}

// ListAvailable retrieves the catalog ordered by points cost
func (s *CatalogService) ListAvailable(ctx context.Context) ([]*models.RewardProduct, error) {
	return s.productRepo.FindAll(ctx)
}

// GetProduct retrieves one product
func (s *CatalogService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.RewardProduct, error) {
	return s.productRepo.FindByID(ctx, id)
}

// CreateProduct adds a catalog item
func (s *CatalogService) CreateProduct(ctx context.Context, product *models.RewardProduct) error {
	return s.productRepo.Create(ctx, product)
}

// UpdateProduct updates a catalog item
func (s *CatalogService) UpdateProduct(ctx context.Context, product *models.RewardProduct) error {
	return s.productRepo.Update(ctx, product)
}

// DeleteProduct removes a catalog item
func (s *CatalogService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.productRepo.Delete(ctx, id)
}

// ListStores retrieves the pickup store locations
func (s *CatalogService) ListStores(ctx context.Context) ([]*models.StoreLocation, error) {
	return s.storeRepo.FindAll(ctx)
}

// CreateStore adds a pickup store location
func (s *CatalogService) CreateStore(ctx context.Context, store *models.StoreLocation) error {
	return s.storeRepo.Create(ctx, store)
}

// Redeem exchanges points for a product. Stock decrement, points deduction,
// request creation and the ledger entry are one transaction: an exhausted
// stock or an insufficient balance aborts the whole thing.
func (s *CatalogService) Redeem(ctx context.Context, accountID, productID primitive.ObjectID, rType models.RedemptionType, storeID *primitive.ObjectID) (*models.RedemptionRequest, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	req := &models.RedemptionRequest{
		AccountID:   accountID,
		AccountName: account.Name,
		ProductName: product.Name,
		PointsUsed:  product.PointsCost,
		Type:        rType,
		Status:      models.RedemptionStatusPending,
	}

	if rType == models.RedemptionTypeStorePickup {
		if storeID == nil {
			return nil, apperrors.Validation("a pickup store is required")
		}
		store, err := s.storeRepo.FindByID(ctx, *storeID)
		if err != nil {
			return nil, err
		}
		req.StoreAddress = store.Address
		req.StorePhone = store.Phone
	}

	err = s.txn.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.productRepo.DecrementStock(ctx, productID); err != nil {
			return err
		}
		if err := s.accountRepo.DebitPoints(ctx, accountID, product.PointsCost); err != nil {
			return err
		}
		if err := s.redemptionRepo.Create(ctx, req); err != nil {
			return err
		}
		return s.activityRepo.Create(ctx, &models.ActivityEntry{
			AccountID:   accountID,
			Type:        models.ActivityRedeem,
			Description: fmt.Sprintf("Redeemed %s", product.Name),
			Points:      -product.PointsCost,
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product redeemed",
		zap.String("accountId", accountID.Hex()),
		zap.String("product", product.Name),
		zap.Int("pointsUsed", product.PointsCost))
	return req, nil
}
