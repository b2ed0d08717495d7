package repositories

import (
	"context"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointsTotals aggregates lifetime point movement across all accounts
type PointsTotals struct {
	Balance  int64
	Earned   int64
	Redeemed int64
}

// AccountRepository defines the interface for account data operations.
// Every balance mutation is a conditional single-document update; callers
// never read a balance and write a computed value back.
type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error)
	FindByPhone(ctx context.Context, phone string) (*models.Account, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.Account, error)
	// Search matches accounts whose name or phone contains the query,
	// case-insensitively.
	Search(ctx context.Context, query string, page, limit int) ([]*models.Account, error)
	Update(ctx context.Context, account *models.Account) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AccountStatus) error
	// CreditPoints adds points to both the balance and totalEarned
	CreditPoints(ctx context.Context, id primitive.ObjectID, points int) error
	// DebitPoints moves points from the balance into totalRedeemed. Fails
	// with ErrInsufficientPoints when the balance cannot cover it.
	DebitPoints(ctx context.Context, id primitive.ObjectID, points int) error
	// ResetPoints zeroes the balance, folding it into totalRedeemed, and
	// returns the prior balance.
	ResetPoints(ctx context.Context, id primitive.ObjectID) (int, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (*PointsTotals, error)
}

// AgentCodeRepository defines the interface for one-time invitation codes
type AgentCodeRepository interface {
	CreateMany(ctx context.Context, codes []*models.AgentCode) error
	FindAll(ctx context.Context, page, limit int) ([]*models.AgentCode, error)
	// IsValid reports only whether an unused code with this value exists,
	// revealing nothing else. This is the signup-time anti-enumeration check.
	IsValid(ctx context.Context, code string) (bool, error)
	// Consume marks a code used exactly once. Fails if the code is missing
	// or already used.
	Consume(ctx context.Context, code string, accountID primitive.ObjectID, accountName string) error
	CountUnused(ctx context.Context) (int64, error)
}

// QRBatchRepository defines the interface for QR batch data operations
type QRBatchRepository interface {
	Create(ctx context.Context, batch *models.QRBatch) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.QRBatch, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.QRBatch, error)
	IncrementRedeemed(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Count(ctx context.Context) (int64, error)
}

// QRCodeRepository defines the interface for individual QR code operations
type QRCodeRepository interface {
	CreateMany(ctx context.Context, codes []*models.QRCode) error
	FindByBatch(ctx context.Context, batchID primitive.ObjectID, page, limit int) ([]*models.QRCode, error)
	// MarkRedeemed flips a code from pending to redeemed in one conditional
	// update and returns the redeemed code. Fails with ErrCodeNotFound for
	// unknown, already-redeemed and expired codes alike.
	MarkRedeemed(ctx context.Context, code string, accountID primitive.ObjectID, at time.Time) (*models.QRCode, error)
	DeleteByBatch(ctx context.Context, batchID primitive.ObjectID) error
	CountByBatchAndStatus(ctx context.Context, batchID primitive.ObjectID, status models.QRStatus) (int64, error)
}

// RewardProductRepository defines the interface for catalog data operations
type RewardProductRepository interface {
	Create(ctx context.Context, product *models.RewardProduct) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RewardProduct, error)
	FindAll(ctx context.Context) ([]*models.RewardProduct, error)
	Update(ctx context.Context, product *models.RewardProduct) error
	// DecrementStock decrements stock by one, never below zero. Fails with
	// ErrOutOfStock when stock is already exhausted.
	DecrementStock(ctx context.Context, id primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// StoreLocationRepository defines the interface for pickup store operations
type StoreLocationRepository interface {
	Create(ctx context.Context, store *models.StoreLocation) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoreLocation, error)
	FindAll(ctx context.Context) ([]*models.StoreLocation, error)
}

// RedemptionRepository defines the interface for redemption requests
type RedemptionRepository interface {
	Create(ctx context.Context, req *models.RedemptionRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.RedemptionRequest, error)
	FindByAccount(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.RedemptionRequest, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.RedemptionRequest, error)
	// UpdateStatusFrom transitions status only when the stored status still
	// equals from, so concurrent admin actions cannot double-apply.
	UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RedemptionStatus) error
	CountByStatus(ctx context.Context, status models.RedemptionStatus) (int64, error)
	DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error
}

// WithdrawalRepository defines the interface for withdrawal requests
type WithdrawalRepository interface {
	Create(ctx context.Context, req *models.WithdrawalRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.WithdrawalRequest, error)
	FindByAccount(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.WithdrawalRequest, error)
	FindAll(ctx context.Context, page, limit int) ([]*models.WithdrawalRequest, error)
	UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.WithdrawalStatus) error
	CountByStatus(ctx context.Context, status models.WithdrawalStatus) (int64, error)
	DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error
}

// ActivityRepository defines the interface for the append-only ledger.
// There is deliberately no update method; history is never edited.
type ActivityRepository interface {
	Create(ctx context.Context, entry *models.ActivityEntry) error
	FindByAccount(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.ActivityEntry, error)
	// DeleteByAccount exists solely for admin account erasure
	DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error
}

// AdminUserRepository defines the interface for admin staff accounts
type AdminUserRepository interface {
	Create(ctx context.Context, adminUser *models.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}

// OTPRepository defines the interface for login challenges
type OTPRepository interface {
	// Upsert replaces any outstanding challenge for the phone
	Upsert(ctx context.Context, challenge *models.OTPChallenge) error
	FindByPhone(ctx context.Context, phone string) (*models.OTPChallenge, error)
	DeleteByPhone(ctx context.Context, phone string) error
}
