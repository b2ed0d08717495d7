package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure AccountRepository implements the interface
var _ repositories.AccountRepository = (*AccountRepository)(nil)

// AccountRepository handles MongoDB operations for Account
type AccountRepository struct {
	collection *mongo.Collection
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		collection: db.Collection("accounts"),
	}
}

// Create inserts a new account
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.ID = primitive.NewObjectID()
	account.CreatedAt = time.Now()
	account.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, account)
	return err
}

// FindByID finds an account by ID
func (r *AccountRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByPhone finds an account by phone number
func (r *AccountRepository) FindByPhone(ctx context.Context, phone string) (*models.Account, error) {
	var account models.Account
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAll retrieves accounts ordered by creation time descending
func (r *AccountRepository) FindAll(ctx context.Context, page, limit int) ([]*models.Account, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*models.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	return accounts, nil
}

// Search matches accounts whose name or phone contains the query
func (r *AccountRepository) Search(ctx context.Context, query string, page, limit int) ([]*models.Account, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"name": pattern},
		bson.M{"phone": pattern},
	}}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var accounts []*models.Account
	if err = cursor.All(ctx, &accounts); err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []*models.Account{}
	}
	return accounts, nil
}

// Update updates an existing account document
func (r *AccountRepository) Update(ctx context.Context, account *models.Account) error {
	account.UpdatedAt = time.Now()
	filter := bson.M{"_id": account.ID}
	update := bson.M{"$set": account}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// UpdateStatus sets the account status
func (r *AccountRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.AccountStatus) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// CreditPoints atomically adds points to the balance and totalEarned
func (r *AccountRepository) CreditPoints(ctx context.Context, id primitive.ObjectID, points int) error {
	if points <= 0 {
		return apperrors.Validation("points to credit must be positive")
	}
	update := bson.M{
		"$inc": bson.M{"points": points, "totalEarned": points},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// DebitPoints atomically moves points from the balance into totalRedeemed.
// The filter guards sufficiency, so the balance can never go negative even
// under concurrent deductions.
func (r *AccountRepository) DebitPoints(ctx context.Context, id primitive.ObjectID, points int) error {
	if points <= 0 {
		return apperrors.Validation("points to debit must be positive")
	}
	filter := bson.M{"_id": id, "points": bson.M{"$gte": points}}
	update := bson.M{
		"$inc": bson.M{"points": -points, "totalRedeemed": points},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing account from an insufficient balance
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInsufficientPoints
	}
	return nil
}

// ResetPoints zeroes the balance in a single pipeline update and returns the
// prior balance taken from the pre-image.
func (r *AccountRepository) ResetPoints(ctx context.Context, id primitive.ObjectID) (int, error) {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"totalRedeemed": bson.M{"$add": bson.A{"$totalRedeemed", "$points"}},
			"points":        0,
			"updatedAt":     time.Now(),
		}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before models.Account
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, apperrors.ErrAccountNotFound
		}
		return 0, err
	}
	return before.Points, nil
}

// Delete removes an account by ID
func (r *AccountRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// Count returns the total number of accounts
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// Totals aggregates point movement across all accounts
func (r *AccountRepository) Totals(ctx context.Context) (*repositories.PointsTotals, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"balance":  bson.M{"$sum": "$points"},
			"earned":   bson.M{"$sum": "$totalEarned"},
			"redeemed": bson.M{"$sum": "$totalRedeemed"},
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Balance  int64 `bson:"balance"`
		Earned   int64 `bson:"earned"`
		Redeemed int64 `bson:"redeemed"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &repositories.PointsTotals{}, nil
	}
	return &repositories.PointsTotals{
		Balance:  rows[0].Balance,
		Earned:   rows[0].Earned,
		Redeemed: rows[0].Redeemed,
	}, nil
}
