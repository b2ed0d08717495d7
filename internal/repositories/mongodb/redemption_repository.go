package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure RedemptionRepository implements the interface
var _ repositories.RedemptionRepository = (*RedemptionRepository)(nil)

// RedemptionRepository handles MongoDB operations for RedemptionRequest
type RedemptionRepository struct {
	collection *mongo.Collection
}

// NewRedemptionRepository creates a new RedemptionRepository
func NewRedemptionRepository(db *mongo.Database) *RedemptionRepository {
	return &RedemptionRepository{
		collection: db.Collection("redemptions"),
	}
}

// Create inserts a new redemption request
func (r *RedemptionRepository) Create(ctx context.Context, req *models.RedemptionRequest) error {
	req.ID = primitive.NewObjectID()
	req.CreatedAt = time.Now()
	req.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, req)
	return err
}

// FindByID finds a redemption request by ID
func (r *RedemptionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RedemptionRequest, error) {
	var req models.RedemptionRequest
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// FindByAccount retrieves one account's requests, newest first
func (r *RedemptionRepository) FindByAccount(ctx context.Context, accountID primitive.ObjectID, page, limit int) ([]*models.RedemptionRequest, error) {
	return r.find(ctx, bson.M{"accountId": accountID}, page, limit)
}

// FindAll retrieves all requests, newest first
func (r *RedemptionRepository) FindAll(ctx context.Context, page, limit int) ([]*models.RedemptionRequest, error) {
	return r.find(ctx, bson.M{}, page, limit)
}

func (r *RedemptionRepository) find(ctx context.Context, filter bson.M, page, limit int) ([]*models.RedemptionRequest, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reqs []*models.RedemptionRequest
	if err = cursor.All(ctx, &reqs); err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []*models.RedemptionRequest{}
	}
	return reqs, nil
}

// UpdateStatusFrom transitions status only while the stored status still
// equals from. A lost race or an illegal jump changes nothing and surfaces
// as ErrInvalidTransition.
func (r *RedemptionRepository) UpdateStatusFrom(ctx context.Context, id primitive.ObjectID, from, to models.RedemptionStatus) error {
	filter := bson.M{"_id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updatedAt": time.Now()}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrInvalidTransition
	}
	return nil
}

// CountByStatus counts requests in one status
func (r *RedemptionRepository) CountByStatus(ctx context.Context, status models.RedemptionStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"status": status})
}

// DeleteByAccount removes all of an account's requests (account erasure)
func (r *RedemptionRepository) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"accountId": accountID})
	return err
}
