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

// Compile-time checks to ensure the repositories implement the interfaces
var (
	_ repositories.QRBatchRepository = (*QRBatchRepository)(nil)
	_ repositories.QRCodeRepository  = (*QRCodeRepository)(nil)
)

// QRBatchRepository handles MongoDB operations for QRBatch
type QRBatchRepository struct {
	collection *mongo.Collection
}

// NewQRBatchRepository creates a new QRBatchRepository
func NewQRBatchRepository(db *mongo.Database) *QRBatchRepository {
	return &QRBatchRepository{
		collection: db.Collection("qr_batches"),
	}
}

// Create inserts a new batch
func (r *QRBatchRepository) Create(ctx context.Context, batch *models.QRBatch) error {
	batch.ID = primitive.NewObjectID()
	batch.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, batch)
	return err
}

// FindByID finds a batch by ID
func (r *QRBatchRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.QRBatch, error) {
	var batch models.QRBatch
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&batch)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrBatchNotFound
		}
		return nil, err
	}
	return &batch, nil
}

// FindAll retrieves batches ordered by creation time descending
func (r *QRBatchRepository) FindAll(ctx context.Context, page, limit int) ([]*models.QRBatch, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var batches []*models.QRBatch
	if err = cursor.All(ctx, &batches); err != nil {
		return nil, err
	}
	if batches == nil {
		batches = []*models.QRBatch{}
	}
	return batches, nil
}

// IncrementRedeemed bumps the cached redeemed counter by one
func (r *QRBatchRepository) IncrementRedeemed(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$inc": bson.M{"redeemedCount": 1}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// Delete removes a batch by ID
func (r *QRBatchRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrBatchNotFound
	}
	return nil
}

// Count returns the total number of batches
func (r *QRBatchRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}

// QRCodeRepository handles MongoDB operations for QRCode
type QRCodeRepository struct {
	collection *mongo.Collection
}

// NewQRCodeRepository creates a new QRCodeRepository
func NewQRCodeRepository(db *mongo.Database) *QRCodeRepository {
	return &QRCodeRepository{
		collection: db.Collection("qr_codes"),
	}
}

// CreateMany inserts the generated codes of one batch
func (r *QRCodeRepository) CreateMany(ctx context.Context, codes []*models.QRCode) error {
	docs := make([]interface{}, 0, len(codes))
	for _, code := range codes {
		code.ID = primitive.NewObjectID()
		code.CreatedAt = time.Now()
		docs = append(docs, code)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByBatch retrieves a batch's codes in creation order
func (r *QRCodeRepository) FindByBatch(ctx context.Context, batchID primitive.ObjectID, page, limit int) ([]*models.QRCode, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"batchId": batchID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var codes []*models.QRCode
	if err = cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []*models.QRCode{}
	}
	return codes, nil
}

// MarkRedeemed flips a pending code to redeemed in a single conditional
// update. Two concurrent attempts on the same code leave exactly one winner;
// the loser, like any unknown or expired code, gets ErrCodeNotFound.
func (r *QRCodeRepository) MarkRedeemed(ctx context.Context, code string, accountID primitive.ObjectID, at time.Time) (*models.QRCode, error) {
	filter := bson.M{"code": code, "status": models.QRStatusPending}
	update := bson.M{"$set": bson.M{
		"status":     models.QRStatusRedeemed,
		"redeemedBy": accountID,
		"redeemedAt": at,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var redeemed models.QRCode
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&redeemed)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrCodeNotFound
		}
		return nil, err
	}
	return &redeemed, nil
}

// DeleteByBatch removes all codes belonging to a batch
func (r *QRCodeRepository) DeleteByBatch(ctx context.Context, batchID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"batchId": batchID})
	return err
}

// CountByBatchAndStatus counts a batch's codes in one status
func (r *QRCodeRepository) CountByBatchAndStatus(ctx context.Context, batchID primitive.ObjectID, status models.QRStatus) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"batchId": batchID, "status": status})
}
