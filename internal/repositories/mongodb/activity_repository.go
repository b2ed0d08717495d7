package mongodb

import (
	"context"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure ActivityRepository implements the interface
var _ repositories.ActivityRepository = (*ActivityRepository)(nil)

// ActivityRepository handles MongoDB operations for the append-only ledger.
// No update method exists; corrections are compensating appends.
type ActivityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository creates a new ActivityRepository
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		collection: db.Collection("activity_logs"),
	}
}

// Create appends one ledger entry
func (r *ActivityRepository) Create(ctx context.Context, entry *models.ActivityEntry) error {
	entry.ID = primitive.NewObjectID()
	entry.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// FindByAccount retrieves an account's entries, newest first
func (r *ActivityRepository) FindByAccount(ctx context.Context, accountID primitive.ObjectID, limit int) ([]*models.ActivityEntry, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"accountId": accountID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*models.ActivityEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*models.ActivityEntry{}
	}
	return entries, nil
}

// DeleteByAccount removes an account's history. Only the admin account
// erasure cascade calls this.
func (r *ActivityRepository) DeleteByAccount(ctx context.Context, accountID primitive.ObjectID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"accountId": accountID})
	return err
}
