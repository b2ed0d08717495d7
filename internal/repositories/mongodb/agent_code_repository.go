package mongodb

import (
	"context"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure AgentCodeRepository implements the interface
var _ repositories.AgentCodeRepository = (*AgentCodeRepository)(nil)

// AgentCodeRepository handles MongoDB operations for AgentCode
type AgentCodeRepository struct {
	collection *mongo.Collection
}

// NewAgentCodeRepository creates a new AgentCodeRepository
func NewAgentCodeRepository(db *mongo.Database) *AgentCodeRepository {
	return &AgentCodeRepository{
		collection: db.Collection("agent_codes"),
	}
}

// CreateMany inserts a batch of freshly generated codes
func (r *AgentCodeRepository) CreateMany(ctx context.Context, codes []*models.AgentCode) error {
	docs := make([]interface{}, 0, len(codes))
	for _, code := range codes {
		code.ID = primitive.NewObjectID()
		code.CreatedAt = time.Now()
		docs = append(docs, code)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindAll retrieves codes ordered by creation time descending
func (r *AgentCodeRepository) FindAll(ctx context.Context, page, limit int) ([]*models.AgentCode, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var codes []*models.AgentCode
	if err = cursor.All(ctx, &codes); err != nil {
		return nil, err
	}
	if codes == nil {
		codes = []*models.AgentCode{}
	}
	return codes, nil
}

// IsValid reports whether an unused code with this value exists. It returns
// a bare boolean so the signup flow reveals nothing about the code table.
func (r *AgentCodeRepository) IsValid(ctx context.Context, code string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"code": code, "used": false})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Consume marks a code used in one conditional update. A code that is
// missing or already used fails with ErrInvalidAgentCode; concurrent signups
// racing on the same code leave exactly one winner.
func (r *AgentCodeRepository) Consume(ctx context.Context, code string, accountID primitive.ObjectID, accountName string) error {
	filter := bson.M{"code": code, "used": false}
	update := bson.M{"$set": bson.M{
		"used":       true,
		"usedBy":     accountID,
		"usedByName": accountName,
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrInvalidAgentCode
	}
	return nil
}

// CountUnused returns the number of codes still available
func (r *AgentCodeRepository) CountUnused(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"used": false})
}
