package mongodb

import (
	"context"
	"errors"
	"time"

	"github.com/rewardhub/rewardhub-backend/internal/apperrors"
	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Compile-time check to ensure OTPRepository implements the interface
var _ repositories.OTPRepository = (*OTPRepository)(nil)

// OTPRepository handles MongoDB operations for OTP login challenges
type OTPRepository struct {
	collection *mongo.Collection
}

// NewOTPRepository creates a new OTPRepository
func NewOTPRepository(db *mongo.Database) *OTPRepository {
	return &OTPRepository{
		collection: db.Collection("otp_challenges"),
	}
}

// Upsert replaces any outstanding challenge for the phone
func (r *OTPRepository) Upsert(ctx context.Context, challenge *models.OTPChallenge) error {
	challenge.CreatedAt = time.Now()
	filter := bson.M{"phone": challenge.Phone}
	update := bson.M{"$set": bson.M{
		"phone":     challenge.Phone,
		"codeHash":  challenge.CodeHash,
		"expiresAt": challenge.ExpiresAt,
		"createdAt": challenge.CreatedAt,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// FindByPhone retrieves the outstanding challenge for a phone
func (r *OTPRepository) FindByPhone(ctx context.Context, phone string) (*models.OTPChallenge, error) {
	var challenge models.OTPChallenge
	err := r.collection.FindOne(ctx, bson.M{"phone": phone}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	return &challenge, nil
}

// DeleteByPhone discards a consumed or superseded challenge
func (r *OTPRepository) DeleteByPhone(ctx context.Context, phone string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"phone": phone})
	return err
}
