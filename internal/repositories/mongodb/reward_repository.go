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
	_ repositories.RewardProductRepository = (*RewardProductRepository)(nil)
	_ repositories.StoreLocationRepository = (*StoreLocationRepository)(nil)
)

// RewardProductRepository handles MongoDB operations for RewardProduct
type RewardProductRepository struct {
	collection *mongo.Collection
}

// NewRewardProductRepository creates a new RewardProductRepository
func NewRewardProductRepository(db *mongo.Database) *RewardProductRepository {
	return &RewardProductRepository{
		collection: db.Collection("reward_products"),
	}
}

// Create inserts a new product
func (r *RewardProductRepository) Create(ctx context.Context, product *models.RewardProduct) error {
	product.ID = primitive.NewObjectID()
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, product)
	return err
}

// FindByID finds a product by ID
func (r *RewardProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.RewardProduct, error) {
	var product models.RewardProduct
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll retrieves the catalog ordered by points cost ascending
func (r *RewardProductRepository) FindAll(ctx context.Context) ([]*models.RewardProduct, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "pointsCost", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []*models.RewardProduct
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []*models.RewardProduct{}
	}
	return products, nil
}

// Update updates an existing product
func (r *RewardProductRepository) Update(ctx context.Context, product *models.RewardProduct) error {
	product.UpdatedAt = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, bson.M{"$set": product})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

// DecrementStock takes one unit of stock. The filter guards against zero
// stock so concurrent redemptions can never drive it negative.
func (r *RewardProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id, "stock": bson.M{"$gt": 0}}
	update := bson.M{
		"$inc": bson.M{"stock": -1},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
		return apperrors.ErrOutOfStock
	}
	return nil
}

// Delete removes a product by ID
func (r *RewardProductRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

// StoreLocationRepository handles MongoDB operations for StoreLocation
type StoreLocationRepository struct {
	collection *mongo.Collection
}

// NewStoreLocationRepository creates a new StoreLocationRepository
func NewStoreLocationRepository(db *mongo.Database) *StoreLocationRepository {
	return &StoreLocationRepository{
		collection: db.Collection("store_locations"),
	}
}

// Create inserts a new store location
func (r *StoreLocationRepository) Create(ctx context.Context, store *models.StoreLocation) error {
	store.ID = primitive.NewObjectID()
	_, err := r.collection.InsertOne(ctx, store)
	return err
}

// FindByID finds a store by ID
func (r *StoreLocationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.StoreLocation, error) {
	var store models.StoreLocation
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&store)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrStoreNotFound
		}
		return nil, err
	}
	return &store, nil
}

// FindAll retrieves all pickup stores
func (r *StoreLocationRepository) FindAll(ctx context.Context) ([]*models.StoreLocation, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var stores []*models.StoreLocation
	if err = cursor.All(ctx, &stores); err != nil {
		return nil, err
	}
	if stores == nil {
		stores = []*models.StoreLocation{}
	}
	return stores, nil
}
