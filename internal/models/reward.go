package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardProduct is a redeemable catalog item. Stock never goes below zero;
// a redemption against zero stock fails rather than wrapping.
type RewardProduct struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	PointsCost  int                `bson:"pointsCost" json:"pointsCost"`
	Stock       int                `bson:"stock" json:"stock"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// StoreLocation is a pickup point offered during a store_pickup redemption
type StoreLocation struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name    string             `bson:"name" json:"name"`
	Address string             `bson:"address" json:"address"`
	Phone   string             `bson:"phone" json:"phone"`
}

// UpsertProductRequest is the request body for admin product create/update
type UpsertProductRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	PointsCost  int    `json:"pointsCost" binding:"required,gt=0"`
	Stock       int    `json:"stock" binding:"gte=0"`
}

// RedeemProductRequest is the request body for a catalog redemption
type RedeemProductRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Type      string `json:"type" binding:"required,oneof=store_pickup delivery"`
	StoreID   string `json:"storeId"`
}
