package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AccountStatus represents the status of a member account
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
)

// Account represents a member account in the system.
// Invariant: Points == TotalEarned - TotalRedeemed, and Points never goes negative.
type Account struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Phone         string             `bson:"phone" json:"phone"`
	Name          string             `bson:"name" json:"name"`
	AgentCode     string             `bson:"agentCode" json:"agentCode"`
	Points        int                `bson:"points" json:"points"`
	TotalEarned   int                `bson:"totalEarned" json:"totalEarned"`
	TotalRedeemed int                `bson:"totalRedeemed" json:"totalRedeemed"`
	Role          string             `bson:"role" json:"role"`
	Status        AccountStatus      `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AdjustPointsRequest is the request body for an admin points adjustment
type AdjustPointsRequest struct {
	Points int    `json:"points" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required"`
}
