package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RedemptionStatus represents the approval state of a product redemption
type RedemptionStatus string

const (
	RedemptionStatusPending    RedemptionStatus = "pending"
	RedemptionStatusApproved   RedemptionStatus = "approved"
	RedemptionStatusDispatched RedemptionStatus = "dispatched"
	RedemptionStatusCompleted  RedemptionStatus = "completed"
	RedemptionStatusRejected   RedemptionStatus = "rejected"
)

// RedemptionType classifies how a redeemed product reaches the member
type RedemptionType string

const (
	RedemptionTypeStorePickup    RedemptionType = "store_pickup"
	RedemptionTypeDelivery       RedemptionType = "delivery"
	RedemptionTypeBankWithdrawal RedemptionType = "bank_withdrawal"
)

// redemptionTransitions is the full transition graph:
// pending -> approved -> dispatched -> completed, pending -> rejected.
// completed and rejected are terminal.
var redemptionTransitions = map[RedemptionStatus][]RedemptionStatus{
	RedemptionStatusPending:    {RedemptionStatusApproved, RedemptionStatusRejected},
	RedemptionStatusApproved:   {RedemptionStatusDispatched},
	RedemptionStatusDispatched: {RedemptionStatusCompleted},
}

// CanTransitionRedemption reports whether from -> to is a legal transition
func CanTransitionRedemption(from, to RedemptionStatus) bool {
	for _, next := range redemptionTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RedemptionRequest records a member exchanging points for a product.
// Points are deducted when the request is created.
type RedemptionRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AccountID    primitive.ObjectID `bson:"accountId" json:"accountId"`
	AccountName  string             `bson:"accountName" json:"accountName"`
	ProductName  string             `bson:"productName" json:"productName"`
	PointsUsed   int                `bson:"pointsUsed" json:"pointsUsed"`
	Type         RedemptionType     `bson:"type" json:"type"`
	Status       RedemptionStatus   `bson:"status" json:"status"`
	StoreAddress string             `bson:"storeAddress,omitempty" json:"storeAddress,omitempty"`
	StorePhone   string             `bson:"storePhone,omitempty" json:"storePhone,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
