package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityType classifies a balance-changing event
type ActivityType string

const (
	ActivityScan      ActivityType = "scan"
	ActivityRedeem    ActivityType = "redeem"
	ActivityWithdraw  ActivityType = "withdraw"
	ActivityBonus     ActivityType = "bonus"
	ActivityDeduction ActivityType = "deduction"
)

// ActivityEntry is one append-only ledger record. Entries are never updated
// or deleted; corrections are made by appending a compensating entry.
type ActivityEntry struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AccountID   primitive.ObjectID `bson:"accountId" json:"accountId"`
	Type        ActivityType       `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Points      int                `bson:"points" json:"points"` // signed delta
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
