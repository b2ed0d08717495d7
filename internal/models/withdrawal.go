package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithdrawalStatus represents the approval state of a bank withdrawal
type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

// MinWithdrawalPoints is the smallest withdrawal a member may request.
// 1 point = 1 rupee.
const MinWithdrawalPoints = 100

// CanTransitionWithdrawal reports whether from -> to is a legal transition.
// Both approved and rejected are terminal.
func CanTransitionWithdrawal(from, to WithdrawalStatus) bool {
	if from != WithdrawalStatusPending {
		return false
	}
	return to == WithdrawalStatusApproved || to == WithdrawalStatusRejected
}

// WithdrawalRequest records a member exchanging points for a bank payout.
// Points are deducted when the request is created; rejection does not
// refund them (compensation is an explicit admin bonus).
type WithdrawalRequest struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	AccountID     primitive.ObjectID `bson:"accountId" json:"accountId"`
	AccountName   string             `bson:"accountName" json:"accountName"`
	Amount        int                `bson:"amount" json:"amount"`
	PointsUsed    int                `bson:"pointsUsed" json:"pointsUsed"`
	BankName      string             `bson:"bankName" json:"bankName"`
	AccountNumber string             `bson:"accountNumber" json:"accountNumber"`
	Status        WithdrawalStatus   `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateWithdrawalRequest is the request body for a withdrawal
type CreateWithdrawalRequest struct {
	Amount        int    `json:"amount" binding:"required,gt=0"`
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
}
