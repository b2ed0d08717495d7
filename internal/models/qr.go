package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QRStatus represents the lifecycle state of one issued QR code.
// Valid transitions are pending->redeemed and pending->expired; both terminal.
type QRStatus string

const (
	QRStatusPending  QRStatus = "pending"
	QRStatusRedeemed QRStatus = "redeemed"
	QRStatusExpired  QRStatus = "expired"
)

// QRBatch is a named group of QR codes issued together for one product run.
// RedeemedCount caches the number of member codes with status=redeemed.
type QRBatch struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ProductName   string             `bson:"productName" json:"productName"`
	PointsPerCode int                `bson:"pointsPerCode" json:"pointsPerCode"`
	TotalCodes    int                `bson:"totalCodes" json:"totalCodes"`
	RedeemedCount int                `bson:"redeemedCount" json:"redeemedCount"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// QRCode is one issued code. Codes are stored canonically upper-cased and
// mutated exactly once, at redemption time.
type QRCode struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code        string             `bson:"code" json:"code"`
	ProductName string             `bson:"productName" json:"productName"`
	Points      int                `bson:"points" json:"points"`
	BatchID     primitive.ObjectID `bson:"batchId" json:"batchId"`
	Status      QRStatus           `bson:"status" json:"status"`
	RedeemedBy  primitive.ObjectID `bson:"redeemedBy,omitempty" json:"redeemedBy,omitempty"`
	RedeemedAt  time.Time          `bson:"redeemedAt,omitempty" json:"redeemedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateBatchRequest is the request body for QR batch creation
type CreateBatchRequest struct {
	ProductName   string `json:"productName" binding:"required"`
	PointsPerCode int    `json:"pointsPerCode" binding:"required,gt=0"`
	Count         int    `json:"count" binding:"required,gt=0,lte=10000"`
}

// RedeemCodeRequest is the request body for a scan redemption
type RedeemCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
