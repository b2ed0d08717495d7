package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AgentCode is a one-time invitation code required at signup.
// Once Used is true the code can never be consumed again.
type AgentCode struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code       string             `bson:"code" json:"code"`
	Used       bool               `bson:"used" json:"used"`
	UsedBy     primitive.ObjectID `bson:"usedBy,omitempty" json:"usedBy,omitempty"`
	UsedByName string             `bson:"usedByName,omitempty" json:"usedByName,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// GenerateAgentCodesRequest is the request body for batch code generation
type GenerateAgentCodesRequest struct {
	Count int `json:"count" binding:"required,gt=0,lte=500"`
}
