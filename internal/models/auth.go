package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SignupRequest defines the structure for member signup requests.
// A valid, unused agent code is required to register.
type SignupRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required,min=10"`
	AgentCode string `json:"agentCode" binding:"required"`
}

// VerifySignupRequest completes signup after OTP delivery. The agent code
// is consumed only here, once the phone is proven.
type VerifySignupRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone" binding:"required,min=10"`
	AgentCode string `json:"agentCode" binding:"required"`
	OTP       string `json:"otp" binding:"required,len=6"`
}

// RequestOTPRequest defines the structure for OTP delivery requests
type RequestOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=10"`
}

// VerifyOTPRequest defines the structure for OTP verification requests
type VerifyOTPRequest struct {
	Phone string `json:"phone" binding:"required,min=10"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// AdminLoginRequest defines the structure for admin login requests
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ValidateAgentCodeRequest defines the structure for signup code validation.
// The response is a bare boolean so callers cannot enumerate codes.
type ValidateAgentCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// TokenResponse is returned on successful authentication
type TokenResponse struct {
	Token string `json:"token"`
}

// AdminUser represents a staff account for the admin backend, separate from
// member accounts. Password holds the bcrypt hash and is omitted from JSON.
type AdminUser struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OTPChallenge is a short-lived login challenge sent to a phone number.
// CodeHash holds a bcrypt hash of the 6-digit code.
type OTPChallenge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Phone     string             `bson:"phone" json:"phone"`
	CodeHash  string             `bson:"codeHash" json:"-"`
	ExpiresAt time.Time          `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
