package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// AuthHandler handles authentication related HTTP requests
type AuthHandler struct {
	authService    *services.AuthService
	accountService *services.AccountService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *services.AuthService, accountService *services.AccountService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		accountService: accountService,
	}
}

// ValidateAgentCode handles POST /auth/validate-agent-code. The response is
// a bare valid flag either way so the endpoint cannot be used to enumerate
// codes.
func (h *AuthHandler) ValidateAgentCode(c *gin.Context) {
	var req models.ValidateAgentCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	valid, err := h.authService.ValidateAgentCode(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": valid})
}

// Signup handles POST /auth/signup. It validates the agent code and phone,
// then sends an OTP; no account exists until the OTP is verified.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.BeginSignup(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifySignup handles POST /auth/signup/verify
func (h *AuthHandler) VerifySignup(c *gin.Context) {
	var req models.VerifySignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, account, err := h.authService.CompleteSignup(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "account": account})
}

// RequestOTP handles POST /auth/login
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req models.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.BeginLogin(c.Request.Context(), req.Phone); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTP handles POST /auth/login/verify
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, account, err := h.authService.CompleteLogin(c.Request.Context(), req.Phone, req.OTP)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "account": account})
}

// AdminLogin handles POST /auth/admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authService.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{Token: token})
}

// Me handles GET /me
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
