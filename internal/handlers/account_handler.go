package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// AccountHandler handles admin account management HTTP requests
type AccountHandler struct {
	accountService *services.AccountService
	ledgerService  *services.LedgerService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *services.AccountService, ledgerService *services.LedgerService) *AccountHandler {
	return &AccountHandler{accountService: accountService, ledgerService: ledgerService}
}

// ListAccounts handles GET /admin/accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), c.Query("search"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, accounts)
}

// GetAccount handles GET /admin/accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// GetAccountActivity handles GET /admin/accounts/:id/activity
func (h *AccountHandler) GetAccountActivity(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if _, err := h.accountService.GetAccount(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	entries, err := h.ledgerService.Query(c.Request.Context(), id, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// AddPoints handles POST /admin/accounts/:id/points/add
func (h *AccountHandler) AddPoints(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.accountService.AdjustBalance(c.Request.Context(), id, req.Points, req.Reason, models.ActivityBonus)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Points added"})
}

// DeductPoints handles POST /admin/accounts/:id/points/deduct
func (h *AccountHandler) DeductPoints(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.AdjustPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.accountService.AdjustBalance(c.Request.Context(), id, -req.Points, req.Reason, models.ActivityDeduction)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Points deducted"})
}

// ResetPoints handles POST /admin/accounts/:id/points/reset
func (h *AccountHandler) ResetPoints(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.ResetBalance(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Points reset"})
}

// Suspend handles POST /admin/accounts/:id/suspend
func (h *AccountHandler) Suspend(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.Suspend(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account suspended"})
}

// Activate handles POST /admin/accounts/:id/activate
func (h *AccountHandler) Activate(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.Activate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account activated"})
}

// DeleteAccount handles DELETE /admin/accounts/:id. The account and its
// requests and activity are removed together.
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.Erase(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted"})
}
