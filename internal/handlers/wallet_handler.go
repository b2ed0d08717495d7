package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// WalletHandler handles the authenticated member's activity history,
// withdrawals and redemption requests
type WalletHandler struct {
	ledgerService   *services.LedgerService
	workflowService *services.WorkflowService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(ledgerService *services.LedgerService, workflowService *services.WorkflowService) *WalletHandler {
	return &WalletHandler{
		ledgerService:   ledgerService,
		workflowService: workflowService,
	}
}

// GetActivity handles GET /wallet/activity
func (h *WalletHandler) GetActivity(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	entries, err := h.ledgerService.Query(c.Request.Context(), accountID, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// CreateWithdrawal handles POST /wallet/withdrawals
func (h *WalletHandler) CreateWithdrawal(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req models.CreateWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	withdrawal, err := h.workflowService.CreateWithdrawal(c.Request.Context(), accountID, req.Amount, req.BankName, req.AccountNumber)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, withdrawal)
}

// ListWithdrawals handles GET /wallet/withdrawals
func (h *WalletHandler) ListWithdrawals(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	withdrawals, err := h.workflowService.ListAccountWithdrawals(c.Request.Context(), accountID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, withdrawals)
}

// ListRedemptions handles GET /wallet/redemptions
func (h *WalletHandler) ListRedemptions(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	redemptions, err := h.workflowService.ListAccountRedemptions(c.Request.Context(), accountID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, redemptions)
}
