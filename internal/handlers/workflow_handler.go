package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// WorkflowHandler handles the admin side of withdrawal and redemption
// request processing
type WorkflowHandler struct {
	workflowService *services.WorkflowService
}

// NewWorkflowHandler creates a new WorkflowHandler
func NewWorkflowHandler(workflowService *services.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{workflowService: workflowService}
}

// updateStatusRequest is the request body for both status transitions
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListWithdrawals handles GET /admin/withdrawals
func (h *WorkflowHandler) ListWithdrawals(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	withdrawals, err := h.workflowService.ListWithdrawals(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, withdrawals)
}

// UpdateWithdrawalStatus handles PUT /admin/withdrawals/:id/status
func (h *WorkflowHandler) UpdateWithdrawalStatus(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.workflowService.TransitionWithdrawal(c.Request.Context(), id, models.WithdrawalStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Withdrawal updated"})
}

// ListRedemptions handles GET /admin/redemptions
func (h *WorkflowHandler) ListRedemptions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	redemptions, err := h.workflowService.ListRedemptions(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, redemptions)
}

// UpdateRedemptionStatus handles PUT /admin/redemptions/:id/status
func (h *WorkflowHandler) UpdateRedemptionStatus(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.workflowService.TransitionRedemption(c.Request.Context(), id, models.RedemptionStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Redemption updated"})
}
