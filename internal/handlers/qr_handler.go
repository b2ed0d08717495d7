package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// QRHandler handles QR batch management and scan redemptions
type QRHandler struct {
	qrService *services.QRService
}

// NewQRHandler creates a new QRHandler
func NewQRHandler(qrService *services.QRService) *QRHandler {
	return &QRHandler{qrService: qrService}
}

// CreateBatch handles POST /admin/qr/batches
func (h *QRHandler) CreateBatch(c *gin.Context) {
	var req models.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.qrService.CreateBatch(c.Request.Context(), req.ProductName, req.PointsPerCode, req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, batch)
}

// ListBatches handles GET /admin/qr/batches
func (h *QRHandler) ListBatches(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	batches, err := h.qrService.ListBatches(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, batches)
}

// GetBatch handles GET /admin/qr/batches/:id
func (h *QRHandler) GetBatch(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	progress, err := h.qrService.GetBatch(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, progress)
}

// ListBatchCodes handles GET /admin/qr/batches/:id/codes
func (h *QRHandler) ListBatchCodes(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	codes, err := h.qrService.ListCodes(c.Request.Context(), id, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, codes)
}

// DeleteBatch handles DELETE /admin/qr/batches/:id. Points already earned
// from the batch stay on member balances.
func (h *QRHandler) DeleteBatch(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.qrService.DeleteBatch(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Batch deleted"})
}

// RedeemCode handles POST /qr/redeem for the authenticated member
func (h *QRHandler) RedeemCode(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req models.RedeemCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	code, err := h.qrService.Redeem(c.Request.Context(), req.Code, accountID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code redeemed", "points": code.Points})
}
