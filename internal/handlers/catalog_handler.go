package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// CatalogHandler handles reward products, store locations and catalog
// redemptions
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListProducts handles GET /catalog/products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.ListAvailable(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// CreateProduct handles POST /admin/catalog/products
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req models.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.RewardProduct{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PointsCost:  req.PointsCost,
		Stock:       req.Stock,
	}
	if err := h.catalogService.CreateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// UpdateProduct handles PUT /admin/catalog/products/:id
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req models.UpsertProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product := &models.RewardProduct{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		PointsCost:  req.PointsCost,
		Stock:       req.Stock,
	}
	if err := h.catalogService.UpdateProduct(c.Request.Context(), product); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct handles DELETE /admin/catalog/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// ListStores handles GET /catalog/stores
func (h *CatalogHandler) ListStores(c *gin.Context) {
	stores, err := h.catalogService.ListStores(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stores)
}

// CreateStore handles POST /admin/catalog/stores
func (h *CatalogHandler) CreateStore(c *gin.Context) {
	var store models.StoreLocation
	if err := c.ShouldBindJSON(&store); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalogService.CreateStore(c.Request.Context(), &store); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, store)
}

// Redeem handles POST /catalog/redeem for the authenticated member
func (h *CatalogHandler) Redeem(c *gin.Context) {
	accountID, ok := currentAccountID(c)
	if !ok {
		return
	}

	var req models.RedeemProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	var storeID *primitive.ObjectID
	if req.StoreID != "" {
		id, err := primitive.ObjectIDFromHex(req.StoreID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid store ID format"})
			return
		}
		storeID = &id
	}

	request, err := h.catalogService.Redeem(c.Request.Context(), accountID, productID, models.RedemptionType(req.Type), storeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}
