package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rewardhub/rewardhub-backend/internal/models"
	"github.com/rewardhub/rewardhub-backend/internal/services"
)

// AdminHandler handles agent code management and the dashboard summary
type AdminHandler struct {
	agentCodeService *services.AgentCodeService
	statsService     *services.StatsService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(agentCodeService *services.AgentCodeService, statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{
		agentCodeService: agentCodeService,
		statsService:     statsService,
	}
}

// GenerateAgentCodes handles POST /admin/agent-codes
func (h *AdminHandler) GenerateAgentCodes(c *gin.Context) {
	var req models.GenerateAgentCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	codes, err := h.agentCodeService.Generate(c.Request.Context(), req.Count)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, codes)
}

// ListAgentCodes handles GET /admin/agent-codes
func (h *AdminHandler) ListAgentCodes(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	codes, err := h.agentCodeService.List(c.Request.Context(), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, codes)
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.statsService.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
