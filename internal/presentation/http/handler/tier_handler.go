package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/request"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
)

// TierHandler handles subscription tier HTTP requests
type TierHandler struct {
	tierService *service.TierService
}

// NewTierHandler creates a new tier handler
func NewTierHandler(tierService *service.TierService) *TierHandler {
	return &TierHandler{tierService: tierService}
}

// List handles listing subscription tiers
func (h *TierHandler) List(c *gin.Context) {
	tiers, err := h.tierService.ListTiers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tiers retrieved successfully", gin.H{
		"tiers": tiers,
	})
}

// Update handles changing a tier's limits
func (h *TierHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tier ID")
		return
	}

	var req request.UpdateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tier, err := h.tierService.UpdateTier(c.Request.Context(), &service.UpdateTierInput{
		ID:           id,
		MaxPrograms:  req.MaxPrograms,
		MaxBookings:  req.MaxBookings,
		MaxEmployees: req.MaxEmployees,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tier updated successfully", tier)
}
