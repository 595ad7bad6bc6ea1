package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/request"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// ProgramHandler handles program catalog HTTP requests, including the
// pricing table and flat-cost override sub-resources.
type ProgramHandler struct {
	programService *service.ProgramService
	pricingService *service.PricingService
	costService    *service.ProgramCostService
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(
	programService *service.ProgramService,
	pricingService *service.PricingService,
	costService *service.ProgramCostService,
) *ProgramHandler {
	return &ProgramHandler{
		programService: programService,
		pricingService: pricingService,
		costService:    costService,
	}
}

// List handles listing programs
func (h *ProgramHandler) List(c *gin.Context) {
	var filter request.ProgramFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProgramFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.Type != "" {
		programType := enum.ProgramType(filter.Type)
		params.Type = &programType
	}

	result, err := h.programService.ListPrograms(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Programs retrieved successfully", result)
}

// Create handles creating a program
func (h *ProgramHandler) Create(c *gin.Context) {
	var req request.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), &service.CreateProgramInput{
		Name:         req.Name,
		Type:         req.Type,
		DurationDays: req.DurationDays,
		Cities:       req.Cities,
		Packages:     req.Packages,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Program created successfully", program)
}

// Get handles getting a single program with its pricing and override
func (h *ProgramHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	program, err := h.programService.GetProgram(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Program retrieved successfully", program)
}

// Update handles updating a program's catalog
func (h *ProgramHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	var req request.UpdateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	program, err := h.programService.UpdateProgram(c.Request.Context(), &service.UpdateProgramInput{
		ID:           id,
		Name:         req.Name,
		Type:         req.Type,
		DurationDays: req.DurationDays,
		Cities:       req.Cities,
		Packages:     req.Packages,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Program updated successfully", program)
}

// Delete handles deleting a program
func (h *ProgramHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// GetPricing handles getting a program's pricing table
func (h *ProgramHandler) GetPricing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	table, err := h.pricingService.GetPricing(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing retrieved successfully", table)
}

// UpsertPricing handles creating or replacing a program's pricing table
func (h *ProgramHandler) UpsertPricing(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	var req request.UpsertPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	table, err := h.pricingService.UpsertPricing(c.Request.Context(), &service.UpsertPricingInput{
		ProgramID:     id,
		TicketAirline: req.TicketAirline,
		VisaFees:      req.VisaFees,
		GuideFees:     req.GuideFees,
		Hotels:        req.Hotels,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Pricing saved successfully", table)
}

// GetCost handles getting a program's flat-cost override
func (h *ProgramHandler) GetCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	cost, err := h.costService.GetCost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Program cost retrieved successfully", cost)
}

// UpsertCost handles creating or replacing a program's flat-cost override
func (h *ProgramHandler) UpsertCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	var req request.UpsertCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cost, err := h.costService.UpsertCost(c.Request.Context(), &service.UpsertCostInput{
		ProgramID:     id,
		FlightTickets: req.FlightTickets,
		Visa:          req.Visa,
		Transport:     req.Transport,
		Hotels:        req.Hotels,
		Custom:        req.Custom,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Program cost saved successfully", cost)
}

// ToggleCost handles enabling or disabling a program's flat-cost override
func (h *ProgramHandler) ToggleCost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid program ID")
		return
	}

	var req request.ToggleCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	cost, err := h.costService.ToggleCost(c.Request.Context(), id, *req.Enabled)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Program cost toggled successfully", cost)
}
