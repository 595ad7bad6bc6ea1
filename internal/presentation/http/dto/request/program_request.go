package request

import (
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

// CreateProgramRequest represents a create program request
type CreateProgramRequest struct {
	Name         string                  `json:"name" binding:"required,max=255"`
	Type         enum.ProgramType        `json:"type" binding:"required"`
	DurationDays int                     `json:"duration_days" binding:"omitempty,min=0"`
	Cities       []entity.ProgramCity    `json:"cities" binding:"required,min=1"`
	Packages     []entity.ProgramPackage `json:"packages"`
}

// UpdateProgramRequest represents an update program request. Nil fields
// are left unchanged.
type UpdateProgramRequest struct {
	Name         *string                 `json:"name" binding:"omitempty,max=255"`
	Type         *enum.ProgramType       `json:"type"`
	DurationDays *int                    `json:"duration_days" binding:"omitempty,min=0"`
	Cities       []entity.ProgramCity    `json:"cities"`
	Packages     []entity.ProgramPackage `json:"packages"`
}

// ProgramFilterRequest represents program list query parameters
type ProgramFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	Type      string `form:"type"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// UpsertPricingRequest represents a create-or-replace pricing request
type UpsertPricingRequest struct {
	TicketAirline float64            `json:"ticket_airline" binding:"min=0"`
	VisaFees      float64            `json:"visa_fees" binding:"min=0"`
	GuideFees     float64            `json:"guide_fees" binding:"min=0"`
	Hotels        []entity.HotelRate `json:"hotels"`
}

// UpsertCostRequest represents a create-or-replace flat-cost override
// request. The total is derived server-side from the breakdown.
type UpsertCostRequest struct {
	FlightTickets float64           `json:"flight_tickets" binding:"min=0"`
	Visa          float64           `json:"visa" binding:"min=0"`
	Transport     float64           `json:"transport" binding:"min=0"`
	Hotels        []entity.CostItem `json:"hotels"`
	Custom        []entity.CostItem `json:"custom"`
}

// ToggleCostRequest represents an override enable/disable request
type ToggleCostRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}
