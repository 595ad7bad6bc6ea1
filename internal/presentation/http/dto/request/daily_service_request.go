package request

import (
	"time"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
)

// CreateDailyServiceRequest represents a create daily service request.
// The total price is derived server-side from the items.
type CreateDailyServiceRequest struct {
	CustomerName string               `json:"customer_name" binding:"required,max=255"`
	Phone        string               `json:"phone" binding:"max=50"`
	ServiceDate  time.Time            `json:"service_date"`
	Items        []entity.ServiceItem `json:"items" binding:"required,min=1"`
}

// UpdateDailyServiceRequest represents an update daily service request.
// Nil fields are left unchanged.
type UpdateDailyServiceRequest struct {
	CustomerName *string              `json:"customer_name" binding:"omitempty,max=255"`
	Phone        *string              `json:"phone" binding:"omitempty,max=50"`
	ServiceDate  *time.Time           `json:"service_date"`
	Items        []entity.ServiceItem `json:"items"`
}
