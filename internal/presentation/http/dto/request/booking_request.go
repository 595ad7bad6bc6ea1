package request

import (
	"time"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

// CreateBookingRequest represents a create booking request. Base price,
// profit and the ledger fields are derived server-side.
type CreateBookingRequest struct {
	ProgramID      string              `json:"program_id" binding:"required,uuid"`
	CustomerName   string              `json:"customer_name" binding:"required,max=255"`
	PassportNumber string              `json:"passport_number" binding:"max=100"`
	Phone          string              `json:"phone" binding:"max=50"`
	PackageName    string              `json:"package_name" binding:"required"`
	Selection      []entity.CityChoice `json:"selection" binding:"required,min=1"`
	SellingPrice   float64             `json:"selling_price" binding:"min=0"`
}

// UpdateBookingRequest represents an update booking request. Nil fields
// are left unchanged.
type UpdateBookingRequest struct {
	CustomerName   *string             `json:"customer_name" binding:"omitempty,max=255"`
	PassportNumber *string             `json:"passport_number" binding:"omitempty,max=100"`
	Phone          *string             `json:"phone" binding:"omitempty,max=50"`
	PackageName    *string             `json:"package_name"`
	Selection      []entity.CityChoice `json:"selection"`
	SellingPrice   *float64            `json:"selling_price" binding:"omitempty,min=0"`
}

// BookingFilterRequest represents booking list query parameters
type BookingFilterRequest struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	ProgramID string `form:"program_id"`
	FullyPaid *bool  `form:"fully_paid"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// PaymentRequest represents an add-or-update payment request. ID and
// serial are assigned server-side.
type PaymentRequest struct {
	Amount        float64            `json:"amount" binding:"required,gt=0"`
	Currency      string             `json:"currency" binding:"max=10"`
	Method        enum.PaymentMethod `json:"method" binding:"required"`
	PaidAt        *time.Time         `json:"paid_at"`
	ChequeNumber  string             `json:"cheque_number"`
	BankName      string             `json:"bank_name"`
	ChequeDueDate *time.Time         `json:"cheque_due_date"`
	Note          string             `json:"note"`
}
