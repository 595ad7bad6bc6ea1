package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ExpenseTolerance absorbs floating-point drift in expense ledgers, which
// accumulate many small partial payments.
const ExpenseTolerance = 0.1

// Expense is an agency outgoing (supplier invoice, rent, fuel) settled
// through the same payment ledger contract as bookings.
type Expense struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Title            string         `gorm:"size:255;not null" json:"title"`
	Category         string         `gorm:"size:100" json:"category"`
	Amount           float64        `gorm:"not null" json:"amount"`
	Notes            string         `gorm:"type:text" json:"notes,omitempty"`
	AdvancePayments  []Payment      `gorm:"type:jsonb;serializer:json" json:"advance_payments"`
	TotalPaid        float64        `gorm:"default:0" json:"total_paid"`
	RemainingBalance float64        `gorm:"default:0" json:"remaining_balance"`
	IsFullyPaid      bool           `gorm:"default:false" json:"is_fully_paid"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new expense
func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Expense model
func (Expense) TableName() string {
	return "expenses"
}

// LedgerTotal is the amount the expense's payments settle against.
func (e *Expense) LedgerTotal() float64 {
	return e.Amount
}

// LedgerTolerance is the remaining-balance slack below which the expense
// counts as fully paid.
func (e *Expense) LedgerTolerance() float64 {
	return ExpenseTolerance
}
