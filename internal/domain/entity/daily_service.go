package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DailyService is a priced one-off service (transfer, ziyarah, city tour)
// sold outside a program. It carries the same payment ledger contract as
// a booking, with the total derived from its items.
type DailyService struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerName     string         `gorm:"size:255;not null" json:"customer_name"`
	Phone            string         `gorm:"size:50" json:"phone"`
	ServiceDate      time.Time      `gorm:"type:date" json:"service_date"`
	Items            []ServiceItem  `gorm:"type:jsonb;serializer:json" json:"items"`
	TotalPrice       float64        `gorm:"default:0" json:"total_price"`
	AdvancePayments  []Payment      `gorm:"type:jsonb;serializer:json" json:"advance_payments"`
	TotalPaid        float64        `gorm:"default:0" json:"total_paid"`
	RemainingBalance float64        `gorm:"default:0" json:"remaining_balance"`
	IsFullyPaid      bool           `gorm:"default:false" json:"is_fully_paid"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// ServiceItem is one line of a daily service.
type ServiceItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// BeforeCreate generates a UUID before creating a new daily service
func (ds *DailyService) BeforeCreate(tx *gorm.DB) error {
	if ds.ID == uuid.Nil {
		ds.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DailyService model
func (DailyService) TableName() string {
	return "daily_services"
}

// RecalculateTotal derives TotalPrice from the items.
func (ds *DailyService) RecalculateTotal() {
	total := 0.0
	for _, item := range ds.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	ds.TotalPrice = total
}

// LedgerTotal is the amount the service's payments settle against.
func (ds *DailyService) LedgerTotal() float64 {
	return ds.TotalPrice
}

// LedgerTolerance is the remaining-balance slack below which the service
// counts as fully paid.
func (ds *DailyService) LedgerTolerance() float64 {
	return 0
}
