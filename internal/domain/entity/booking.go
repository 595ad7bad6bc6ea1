package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Booking is one traveller's purchase of a program package. BasePrice,
// Profit and the ledger fields are derived; they are never accepted from
// request input.
type Booking struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TenantID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"tenant_id"`
	ProgramID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"program_id"`
	CustomerName     string         `gorm:"size:255;not null" json:"customer_name"`
	PassportNumber   string         `gorm:"size:100;index" json:"passport_number"`
	Phone            string         `gorm:"size:50" json:"phone"`
	PackageName      string         `gorm:"size:255;not null" json:"package_name"`
	Selection        []CityChoice   `gorm:"type:jsonb;serializer:json" json:"selection"`
	SellingPrice     float64        `gorm:"default:0" json:"selling_price"`
	BasePrice        float64        `gorm:"default:0" json:"base_price"`
	Profit           float64        `gorm:"default:0" json:"profit"`
	AdvancePayments  []Payment      `gorm:"type:jsonb;serializer:json" json:"advance_payments"`
	TotalPaid        float64        `gorm:"default:0" json:"total_paid"`
	RemainingBalance float64        `gorm:"default:0" json:"remaining_balance"`
	IsFullyPaid      bool           `gorm:"default:false" json:"is_fully_paid"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Program Program `gorm:"foreignKey:ProgramID" json:"-"`
}

// CityChoice is the hotel and room type a booking selected in one city.
type CityChoice struct {
	City     string        `json:"city"`
	Hotel    string        `json:"hotel"`
	RoomType enum.RoomType `json:"room_type"`
}

// Payment is one advance payment inside an entity's ledger. Serial is the
// tenant-scoped human-readable sequence number.
type Payment struct {
	ID            uuid.UUID          `json:"id"`
	Serial        string             `json:"serial"`
	Amount        float64            `json:"amount"`
	Currency      string             `json:"currency"`
	Method        enum.PaymentMethod `json:"method"`
	PaidAt        time.Time          `json:"paid_at"`
	ChequeNumber  string             `json:"cheque_number,omitempty"`
	BankName      string             `json:"bank_name,omitempty"`
	ChequeDueDate *time.Time         `json:"cheque_due_date,omitempty"`
	Note          string             `json:"note,omitempty"`
}

// BeforeCreate generates a UUID before creating a new booking
func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Booking model
func (Booking) TableName() string {
	return "bookings"
}

// Hotels returns the selected hotel names in selection order.
func (b *Booking) Hotels() []string {
	hotels := make([]string, len(b.Selection))
	for i, c := range b.Selection {
		hotels[i] = c.Hotel
	}
	return hotels
}

// LedgerTotal is the amount the booking's payments settle against.
func (b *Booking) LedgerTotal() float64 {
	return b.SellingPrice
}

// LedgerTolerance is the remaining-balance slack below which the booking
// counts as fully paid.
func (b *Booking) LedgerTolerance() float64 {
	return 0
}
