package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// Sequence names used across the application.
const (
	SequencePayment = "payment"
)

// SequenceCounter backs tenant-scoped monotonic human-readable identifiers,
// such as the payment serial printed on receipts.
type SequenceCounter struct {
	TenantID uuid.UUID `gorm:"type:uuid;primaryKey" json:"tenant_id"`
	Name     string    `gorm:"size:100;primaryKey" json:"name"`
	Value    int64     `gorm:"default:0" json:"value"`
}

// TableName returns the table name for the SequenceCounter model
func (SequenceCounter) TableName() string {
	return "sequence_counters"
}

// FormatPaymentSerial renders a payment sequence value as the serial shown
// to operators.
func FormatPaymentSerial(value int64) string {
	return fmt.Sprintf("PAY-%06d", value)
}
