package costing

import (
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/pkg/apperror"
)

// OverdrawTolerance is how far a ledger may go past its total before an
// add or update is rejected. It absorbs floating-point drift; anything
// beyond it is a genuine overpayment.
const OverdrawTolerance = 0.1

// LedgerOp is a mutation applied to an entity's payment list.
type LedgerOp string

const (
	LedgerOpAdd    LedgerOp = "add"
	LedgerOpUpdate LedgerOp = "update"
	LedgerOpDelete LedgerOp = "delete"
)

// LedgerState is the derived view of a payment list against a total.
type LedgerState struct {
	TotalPaid        float64
	RemainingBalance float64
	IsFullyPaid      bool
}

// Settle recomputes the derived ledger fields from the entire payment
// list. It is always a full recomputation, never an incremental delta, so
// repeated mutations cannot drift.
func Settle(totalPrice float64, payments []entity.Payment, tolerance float64) LedgerState {
	paid := 0.0
	for _, p := range payments {
		paid += p.Amount
	}
	remaining := totalPrice - paid
	return LedgerState{
		TotalPaid:        paid,
		RemainingBalance: remaining,
		IsFullyPaid:      remaining <= tolerance,
	}
}

// ApplyPayment returns the payment list after an add, update or delete and
// the ledger state settled against totalPrice. The input slice is not
// modified.
//
// An add or update that would drive the remaining balance below
// -OverdrawTolerance is rejected; the policy is uniform across bookings,
// daily services and expenses. Update preserves the matched entry's ID and
// Serial and overwrites everything else; delete of an unknown ID fails.
func ApplyPayment(totalPrice float64, payments []entity.Payment, tolerance float64, op LedgerOp, payment entity.Payment) ([]entity.Payment, LedgerState, error) {
	next := make([]entity.Payment, 0, len(payments)+1)

	switch op {
	case LedgerOpAdd:
		next = append(next, payments...)
		next = append(next, payment)

	case LedgerOpUpdate:
		found := false
		for _, existing := range payments {
			if existing.ID == payment.ID {
				updated := payment
				updated.ID = existing.ID
				updated.Serial = existing.Serial
				next = append(next, updated)
				found = true
				continue
			}
			next = append(next, existing)
		}
		if !found {
			return nil, LedgerState{}, apperror.NewNotFoundError("Payment")
		}

	case LedgerOpDelete:
		found := false
		for _, existing := range payments {
			if existing.ID == payment.ID {
				found = true
				continue
			}
			next = append(next, existing)
		}
		if !found {
			return nil, LedgerState{}, apperror.NewNotFoundError("Payment")
		}

	default:
		return nil, LedgerState{}, apperror.NewBadRequestError("Unknown ledger operation")
	}

	state := Settle(totalPrice, next, tolerance)
	if op != LedgerOpDelete && state.RemainingBalance < -OverdrawTolerance {
		return nil, LedgerState{}, apperror.NewBadRequestError("Payment exceeds remaining balance")
	}

	return next, state, nil
}

// ValidatePayment checks the fields an operator controls before a payment
// enters a ledger.
func ValidatePayment(p *entity.Payment) error {
	var fieldErrors []apperror.FieldError
	if p.Amount <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if !p.Method.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "method", Message: "unknown payment method"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// NewPaymentID stamps a fresh identity onto a payment about to be added.
// The serial comes from the tenant's payment sequence.
func NewPaymentID(p *entity.Payment, serial string) {
	p.ID = uuid.New()
	p.Serial = serial
}
