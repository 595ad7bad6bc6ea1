package costing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/pkg/apperror"
)

func newPayment(amount float64) entity.Payment {
	return entity.Payment{
		ID:     uuid.New(),
		Amount: amount,
		Method: enum.PaymentMethodCash,
	}
}

func TestSettleEmptyLedger(t *testing.T) {
	state := Settle(2000, nil, 0)
	if state.TotalPaid != 0 {
		t.Errorf("TotalPaid = %v, want 0", state.TotalPaid)
	}
	if state.RemainingBalance != 2000 {
		t.Errorf("RemainingBalance = %v, want 2000", state.RemainingBalance)
	}
	if state.IsFullyPaid {
		t.Error("empty ledger must not be fully paid")
	}
}

func TestSettleFullyPaid(t *testing.T) {
	payments := []entity.Payment{newPayment(1500), newPayment(500)}
	state := Settle(2000, payments, 0)
	if state.TotalPaid != 2000 {
		t.Errorf("TotalPaid = %v, want 2000", state.TotalPaid)
	}
	if state.RemainingBalance != 0 {
		t.Errorf("RemainingBalance = %v, want 0", state.RemainingBalance)
	}
	if !state.IsFullyPaid {
		t.Error("zero remaining balance must count as fully paid")
	}
}

func TestSettleTolerance(t *testing.T) {
	payments := []entity.Payment{newPayment(1999.95)}
	if state := Settle(2000, payments, 0); state.IsFullyPaid {
		t.Error("0.05 remaining with zero tolerance must not be fully paid")
	}
	if state := Settle(2000, payments, 0.1); !state.IsFullyPaid {
		t.Error("0.05 remaining within 0.1 tolerance must be fully paid")
	}
}

func TestApplyPaymentAdd(t *testing.T) {
	next, state, err := ApplyPayment(2000, nil, 0, LedgerOpAdd, newPayment(800))
	if err != nil {
		t.Fatalf("ApplyPayment() error = %v", err)
	}
	if len(next) != 1 {
		t.Fatalf("len(next) = %d, want 1", len(next))
	}
	if state.TotalPaid != 800 || state.RemainingBalance != 1200 {
		t.Errorf("state = %+v, want paid 800 remaining 1200", state)
	}
}

func TestApplyPaymentOverdrawRejected(t *testing.T) {
	payments := []entity.Payment{newPayment(1500)}
	_, _, err := ApplyPayment(2000, payments, 0, LedgerOpAdd, newPayment(600))
	if err == nil {
		t.Fatal("expected overdraw to be rejected")
	}
	if !apperror.IsAppError(err) {
		t.Fatalf("expected AppError, got %T", err)
	}
	if code := apperror.GetAppError(err).Code; code != 400 {
		t.Errorf("Code = %d, want 400", code)
	}

	// The source slice must be untouched after a rejection.
	if len(payments) != 1 || payments[0].Amount != 1500 {
		t.Error("input payments were modified on rejection")
	}
}

func TestApplyPaymentOverdrawWithinTolerance(t *testing.T) {
	payments := []entity.Payment{newPayment(1500)}
	// 1500 + 500.05 = 2000.05, remaining -0.05, inside the 0.1 band.
	_, state, err := ApplyPayment(2000, payments, 0, LedgerOpAdd, newPayment(500.05))
	if err != nil {
		t.Fatalf("ApplyPayment() error = %v", err)
	}
	if !state.IsFullyPaid {
		t.Error("overpaid ledger must be fully paid")
	}
}

func TestApplyPaymentUpdate(t *testing.T) {
	original := newPayment(500)
	original.Serial = "PAY-000001"
	payments := []entity.Payment{original, newPayment(300)}

	edited := entity.Payment{
		ID:     original.ID,
		Serial: "PAY-999999",
		Amount: 700,
		Method: enum.PaymentMethodTransfer,
	}
	next, state, err := ApplyPayment(2000, payments, 0, LedgerOpUpdate, edited)
	if err != nil {
		t.Fatalf("ApplyPayment() error = %v", err)
	}
	if state.TotalPaid != 1000 {
		t.Errorf("TotalPaid = %v, want 1000", state.TotalPaid)
	}
	if next[0].Amount != 700 || next[0].Method != enum.PaymentMethodTransfer {
		t.Errorf("payment not updated: %+v", next[0])
	}
	// Identity fields survive the edit.
	if next[0].ID != original.ID || next[0].Serial != "PAY-000001" {
		t.Errorf("ID/Serial must be preserved on update, got %v %q", next[0].ID, next[0].Serial)
	}
}

func TestApplyPaymentUpdateUnknownID(t *testing.T) {
	payments := []entity.Payment{newPayment(500)}
	_, _, err := ApplyPayment(2000, payments, 0, LedgerOpUpdate, newPayment(100))
	if err == nil {
		t.Fatal("expected not-found error for unknown payment ID")
	}
	if code := apperror.GetAppError(err).Code; code != 404 {
		t.Errorf("expected 404 AppError, got %v", err)
	}
}

func TestApplyPaymentDelete(t *testing.T) {
	first := newPayment(1200)
	second := newPayment(800)
	payments := []entity.Payment{first, second}

	next, state, err := ApplyPayment(2000, payments, 0, LedgerOpDelete, entity.Payment{ID: second.ID})
	if err != nil {
		t.Fatalf("ApplyPayment() error = %v", err)
	}
	if len(next) != 1 || next[0].ID != first.ID {
		t.Fatalf("unexpected ledger after delete: %+v", next)
	}
	if state.TotalPaid != 1200 || state.RemainingBalance != 800 || state.IsFullyPaid {
		t.Errorf("state = %+v, want paid 1200 remaining 800 not fully paid", state)
	}
}

func TestApplyPaymentDeleteUnknownID(t *testing.T) {
	payments := []entity.Payment{newPayment(500)}
	_, _, err := ApplyPayment(2000, payments, 0, LedgerOpDelete, entity.Payment{ID: uuid.New()})
	if err == nil {
		t.Fatal("expected not-found error for unknown payment ID")
	}
}

func TestApplyPaymentLifecycle(t *testing.T) {
	// Pay down to zero, delete everything, pay down again.
	var payments []entity.Payment
	var state LedgerState
	var err error

	for _, amount := range []float64{500, 1500} {
		payments, state, err = ApplyPayment(2000, payments, 0, LedgerOpAdd, newPayment(amount))
		if err != nil {
			t.Fatalf("add %v: %v", amount, err)
		}
	}
	if !state.IsFullyPaid || state.RemainingBalance != 0 {
		t.Fatalf("after paying in full: %+v", state)
	}

	for len(payments) > 0 {
		payments, state, err = ApplyPayment(2000, payments, 0, LedgerOpDelete, entity.Payment{ID: payments[0].ID})
		if err != nil {
			t.Fatalf("delete: %v", err)
		}
	}
	if state.TotalPaid != 0 || state.RemainingBalance != 2000 || state.IsFullyPaid {
		t.Fatalf("after clearing the ledger: %+v", state)
	}

	payments, state, err = ApplyPayment(2000, payments, 0, LedgerOpAdd, newPayment(2000))
	if err != nil {
		t.Fatalf("re-add: %v", err)
	}
	if !state.IsFullyPaid || len(payments) != 1 {
		t.Fatalf("after re-paying in full: %+v", state)
	}
}

func TestApplyPaymentUnknownOp(t *testing.T) {
	_, _, err := ApplyPayment(2000, nil, 0, LedgerOp("merge"), newPayment(100))
	if err == nil {
		t.Fatal("expected error for unknown ledger operation")
	}
}

func TestValidatePayment(t *testing.T) {
	valid := newPayment(100)
	if err := ValidatePayment(&valid); err != nil {
		t.Errorf("valid payment rejected: %v", err)
	}

	zero := newPayment(0)
	if err := ValidatePayment(&zero); err == nil {
		t.Error("zero amount must be rejected")
	}

	negative := newPayment(-50)
	if err := ValidatePayment(&negative); err == nil {
		t.Error("negative amount must be rejected")
	}

	badMethod := newPayment(100)
	badMethod.Method = enum.PaymentMethod("barter")
	if err := ValidatePayment(&badMethod); err == nil {
		t.Error("unknown method must be rejected")
	}
}

func TestNewPaymentID(t *testing.T) {
	p := entity.Payment{Amount: 100, Method: enum.PaymentMethodCash}
	NewPaymentID(&p, "PAY-000042")
	if p.ID == uuid.Nil {
		t.Error("expected a fresh UUID")
	}
	if p.Serial != "PAY-000042" {
		t.Errorf("Serial = %q, want PAY-000042", p.Serial)
	}
}
