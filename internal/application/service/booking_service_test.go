package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/pkg/apperror"
)

func TestCreateBookingDerivesPricing(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)

	booking := env.seedBooking(t, program.ID, 2500)

	if booking.BasePrice != 2100 {
		t.Errorf("BasePrice = %v, want 2100", booking.BasePrice)
	}
	if booking.Profit != 400 {
		t.Errorf("Profit = %v, want 400", booking.Profit)
	}
	if booking.TotalPaid != 0 || booking.RemainingBalance != 2500 || booking.IsFullyPaid {
		t.Errorf("fresh booking ledger = paid %v remaining %v fully_paid %v",
			booking.TotalPaid, booking.RemainingBalance, booking.IsFullyPaid)
	}
	if booking.TenantID != env.tenantID {
		t.Errorf("TenantID = %v, want %v", booking.TenantID, env.tenantID)
	}
}

func TestCreateBookingUnknownPackage(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)

	_, err := env.bookings.CreateBooking(env.ctx, &CreateBookingInput{
		ProgramID:    program.ID,
		CustomerName: "Ahmed Ali",
		PackageName:  "Platinum",
		Selection:    env.standardSelection(),
		SellingPrice: 2500,
	})
	if err == nil {
		t.Fatal("expected validation error for unknown package")
	}
	if code := apperror.GetAppError(err).Code; code != 422 {
		t.Errorf("Code = %d, want 422", code)
	}
}

func TestCreateBookingRejectsForeignHotel(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)

	selection := env.standardSelection()
	selection[0].Hotel = "Unlisted Palace"

	_, err := env.bookings.CreateBooking(env.ctx, &CreateBookingInput{
		ProgramID:    program.ID,
		CustomerName: "Ahmed Ali",
		PackageName:  "Gold",
		Selection:    selection,
		SellingPrice: 2500,
	})
	if err == nil {
		t.Fatal("expected validation error for hotel outside the package")
	}
}

func TestAddPaymentAssignsSerials(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2500)

	first, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 1000,
		Method: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	second, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 500,
		Method: enum.PaymentMethodTransfer,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	if len(second.AdvancePayments) != 2 {
		t.Fatalf("len(AdvancePayments) = %d, want 2", len(second.AdvancePayments))
	}
	if got := first.AdvancePayments[0].Serial; got != "PAY-000001" {
		t.Errorf("first serial = %q, want PAY-000001", got)
	}
	if got := second.AdvancePayments[1].Serial; got != "PAY-000002" {
		t.Errorf("second serial = %q, want PAY-000002", got)
	}
	if second.AdvancePayments[0].Currency != "SAR" {
		t.Errorf("default currency = %q, want SAR", second.AdvancePayments[0].Currency)
	}
	if second.TotalPaid != 1500 || second.RemainingBalance != 1000 || second.IsFullyPaid {
		t.Errorf("ledger = paid %v remaining %v fully_paid %v",
			second.TotalPaid, second.RemainingBalance, second.IsFullyPaid)
	}
}

func TestAddPaymentOverdrawRejected(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2500)

	if _, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 2000,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	_, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 600,
		Method: enum.PaymentMethodCash,
	})
	if err == nil {
		t.Fatal("expected overdraw to be rejected")
	}

	// The rejected transaction must not have persisted anything.
	reloaded, err := env.bookings.GetBooking(env.ctx, booking.ID)
	if err != nil {
		t.Fatalf("GetBooking() error = %v", err)
	}
	if len(reloaded.AdvancePayments) != 1 || reloaded.TotalPaid != 2000 {
		t.Errorf("ledger changed after rejected payment: %+v", reloaded.AdvancePayments)
	}
}

func TestUpdatePaymentPreservesIdentity(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2500)

	withPayment, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 1000,
		Method: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	paymentID := withPayment.AdvancePayments[0].ID

	updated, err := env.bookings.UpdatePayment(env.ctx, booking.ID, paymentID, &PaymentInput{
		Amount: 1200,
		Method: enum.PaymentMethodCheque,
	})
	if err != nil {
		t.Fatalf("UpdatePayment() error = %v", err)
	}

	p := updated.AdvancePayments[0]
	if p.ID != paymentID || p.Serial != "PAY-000001" {
		t.Errorf("identity changed on update: %v %q", p.ID, p.Serial)
	}
	if p.Amount != 1200 || p.Method != enum.PaymentMethodCheque {
		t.Errorf("fields not updated: %+v", p)
	}
	if updated.TotalPaid != 1200 || updated.RemainingBalance != 1300 {
		t.Errorf("ledger = paid %v remaining %v", updated.TotalPaid, updated.RemainingBalance)
	}
}

func TestDeletePaymentResettlesLedger(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2000)

	withPayment, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 2000,
		Method: enum.PaymentMethodCash,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	if !withPayment.IsFullyPaid {
		t.Fatal("booking should be fully paid")
	}

	cleared, err := env.bookings.DeletePayment(env.ctx, booking.ID, withPayment.AdvancePayments[0].ID)
	if err != nil {
		t.Fatalf("DeletePayment() error = %v", err)
	}
	if len(cleared.AdvancePayments) != 0 {
		t.Errorf("len(AdvancePayments) = %d, want 0", len(cleared.AdvancePayments))
	}
	if cleared.TotalPaid != 0 || cleared.RemainingBalance != 2000 || cleared.IsFullyPaid {
		t.Errorf("ledger = paid %v remaining %v fully_paid %v",
			cleared.TotalPaid, cleared.RemainingBalance, cleared.IsFullyPaid)
	}
}

func TestDeletePaymentUnknownID(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2000)

	_, err := env.bookings.DeletePayment(env.ctx, booking.ID, uuid.New())
	if err == nil {
		t.Fatal("expected not-found error for unknown payment")
	}
	if code := apperror.GetAppError(err).Code; code != 404 {
		t.Errorf("Code = %d, want 404", code)
	}
}

func TestUpdateBookingRepricesButKeepsPayments(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)
	booking := env.seedBooking(t, program.ID, 2500)

	if _, err := env.bookings.AddPayment(env.ctx, booking.ID, &PaymentInput{
		Amount: 1000,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	newPrice := 3000.0
	updated, err := env.bookings.UpdateBooking(env.ctx, &UpdateBookingInput{
		ID:           booking.ID,
		SellingPrice: &newPrice,
	})
	if err != nil {
		t.Fatalf("UpdateBooking() error = %v", err)
	}

	if updated.BasePrice != 2100 {
		t.Errorf("BasePrice = %v, want 2100", updated.BasePrice)
	}
	if updated.Profit != 900 {
		t.Errorf("Profit = %v, want 900", updated.Profit)
	}
	if len(updated.AdvancePayments) != 1 || updated.TotalPaid != 1000 {
		t.Errorf("payments must survive a booking edit: %+v", updated.AdvancePayments)
	}
	if updated.RemainingBalance != 2000 {
		t.Errorf("RemainingBalance = %v, want 2000", updated.RemainingBalance)
	}
}

func TestBookingLimitEnforced(t *testing.T) {
	env := newTestEnv(t)

	// Assign a one-booking tier before anything resolves (and caches) the
	// tenant's tier.
	tier := entity.Tier{Name: "trial", MaxBookings: 1}
	if err := env.db.Create(&tier).Error; err != nil {
		t.Fatalf("create tier: %v", err)
	}
	if err := env.db.Model(&entity.Tenant{}).Where("id = ?", env.tenantID).
		Update("tier_id", tier.ID).Error; err != nil {
		t.Fatalf("assign tier: %v", err)
	}

	program := env.seedProgram(t)
	env.seedBooking(t, program.ID, 2500)

	_, err := env.bookings.CreateBooking(env.ctx, &CreateBookingInput{
		ProgramID:    program.ID,
		CustomerName: "Second Customer",
		PackageName:  "Gold",
		Selection:    env.standardSelection(),
		SellingPrice: 2500,
	})
	if err == nil {
		t.Fatal("expected booking limit to be enforced")
	}
	if code := apperror.GetAppError(err).Code; code != 403 {
		t.Errorf("Code = %d, want 403", code)
	}
}
