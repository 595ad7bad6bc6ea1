package service

import (
	"testing"
	"time"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)
	program := env.seedProgram(t)

	paid := env.seedBooking(t, program.ID, 2500)
	if _, err := env.bookings.AddPayment(env.ctx, paid.ID, &PaymentInput{
		Amount: 2500,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	partial := env.seedBooking(t, program.ID, 3000)
	if _, err := env.bookings.AddPayment(env.ctx, partial.ID, &PaymentInput{
		Amount: 1000,
		Method: enum.PaymentMethodTransfer,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	svc, err := env.dailyServices.CreateDailyService(env.ctx, &CreateDailyServiceInput{
		CustomerName: "Walk-in Customer",
		ServiceDate:  time.Now(),
		Items:        []entity.ServiceItem{{Name: "Airport transfer", Quantity: 2, UnitPrice: 150}},
	})
	if err != nil {
		t.Fatalf("CreateDailyService() error = %v", err)
	}
	if _, err := env.dailyServices.AddPayment(env.ctx, svc.ID, &PaymentInput{
		Amount: 300,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	expense, err := env.expenses.CreateExpense(env.ctx, &CreateExpenseInput{
		Title:    "Office rent",
		Category: "rent",
		Amount:   1200,
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if _, err := env.expenses.AddPayment(env.ctx, expense.ID, &PaymentInput{
		Amount: 400,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	stats, err := env.dashboard.GetDashboardStats(env.ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats() error = %v", err)
	}

	if stats.TotalPrograms != 1 {
		t.Errorf("TotalPrograms = %d, want 1", stats.TotalPrograms)
	}

	b := stats.Bookings
	if b.Count != 2 {
		t.Errorf("Bookings.Count = %d, want 2", b.Count)
	}
	if b.Revenue != 5500 {
		t.Errorf("Bookings.Revenue = %v, want 5500", b.Revenue)
	}
	// Base price is 2100 per booking: profit 400 + 900.
	if b.Profit != 1300 {
		t.Errorf("Bookings.Profit = %v, want 1300", b.Profit)
	}
	if b.Collected != 3500 || b.Outstanding != 2000 {
		t.Errorf("Bookings collected %v outstanding %v, want 3500/2000", b.Collected, b.Outstanding)
	}
	if b.Unpaid != 1 {
		t.Errorf("Bookings.Unpaid = %d, want 1", b.Unpaid)
	}

	s := stats.Services
	if s.Count != 1 || s.Total != 300 || s.Collected != 300 || s.Unpaid != 0 {
		t.Errorf("Services = %+v", s)
	}

	e := stats.Expenses
	if e.Count != 1 || e.Total != 1200 || e.Collected != 400 || e.Outstanding != 800 || e.Unpaid != 1 {
		t.Errorf("Expenses = %+v", e)
	}

	// bookings 3500 + services 300 - expenses 400
	if stats.NetCollected != 3400 {
		t.Errorf("NetCollected = %v, want 3400", stats.NetCollected)
	}
}

func TestDashboardStatsEmptyTenant(t *testing.T) {
	env := newTestEnv(t)

	stats, err := env.dashboard.GetDashboardStats(env.ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats() error = %v", err)
	}
	if stats.TotalPrograms != 0 || stats.Bookings.Count != 0 || stats.NetCollected != 0 {
		t.Errorf("empty tenant stats = %+v", stats)
	}
}
