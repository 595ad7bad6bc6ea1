package service

import (
	"testing"
	"time"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
)

func TestExpenseLedgerTolerance(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenses.CreateExpense(env.ctx, &CreateExpenseInput{
		Title:    "Supplier invoice",
		Category: "hotels",
		Amount:   1000,
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}

	// Residue within the tolerance band settles the expense.
	paid, err := env.expenses.AddPayment(env.ctx, expense.ID, &PaymentInput{
		Amount: 999.95,
		Method: enum.PaymentMethodTransfer,
	})
	if err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}
	if !paid.IsFullyPaid {
		t.Errorf("expense with 0.05 remaining should be fully paid, got %+v", paid)
	}
}

func TestExpenseAmountChangeResettles(t *testing.T) {
	env := newTestEnv(t)

	expense, err := env.expenses.CreateExpense(env.ctx, &CreateExpenseInput{
		Title:  "Fuel",
		Amount: 500,
	})
	if err != nil {
		t.Fatalf("CreateExpense() error = %v", err)
	}
	if _, err := env.expenses.AddPayment(env.ctx, expense.ID, &PaymentInput{
		Amount: 500,
		Method: enum.PaymentMethodCash,
	}); err != nil {
		t.Fatalf("AddPayment() error = %v", err)
	}

	newAmount := 800.0
	updated, err := env.expenses.UpdateExpense(env.ctx, &UpdateExpenseInput{
		ID:     expense.ID,
		Amount: &newAmount,
	})
	if err != nil {
		t.Fatalf("UpdateExpense() error = %v", err)
	}
	if updated.IsFullyPaid {
		t.Error("raising the amount must reopen the expense")
	}
	if updated.RemainingBalance != 300 {
		t.Errorf("RemainingBalance = %v, want 300", updated.RemainingBalance)
	}
}

func TestExpenseRejectsNonPositiveAmount(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.expenses.CreateExpense(env.ctx, &CreateExpenseInput{
		Title:  "Free lunch",
		Amount: 0,
	}); err == nil {
		t.Fatal("expected validation error for zero amount")
	}
}

func TestDailyServiceTotalDerivedFromItems(t *testing.T) {
	env := newTestEnv(t)

	svc, err := env.dailyServices.CreateDailyService(env.ctx, &CreateDailyServiceInput{
		CustomerName: "Walk-in Customer",
		ServiceDate:  time.Now(),
		Items: []entity.ServiceItem{
			{Name: "Airport transfer", Quantity: 2, UnitPrice: 150},
			{Name: "Ziyarah tour", Quantity: 1, UnitPrice: 200},
		},
	})
	if err != nil {
		t.Fatalf("CreateDailyService() error = %v", err)
	}
	if svc.TotalPrice != 500 {
		t.Errorf("TotalPrice = %v, want 500", svc.TotalPrice)
	}
	if svc.RemainingBalance != 500 || svc.IsFullyPaid {
		t.Errorf("ledger = remaining %v fully_paid %v", svc.RemainingBalance, svc.IsFullyPaid)
	}

	// Shrinking the items re-derives the total and re-settles the ledger.
	updated, err := env.dailyServices.UpdateDailyService(env.ctx, &UpdateDailyServiceInput{
		ID: svc.ID,
		Items: []entity.ServiceItem{
			{Name: "Airport transfer", Quantity: 1, UnitPrice: 150},
		},
	})
	if err != nil {
		t.Fatalf("UpdateDailyService() error = %v", err)
	}
	if updated.TotalPrice != 150 || updated.RemainingBalance != 150 {
		t.Errorf("total %v remaining %v, want 150/150", updated.TotalPrice, updated.RemainingBalance)
	}
}

func TestDailyServiceRequiresItems(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.dailyServices.CreateDailyService(env.ctx, &CreateDailyServiceInput{
		CustomerName: "Walk-in Customer",
		ServiceDate:  time.Now(),
	}); err == nil {
		t.Fatal("expected validation error for a service without items")
	}
}
