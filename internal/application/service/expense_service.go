package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/costing"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// ExpenseService handles agency outgoings settled through the payment
// ledger.
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	uow         repository.UnitOfWork
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository, uow repository.UnitOfWork) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, uow: uow}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Title    string
	Category string
	Amount   float64
	Notes    string
}

// CreateExpense creates a new expense
func (s *ExpenseService) CreateExpense(ctx context.Context, input *CreateExpenseInput) (*entity.Expense, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if input.Amount <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "must be greater than zero"},
		})
	}

	expense := &entity.Expense{
		TenantID: tenantID,
		Title:    input.Title,
		Category: input.Category,
		Amount:   input.Amount,
		Notes:    input.Notes,
	}
	settleExpense(expense)

	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// GetExpense retrieves an expense by ID
func (s *ExpenseService) GetExpense(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}
	return expense, nil
}

// ListExpenses lists expenses for the current tenant
func (s *ExpenseService) ListExpenses(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Expense], error) {
	expenses, total, err := s.expenseRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(expenses, pag), nil
}

// UpdateExpenseInput represents the update expense input
type UpdateExpenseInput struct {
	ID       uuid.UUID
	Title    *string
	Category *string
	Amount   *float64
	Notes    *string
}

// UpdateExpense updates an expense. A changed amount re-settles the ledger
// against it.
func (s *ExpenseService) UpdateExpense(ctx context.Context, input *UpdateExpenseInput) (*entity.Expense, error) {
	expense, err := s.expenseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, apperror.NewNotFoundError("Expense")
	}

	if input.Title != nil {
		expense.Title = *input.Title
	}
	if input.Category != nil {
		expense.Category = *input.Category
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, apperror.NewValidationError([]apperror.FieldError{
				{Field: "amount", Message: "must be greater than zero"},
			})
		}
		expense.Amount = *input.Amount
	}
	if input.Notes != nil {
		expense.Notes = *input.Notes
	}

	settleExpense(expense)

	if err := s.expenseRepo.Update(ctx, expense); err != nil {
		return nil, err
	}

	return expense, nil
}

// DeleteExpense deletes an expense
func (s *ExpenseService) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.expenseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return apperror.NewNotFoundError("Expense")
	}
	return s.expenseRepo.Delete(ctx, id)
}

// AddPayment appends a payment to the expense's ledger.
func (s *ExpenseService) AddPayment(ctx context.Context, expenseID uuid.UUID, input *PaymentInput) (*entity.Expense, error) {
	payment := input.toPayment()
	if err := costing.ValidatePayment(&payment); err != nil {
		return nil, err
	}
	return s.applyPayment(ctx, expenseID, costing.LedgerOpAdd, payment)
}

// UpdatePayment replaces a payment's operator-editable fields.
func (s *ExpenseService) UpdatePayment(ctx context.Context, expenseID, paymentID uuid.UUID, input *PaymentInput) (*entity.Expense, error) {
	payment := input.toPayment()
	payment.ID = paymentID
	if err := costing.ValidatePayment(&payment); err != nil {
		return nil, err
	}
	return s.applyPayment(ctx, expenseID, costing.LedgerOpUpdate, payment)
}

// DeletePayment removes a payment from the expense's ledger.
func (s *ExpenseService) DeletePayment(ctx context.Context, expenseID, paymentID uuid.UUID) (*entity.Expense, error) {
	return s.applyPayment(ctx, expenseID, costing.LedgerOpDelete, entity.Payment{ID: paymentID})
}

func (s *ExpenseService) applyPayment(ctx context.Context, expenseID uuid.UUID, op costing.LedgerOp, payment entity.Payment) (*entity.Expense, error) {
	var expense *entity.Expense

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		var err error
		expense, err = r.Expenses.GetByID(ctx, expenseID)
		if err != nil {
			return err
		}
		if expense == nil {
			return apperror.NewNotFoundError("Expense")
		}

		if op == costing.LedgerOpAdd {
			seq, err := r.Sequences.Next(ctx, entity.SequencePayment)
			if err != nil {
				return err
			}
			costing.NewPaymentID(&payment, entity.FormatPaymentSerial(seq))
		}

		payments, state, err := costing.ApplyPayment(expense.LedgerTotal(), expense.AdvancePayments, expense.LedgerTolerance(), op, payment)
		if err != nil {
			return err
		}

		expense.AdvancePayments = payments
		expense.TotalPaid = state.TotalPaid
		expense.RemainingBalance = state.RemainingBalance
		expense.IsFullyPaid = state.IsFullyPaid

		return r.Expenses.Update(ctx, expense)
	})
	if err != nil {
		return nil, err
	}

	return expense, nil
}

func settleExpense(e *entity.Expense) {
	state := costing.Settle(e.LedgerTotal(), e.AdvancePayments, e.LedgerTolerance())
	e.TotalPaid = state.TotalPaid
	e.RemainingBalance = state.RemainingBalance
	e.IsFullyPaid = state.IsFullyPaid
}
