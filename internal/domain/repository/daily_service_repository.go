package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// DailyServiceRepository defines the interface for daily service operations
type DailyServiceRepository interface {
	Create(ctx context.Context, service *entity.DailyService) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyService, error)
	Update(ctx context.Context, service *entity.DailyService) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.DailyService, int64, error)
	Totals(ctx context.Context) (*LedgerTotals, error)
}

// LedgerTotals are tenant-wide aggregates over one ledgered collection
type LedgerTotals struct {
	Count       int64   `json:"count"`
	Total       float64 `json:"total"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
	Unpaid      int64   `json:"unpaid"`
}

// ExpenseRepository defines the interface for expense operations
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Expense, int64, error)
	Totals(ctx context.Context) (*LedgerTotals, error)
}
