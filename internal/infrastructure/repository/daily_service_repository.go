package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/pkg/pagination"
	"gorm.io/gorm"
)

type dailyServiceRepository struct {
	db *gorm.DB
}

// NewDailyServiceRepository creates a new daily service repository
func NewDailyServiceRepository(db *gorm.DB) domainRepo.DailyServiceRepository {
	return &dailyServiceRepository{db: db}
}

func (r *dailyServiceRepository) Create(ctx context.Context, service *entity.DailyService) error {
	return r.db.WithContext(ctx).Create(service).Error
}

func (r *dailyServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DailyService, error) {
	var service entity.DailyService
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&service, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &service, err
}

func (r *dailyServiceRepository) Update(ctx context.Context, service *entity.DailyService) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(service).Error
}

func (r *dailyServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.DailyService{}, "id = ?", id).Error
}

func (r *dailyServiceRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.DailyService, int64, error) {
	var services []entity.DailyService
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.DailyService{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("customer_name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&services).Error

	return services, total, err
}

func (r *dailyServiceRepository) Totals(ctx context.Context) (*domainRepo.LedgerTotals, error) {
	var totals domainRepo.LedgerTotals
	err := r.db.WithContext(ctx).Model(&entity.DailyService{}).
		Scopes(TenantScope(ctx)).
		Select(ledgerTotalsSelect("total_price")).
		Scan(&totals).Error
	return &totals, err
}

// ledgerTotalsSelect builds the aggregate projection for a ledgered table
// whose owed amount lives in amountColumn.
func ledgerTotalsSelect(amountColumn string) string {
	return `COUNT(*) AS count,
		COALESCE(SUM(` + amountColumn + `), 0) AS total,
		COALESCE(SUM(total_paid), 0) AS collected,
		COALESCE(SUM(remaining_balance), 0) AS outstanding,
		COALESCE(SUM(CASE WHEN is_fully_paid THEN 0 ELSE 1 END), 0) AS unpaid`
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository creates a new expense repository
func NewExpenseRepository(db *gorm.DB) domainRepo.ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Expense, error) {
	var expense entity.Expense
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&expense, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &expense, err
}

func (r *expenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(expense).Error
}

func (r *expenseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Expense{}, "id = ?", id).Error
}

func (r *expenseRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Expense, int64, error) {
	var expenses []entity.Expense
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Expense{}).Scopes(TenantScope(ctx))

	if search != "" {
		query = query.Where("title ILIKE ? OR category ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_at DESC").
		Find(&expenses).Error

	return expenses, total, err
}

func (r *expenseRepository) Totals(ctx context.Context) (*domainRepo.LedgerTotals, error) {
	var totals domainRepo.LedgerTotals
	err := r.db.WithContext(ctx).Model(&entity.Expense{}).
		Scopes(TenantScope(ctx)).
		Select(ledgerTotalsSelect("amount")).
		Scan(&totals).Error
	return &totals, err
}
