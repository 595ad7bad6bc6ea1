package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type programRepository struct {
	db *gorm.DB
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *gorm.DB) domainRepo.ProgramRepository {
	return &programRepository{db: db}
}

func (r *programRepository) Create(ctx context.Context, program *entity.Program) error {
	return r.db.WithContext(ctx).Create(program).Error
}

func (r *programRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Program, error) {
	var program entity.Program
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Pricing").Preload("Cost").
		First(&program, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &program, err
}

func (r *programRepository) GetByName(ctx context.Context, name string) (*entity.Program, error) {
	var program entity.Program
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Pricing").Preload("Cost").
		First(&program, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &program, err
}

func (r *programRepository) Update(ctx context.Context, program *entity.Program) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(program).Error
}

func (r *programRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Program{}, "id = ?", id).Error
}

func (r *programRepository) List(ctx context.Context, params *domainRepo.ProgramFilterParams) ([]entity.Program, int64, error) {
	var programs []entity.Program
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Program{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}

	if params.Type != nil {
		query = query.Where("type = ?", *params.Type)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := "created_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Pricing").Preload("Cost").
		Order(sortBy + " " + sortOrder).
		Find(&programs).Error

	return programs, total, err
}

func (r *programRepository) ListAllWithPricing(ctx context.Context) ([]entity.Program, error) {
	var programs []entity.Program
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Preload("Pricing").Preload("Cost").
		Order("name ASC").
		Find(&programs).Error
	return programs, err
}

func (r *programRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Program{}).
		Scopes(TenantScope(ctx)).
		Count(&total).Error
	return total, err
}

type pricingTableRepository struct {
	db *gorm.DB
}

// NewPricingTableRepository creates a new pricing table repository
func NewPricingTableRepository(db *gorm.DB) domainRepo.PricingTableRepository {
	return &pricingTableRepository{db: db}
}

func (r *pricingTableRepository) Upsert(ctx context.Context, table *entity.PricingTable) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "program_id"}},
		UpdateAll: true,
	}).Create(table).Error
}

func (r *pricingTableRepository) GetByProgramID(ctx context.Context, programID uuid.UUID) (*entity.PricingTable, error) {
	var table entity.PricingTable
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&table, "program_id = ?", programID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *pricingTableRepository) Delete(ctx context.Context, programID uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.PricingTable{}, "program_id = ?", programID).Error
}

type programCostRepository struct {
	db *gorm.DB
}

// NewProgramCostRepository creates a new flat-cost override repository
func NewProgramCostRepository(db *gorm.DB) domainRepo.ProgramCostRepository {
	return &programCostRepository{db: db}
}

func (r *programCostRepository) Upsert(ctx context.Context, cost *entity.ProgramCost) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "program_id"}},
		UpdateAll: true,
	}).Create(cost).Error
}

func (r *programCostRepository) GetByProgramID(ctx context.Context, programID uuid.UUID) (*entity.ProgramCost, error) {
	var cost entity.ProgramCost
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&cost, "program_id = ?", programID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cost, err
}

func (r *programCostRepository) Delete(ctx context.Context, programID uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.ProgramCost{}, "program_id = ?", programID).Error
}
