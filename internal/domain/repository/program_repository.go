package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// ProgramRepository defines the interface for program catalog operations
type ProgramRepository interface {
	Create(ctx context.Context, program *entity.Program) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Program, error)
	GetByName(ctx context.Context, name string) (*entity.Program, error)
	Update(ctx context.Context, program *entity.Program) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProgramFilterParams) ([]entity.Program, int64, error)
	ListAllWithPricing(ctx context.Context) ([]entity.Program, error)
	Count(ctx context.Context) (int64, error)
}

// ProgramFilterParams contains filtering parameters for program queries
type ProgramFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.ProgramType
	SortBy     string
	SortOrder  string
}

// PricingTableRepository defines the interface for program pricing operations
type PricingTableRepository interface {
	Upsert(ctx context.Context, table *entity.PricingTable) error
	GetByProgramID(ctx context.Context, programID uuid.UUID) (*entity.PricingTable, error)
	Delete(ctx context.Context, programID uuid.UUID) error
}

// ProgramCostRepository defines the interface for flat-cost override operations
type ProgramCostRepository interface {
	Upsert(ctx context.Context, cost *entity.ProgramCost) error
	GetByProgramID(ctx context.Context, programID uuid.UUID) (*entity.ProgramCost, error)
	Delete(ctx context.Context, programID uuid.UUID) error
}
