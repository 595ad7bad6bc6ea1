package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// BookingRepository defines the interface for booking data operations
type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	CreateBatch(ctx context.Context, bookings []entity.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *BookingFilterParams) ([]entity.Booking, int64, error)
	ListByProgramID(ctx context.Context, programID uuid.UUID) ([]entity.Booking, error)
	PassportNumbers(ctx context.Context) (map[string]bool, error)
	Count(ctx context.Context) (int64, error)
	Totals(ctx context.Context) (*BookingTotals, error)
}

// BookingTotals are tenant-wide booking aggregates
type BookingTotals struct {
	Count       int64   `json:"count"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
	Collected   float64 `json:"collected"`
	Outstanding float64 `json:"outstanding"`
	Unpaid      int64   `json:"unpaid"`
}

// BookingFilterParams contains filtering parameters for booking queries
type BookingFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	ProgramID  *uuid.UUID
	FullyPaid  *bool
	SortBy     string
	SortOrder  string
}
