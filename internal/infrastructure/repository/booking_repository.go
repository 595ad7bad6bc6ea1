package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"gorm.io/gorm"
)

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db *gorm.DB) domainRepo.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *bookingRepository) CreateBatch(ctx context.Context, bookings []entity.Booking) error {
	if len(bookings) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&bookings).Error
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		First(&booking, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &booking, err
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).Save(booking).Error
}

func (r *bookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Delete(&entity.Booking{}, "id = ?", id).Error
}

func (r *bookingRepository) List(ctx context.Context, params *domainRepo.BookingFilterParams) ([]entity.Booking, int64, error) {
	var bookings []entity.Booking
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Booking{}).Scopes(TenantScope(ctx))

	if params.Search != "" {
		query = query.Where("customer_name ILIKE ? OR passport_number ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ProgramID != nil {
		query = query.Where("program_id = ?", *params.ProgramID)
	}

	if params.FullyPaid != nil {
		query = query.Where("is_fully_paid = ?", *params.FullyPaid)
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
		Order(sortBy + " " + sortOrder).
		Find(&bookings).Error

	return bookings, total, err
}

func (r *bookingRepository) ListByProgramID(ctx context.Context, programID uuid.UUID) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.db.WithContext(ctx).Scopes(TenantScope(ctx)).
		Where("program_id = ?", programID).
		Order("created_at ASC").
		Find(&bookings).Error
	return bookings, err
}

func (r *bookingRepository) PassportNumbers(ctx context.Context) (map[string]bool, error) {
	var numbers []string
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Scopes(TenantScope(ctx)).
		Where("passport_number <> ''").
		Pluck("passport_number", &numbers).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		out[n] = true
	}
	return out, nil
}

func (r *bookingRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Scopes(TenantScope(ctx)).
		Count(&total).Error
	return total, err
}

func (r *bookingRepository) Totals(ctx context.Context) (*domainRepo.BookingTotals, error) {
	var totals domainRepo.BookingTotals
	err := r.db.WithContext(ctx).Model(&entity.Booking{}).
		Scopes(TenantScope(ctx)).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(selling_price), 0) AS revenue,
			COALESCE(SUM(profit), 0) AS profit,
			COALESCE(SUM(total_paid), 0) AS collected,
			COALESCE(SUM(remaining_balance), 0) AS outstanding,
			COALESCE(SUM(CASE WHEN is_fully_paid THEN 0 ELSE 1 END), 0) AS unpaid`).
		Scan(&totals).Error
	return &totals, err
}
