package service

import (
	"context"

	"github.com/rihlahq/rihla-api/internal/domain/repository"
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	programRepo      repository.ProgramRepository
	bookingRepo      repository.BookingRepository
	dailyServiceRepo repository.DailyServiceRepository
	expenseRepo      repository.ExpenseRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	programRepo repository.ProgramRepository,
	bookingRepo repository.BookingRepository,
	dailyServiceRepo repository.DailyServiceRepository,
	expenseRepo repository.ExpenseRepository,
) *DashboardService {
	return &DashboardService{
		programRepo:      programRepo,
		bookingRepo:      bookingRepo,
		dailyServiceRepo: dailyServiceRepo,
		expenseRepo:      expenseRepo,
	}
}

// DashboardStats represents the tenant's financial overview. All figures
// come from SQL aggregates, not from paging rows through the application.
type DashboardStats struct {
	TotalPrograms int64 `json:"total_programs"`

	Bookings repository.BookingTotals `json:"bookings"`
	Services repository.LedgerTotals  `json:"services"`
	Expenses repository.LedgerTotals  `json:"expenses"`

	// NetCollected is cash in minus cash out: payments received on
	// bookings and services, less payments made on expenses.
	NetCollected float64 `json:"net_collected"`
}

// GetDashboardStats returns dashboard statistics for the current tenant
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	programCount, err := s.programRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalPrograms = programCount

	bookingTotals, err := s.bookingRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	stats.Bookings = *bookingTotals

	serviceTotals, err := s.dailyServiceRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	stats.Services = *serviceTotals

	expenseTotals, err := s.expenseRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	stats.Expenses = *expenseTotals

	stats.NetCollected = bookingTotals.Collected + serviceTotals.Collected - expenseTotals.Collected

	return stats, nil
}
