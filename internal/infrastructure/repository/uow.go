package repository

import (
	"context"

	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"gorm.io/gorm"
)

type unitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transactional repository factory
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &unitOfWork{db: db}
}

// Do runs fn against repositories bound to one transaction. Any error
// returned by fn rolls everything back.
func (u *unitOfWork) Do(ctx context.Context, fn func(r domainRepo.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(domainRepo.TxRepos{
			Programs:      NewProgramRepository(tx),
			Pricing:       NewPricingTableRepository(tx),
			Costs:         NewProgramCostRepository(tx),
			Bookings:      NewBookingRepository(tx),
			DailyServices: NewDailyServiceRepository(tx),
			Expenses:      NewExpenseRepository(tx),
			Sequences:     NewSequenceRepository(tx),
		})
	})
}
