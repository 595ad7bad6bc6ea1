package repository

import "context"

// TxRepos bundles the repositories bound to one database transaction.
// Everything reached through it commits or rolls back together.
type TxRepos struct {
	Programs      ProgramRepository
	Pricing       PricingTableRepository
	Costs         ProgramCostRepository
	Bookings      BookingRepository
	DailyServices DailyServiceRepository
	Expenses      ExpenseRepository
	Sequences     SequenceRepository
}

// UnitOfWork runs a function against transaction-bound repositories.
// Any returned error rolls the whole transaction back; this is what makes
// a catalog edit plus its booking sweep all-or-nothing.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(r TxRepos) error) error
}
