package service

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/costing"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
)

// ReconcileReason records which kind of edit triggered a sweep.
type ReconcileReason string

const (
	ReasonCatalogChanged   ReconcileReason = "catalog_changed"
	ReasonPricingChanged   ReconcileReason = "pricing_changed"
	ReasonFlatCostEnabled  ReconcileReason = "flat_cost_enabled"
	ReasonFlatCostDisabled ReconcileReason = "flat_cost_disabled"
)

// ReconcileService re-derives the dependent fields of every booking under
// a program after its catalog, pricing table or flat-cost override changes.
// It is the single entry point for all three triggers; callers run it
// inside the same transaction as the edit itself, so the edit and its
// sweep commit or roll back together.
type ReconcileService struct{}

// NewReconcileService creates a new reconcile service
func NewReconcileService() *ReconcileService {
	return &ReconcileService{}
}

// Run recomputes base price, profit and ledger fields for every booking
// under programID, using the program state already persisted inside the
// transaction. It returns the number of bookings updated.
//
// The recompute itself is identical for all reasons: ComputeBaseCost reads
// the override's enabled flag, so an enable sweep stamps the negotiated
// total on each booking individually and a disable sweep falls back to the
// detailed computation. Payments are never touched; the ledger is settled
// against the unchanged selling price.
func (s *ReconcileService) Run(ctx context.Context, r repository.TxRepos, programID uuid.UUID, reason ReconcileReason) (int, error) {
	program, err := r.Programs.GetByID(ctx, programID)
	if err != nil {
		return 0, err
	}
	if program == nil {
		return 0, apperror.NewNotFoundError("Program")
	}

	bookings, err := r.Bookings.ListByProgramID(ctx, programID)
	if err != nil {
		return 0, err
	}

	for i := range bookings {
		b := &bookings[i]

		b.BasePrice = costing.ComputeBaseCost(program, program.Pricing, b.PackageName, b.Selection, program.Cost)
		b.Profit = b.SellingPrice - b.BasePrice

		state := costing.Settle(b.LedgerTotal(), b.AdvancePayments, b.LedgerTolerance())
		b.TotalPaid = state.TotalPaid
		b.RemainingBalance = state.RemainingBalance
		b.IsFullyPaid = state.IsFullyPaid

		if err := r.Bookings.Update(ctx, b); err != nil {
			log.Printf("reconcile %s: failed updating booking %s: %v", reason, b.ID, err)
			return 0, err
		}
	}

	log.Printf("reconcile %s: program %s, %d bookings updated", reason, programID, len(bookings))
	return len(bookings), nil
}
