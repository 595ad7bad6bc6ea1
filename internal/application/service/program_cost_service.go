package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
)

// ProgramCostService manages a program's flat-cost override: the negotiated
// lump total that replaces detailed cost computation while enabled. Edits
// and toggles sweep dependent bookings in the same transaction.
type ProgramCostService struct {
	costRepo   repository.ProgramCostRepository
	uow        repository.UnitOfWork
	reconciler *ReconcileService
}

// NewProgramCostService creates a new program cost service
func NewProgramCostService(
	costRepo repository.ProgramCostRepository,
	uow repository.UnitOfWork,
	reconciler *ReconcileService,
) *ProgramCostService {
	return &ProgramCostService{
		costRepo:   costRepo,
		uow:        uow,
		reconciler: reconciler,
	}
}

// UpsertCostInput represents the create-or-replace override input.
// TotalCost is always derived from the breakdown, never accepted directly.
type UpsertCostInput struct {
	ProgramID     uuid.UUID
	FlightTickets float64
	Visa          float64
	Transport     float64
	Hotels        []entity.CostItem
	Custom        []entity.CostItem
}

// UpsertCost creates or replaces the override breakdown. When the override
// is currently enabled the new total is immediately stamped onto every
// dependent booking; while disabled the breakdown is stored without a sweep.
func (s *ProgramCostService) UpsertCost(ctx context.Context, input *UpsertCostInput) (*entity.ProgramCost, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	var cost *entity.ProgramCost

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		program, err := r.Programs.GetByID(ctx, input.ProgramID)
		if err != nil {
			return err
		}
		if program == nil {
			return apperror.NewNotFoundError("Program")
		}

		cost = &entity.ProgramCost{
			TenantID:      tenantID,
			ProgramID:     input.ProgramID,
			FlightTickets: input.FlightTickets,
			Visa:          input.Visa,
			Transport:     input.Transport,
			Hotels:        input.Hotels,
			Custom:        input.Custom,
		}
		if program.Cost != nil {
			cost.ID = program.Cost.ID
			cost.CreatedAt = program.Cost.CreatedAt
			cost.IsEnabled = program.Cost.IsEnabled
		}
		cost.Recalculate()

		if err := r.Costs.Upsert(ctx, cost); err != nil {
			return err
		}

		if !cost.IsEnabled {
			return nil
		}
		_, err = s.reconciler.Run(ctx, r, input.ProgramID, ReasonFlatCostEnabled)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cost, nil
}

// GetCost retrieves a program's flat-cost override
func (s *ProgramCostService) GetCost(ctx context.Context, programID uuid.UUID) (*entity.ProgramCost, error) {
	cost, err := s.costRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if cost == nil {
		return nil, apperror.NewNotFoundError("Program cost")
	}
	return cost, nil
}

// ToggleCost flips the override on or off and sweeps every dependent
// booking: enabling stamps the negotiated total on each booking, disabling
// reverts them to the detailed computation from current catalog and rates.
func (s *ProgramCostService) ToggleCost(ctx context.Context, programID uuid.UUID, enabled bool) (*entity.ProgramCost, error) {
	var cost *entity.ProgramCost

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		var err error
		cost, err = r.Costs.GetByProgramID(ctx, programID)
		if err != nil {
			return err
		}
		if cost == nil {
			return apperror.NewNotFoundError("Program cost")
		}

		if cost.IsEnabled == enabled {
			return nil
		}
		cost.IsEnabled = enabled

		if err := r.Costs.Upsert(ctx, cost); err != nil {
			return err
		}

		reason := ReasonFlatCostDisabled
		if enabled {
			reason = ReasonFlatCostEnabled
		}
		_, err = s.reconciler.Run(ctx, r, programID, reason)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cost, nil
}
