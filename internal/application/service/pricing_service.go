package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
)

// PricingService manages a program's pricing table. Every rate change is
// followed by a booking sweep inside the same transaction.
type PricingService struct {
	pricingRepo repository.PricingTableRepository
	uow         repository.UnitOfWork
	reconciler  *ReconcileService
}

// NewPricingService creates a new pricing service
func NewPricingService(
	pricingRepo repository.PricingTableRepository,
	uow repository.UnitOfWork,
	reconciler *ReconcileService,
) *PricingService {
	return &PricingService{
		pricingRepo: pricingRepo,
		uow:         uow,
		reconciler:  reconciler,
	}
}

// UpsertPricingInput represents the create-or-replace pricing input
type UpsertPricingInput struct {
	ProgramID     uuid.UUID
	TicketAirline float64
	VisaFees      float64
	GuideFees     float64
	Hotels        []entity.HotelRate
}

// UpsertPricing creates or replaces the program's pricing table and
// re-derives every dependent booking.
func (s *PricingService) UpsertPricing(ctx context.Context, input *UpsertPricingInput) (*entity.PricingTable, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if err := validateRates(input.Hotels); err != nil {
		return nil, err
	}

	var table *entity.PricingTable

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		program, err := r.Programs.GetByID(ctx, input.ProgramID)
		if err != nil {
			return err
		}
		if program == nil {
			return apperror.NewNotFoundError("Program")
		}

		table = &entity.PricingTable{
			TenantID:      tenantID,
			ProgramID:     input.ProgramID,
			TicketAirline: input.TicketAirline,
			VisaFees:      input.VisaFees,
			GuideFees:     input.GuideFees,
			Hotels:        input.Hotels,
		}
		if program.Pricing != nil {
			table.ID = program.Pricing.ID
			table.CreatedAt = program.Pricing.CreatedAt
		}

		if err := r.Pricing.Upsert(ctx, table); err != nil {
			return err
		}

		_, err = s.reconciler.Run(ctx, r, input.ProgramID, ReasonPricingChanged)
		return err
	})
	if err != nil {
		return nil, err
	}

	return table, nil
}

// GetPricing retrieves a program's pricing table
func (s *PricingService) GetPricing(ctx context.Context, programID uuid.UUID) (*entity.PricingTable, error) {
	table, err := s.pricingRepo.GetByProgramID(ctx, programID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Pricing table")
	}
	return table, nil
}

func validateRates(hotels []entity.HotelRate) error {
	var fieldErrors []apperror.FieldError
	for _, h := range hotels {
		if h.Name == "" || h.City == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hotels", Message: "hotel name and city are required"})
			continue
		}
		if h.Nights < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hotels", Message: "nights cannot be negative for " + h.Name})
		}
		for roomType, price := range h.PricePerNight {
			if !roomType.IsValid() {
				fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hotels", Message: "unknown room type for " + h.Name})
			}
			if price < 0 {
				fieldErrors = append(fieldErrors, apperror.FieldError{Field: "hotels", Message: "negative rate for " + h.Name})
			}
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
