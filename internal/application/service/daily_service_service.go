package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/costing"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// DailyServiceService handles one-off priced services. The total is derived
// from the items and the payment ledger follows the same contract as
// bookings.
type DailyServiceService struct {
	serviceRepo repository.DailyServiceRepository
	uow         repository.UnitOfWork
}

// NewDailyServiceService creates a new daily service service
func NewDailyServiceService(serviceRepo repository.DailyServiceRepository, uow repository.UnitOfWork) *DailyServiceService {
	return &DailyServiceService{serviceRepo: serviceRepo, uow: uow}
}

// CreateDailyServiceInput represents the create daily service input
type CreateDailyServiceInput struct {
	CustomerName string
	Phone        string
	ServiceDate  time.Time
	Items        []entity.ServiceItem
}

// CreateDailyService creates a new daily service
func (s *DailyServiceService) CreateDailyService(ctx context.Context, input *CreateDailyServiceInput) (*entity.DailyService, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	svc := &entity.DailyService{
		TenantID:     tenantID,
		CustomerName: input.CustomerName,
		Phone:        input.Phone,
		ServiceDate:  input.ServiceDate,
		Items:        input.Items,
	}
	svc.RecalculateTotal()
	settleDailyService(svc)

	if err := s.serviceRepo.Create(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

// GetDailyService retrieves a daily service by ID
func (s *DailyServiceService) GetDailyService(ctx context.Context, id uuid.UUID) (*entity.DailyService, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Daily service")
	}
	return svc, nil
}

// ListDailyServices lists daily services for the current tenant
func (s *DailyServiceService) ListDailyServices(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.DailyService], error) {
	services, total, err := s.serviceRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(services, pag), nil
}

// UpdateDailyServiceInput represents the update daily service input
type UpdateDailyServiceInput struct {
	ID           uuid.UUID
	CustomerName *string
	Phone        *string
	ServiceDate  *time.Time
	Items        []entity.ServiceItem
}

// UpdateDailyService updates a daily service. Changed items re-derive the
// total and re-settle the ledger against it.
func (s *DailyServiceService) UpdateDailyService(ctx context.Context, input *UpdateDailyServiceInput) (*entity.DailyService, error) {
	svc, err := s.serviceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Daily service")
	}

	if input.CustomerName != nil {
		svc.CustomerName = *input.CustomerName
	}
	if input.Phone != nil {
		svc.Phone = *input.Phone
	}
	if input.ServiceDate != nil {
		svc.ServiceDate = *input.ServiceDate
	}
	if input.Items != nil {
		if err := validateItems(input.Items); err != nil {
			return nil, err
		}
		svc.Items = input.Items
	}

	svc.RecalculateTotal()
	settleDailyService(svc)

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}

	return svc, nil
}

// DeleteDailyService deletes a daily service
func (s *DailyServiceService) DeleteDailyService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if svc == nil {
		return apperror.NewNotFoundError("Daily service")
	}
	return s.serviceRepo.Delete(ctx, id)
}

// AddPayment appends a payment to the service's ledger.
func (s *DailyServiceService) AddPayment(ctx context.Context, serviceID uuid.UUID, input *PaymentInput) (*entity.DailyService, error) {
	payment := input.toPayment()
	if err := costing.ValidatePayment(&payment); err != nil {
		return nil, err
	}
	return s.applyPayment(ctx, serviceID, costing.LedgerOpAdd, payment)
}

// UpdatePayment replaces a payment's operator-editable fields.
func (s *DailyServiceService) UpdatePayment(ctx context.Context, serviceID, paymentID uuid.UUID, input *PaymentInput) (*entity.DailyService, error) {
	payment := input.toPayment()
	payment.ID = paymentID
	if err := costing.ValidatePayment(&payment); err != nil {
		return nil, err
	}
	return s.applyPayment(ctx, serviceID, costing.LedgerOpUpdate, payment)
}

// DeletePayment removes a payment from the service's ledger.
func (s *DailyServiceService) DeletePayment(ctx context.Context, serviceID, paymentID uuid.UUID) (*entity.DailyService, error) {
	return s.applyPayment(ctx, serviceID, costing.LedgerOpDelete, entity.Payment{ID: paymentID})
}

func (s *DailyServiceService) applyPayment(ctx context.Context, serviceID uuid.UUID, op costing.LedgerOp, payment entity.Payment) (*entity.DailyService, error) {
	var svc *entity.DailyService

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		var err error
		svc, err = r.DailyServices.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}
		if svc == nil {
			return apperror.NewNotFoundError("Daily service")
		}

		if op == costing.LedgerOpAdd {
			seq, err := r.Sequences.Next(ctx, entity.SequencePayment)
			if err != nil {
				return err
			}
			costing.NewPaymentID(&payment, entity.FormatPaymentSerial(seq))
		}

		payments, state, err := costing.ApplyPayment(svc.LedgerTotal(), svc.AdvancePayments, svc.LedgerTolerance(), op, payment)
		if err != nil {
			return err
		}

		svc.AdvancePayments = payments
		svc.TotalPaid = state.TotalPaid
		svc.RemainingBalance = state.RemainingBalance
		svc.IsFullyPaid = state.IsFullyPaid

		return r.DailyServices.Update(ctx, svc)
	})
	if err != nil {
		return nil, err
	}

	return svc, nil
}

func settleDailyService(svc *entity.DailyService) {
	state := costing.Settle(svc.LedgerTotal(), svc.AdvancePayments, svc.LedgerTolerance())
	svc.TotalPaid = state.TotalPaid
	svc.RemainingBalance = state.RemainingBalance
	svc.IsFullyPaid = state.IsFullyPaid
}

func validateItems(items []entity.ServiceItem) error {
	var fieldErrors []apperror.FieldError
	if len(items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "at least one item is required"})
	}
	for _, item := range items {
		if item.Name == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "item name is required"})
		}
		if item.Quantity <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "quantity must be positive for " + item.Name})
		}
		if item.UnitPrice < 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "items", Message: "unit price cannot be negative for " + item.Name})
		}
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
