package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/costing"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// PaymentInput represents the payment fields accepted from operators.
// Identity fields (ID, Serial) are never accepted; they are assigned when
// the payment enters a ledger.
type PaymentInput struct {
	Amount        float64
	Currency      string
	Method        enum.PaymentMethod
	PaidAt        time.Time
	ChequeNumber  string
	BankName      string
	ChequeDueDate *time.Time
	Note          string
}

func (in *PaymentInput) toPayment() entity.Payment {
	currency := in.Currency
	if currency == "" {
		currency = "SAR"
	}
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}
	return entity.Payment{
		Amount:        in.Amount,
		Currency:      currency,
		Method:        in.Method,
		PaidAt:        paidAt,
		ChequeNumber:  in.ChequeNumber,
		BankName:      in.BankName,
		ChequeDueDate: in.ChequeDueDate,
		Note:          in.Note,
	}
}

// BookingService handles booking operations: CRUD plus the payment ledger
// sub-resource. Base price and profit are always derived from the program's
// current catalog and pricing; they are never accepted from input.
type BookingService struct {
	bookingRepo repository.BookingRepository
	programRepo repository.ProgramRepository
	uow         repository.UnitOfWork
	tierService *TierService
}

// NewBookingService creates a new booking service
func NewBookingService(
	bookingRepo repository.BookingRepository,
	programRepo repository.ProgramRepository,
	uow repository.UnitOfWork,
	tierService *TierService,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		programRepo: programRepo,
		uow:         uow,
		tierService: tierService,
	}
}

// CreateBookingInput represents the create booking input
type CreateBookingInput struct {
	ProgramID      uuid.UUID
	CustomerName   string
	PassportNumber string
	Phone          string
	PackageName    string
	Selection      []entity.CityChoice
	SellingPrice   float64
}

// CreateBooking creates a new booking priced against the program's current
// catalog and rates.
func (s *BookingService) CreateBooking(ctx context.Context, input *CreateBookingInput) (*entity.Booking, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if err := s.tierService.AllowBookings(ctx, 1); err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, input.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, apperror.NewNotFoundError("Program")
	}

	if err := validateSelection(program, input.PackageName, input.Selection); err != nil {
		return nil, err
	}

	booking := &entity.Booking{
		TenantID:       tenantID,
		ProgramID:      program.ID,
		CustomerName:   input.CustomerName,
		PassportNumber: input.PassportNumber,
		Phone:          input.Phone,
		PackageName:    input.PackageName,
		Selection:      input.Selection,
		SellingPrice:   input.SellingPrice,
	}

	booking.BasePrice = costing.ComputeBaseCost(program, program.Pricing, booking.PackageName, booking.Selection, program.Cost)
	booking.Profit = booking.SellingPrice - booking.BasePrice
	settleBooking(booking)

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, apperror.NewNotFoundError("Booking")
	}
	return booking, nil
}

// ListBookings lists bookings for the current tenant
func (s *BookingService) ListBookings(ctx context.Context, params *repository.BookingFilterParams) (*pagination.PaginatedResult[entity.Booking], error) {
	bookings, total, err := s.bookingRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(bookings, pag), nil
}

// UpdateBookingInput represents the update booking input
type UpdateBookingInput struct {
	ID             uuid.UUID
	CustomerName   *string
	PassportNumber *string
	Phone          *string
	PackageName    *string
	Selection      []entity.CityChoice
	SellingPrice   *float64
}

// UpdateBooking updates a booking. A changed package, selection or selling
// price re-derives base price, profit and the ledger fields; payments stay
// untouched.
func (s *BookingService) UpdateBooking(ctx context.Context, input *UpdateBookingInput) (*entity.Booking, error) {
	var booking *entity.Booking

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		var err error
		booking, err = r.Bookings.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NewNotFoundError("Booking")
		}

		if input.CustomerName != nil {
			booking.CustomerName = *input.CustomerName
		}
		if input.PassportNumber != nil {
			booking.PassportNumber = *input.PassportNumber
		}
		if input.Phone != nil {
			booking.Phone = *input.Phone
		}
		if input.PackageName != nil {
			booking.PackageName = *input.PackageName
		}
		if input.Selection != nil {
			booking.Selection = input.Selection
		}
		if input.SellingPrice != nil {
			booking.SellingPrice = *input.SellingPrice
		}

		program, err := r.Programs.GetByID(ctx, booking.ProgramID)
		if err != nil {
			return err
		}
		if program == nil {
			return apperror.NewNotFoundError("Program")
		}

		if err := validateSelection(program, booking.PackageName, booking.Selection); err != nil {
			return err
		}

		booking.BasePrice = costing.ComputeBaseCost(program, program.Pricing, booking.PackageName, booking.Selection, program.Cost)
		booking.Profit = booking.SellingPrice - booking.BasePrice
		settleBooking(booking)

		return r.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// DeleteBooking deletes a booking
func (s *BookingService) DeleteBooking(ctx context.Context, id uuid.UUID) error {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if booking == nil {
		return apperror.NewNotFoundError("Booking")
	}
	return s.bookingRepo.Delete(ctx, id)
}

// AddPayment appends a payment to the booking's ledger. The payment gets a
// fresh ID and the tenant's next serial inside the same transaction that
// persists the updated ledger.
func (s *BookingService) AddPayment(ctx context.Context, bookingID uuid.UUID, input *PaymentInput) (*entity.Booking, error) {
	payment := input.toPayment()
	if err := costing.ValidatePayment(&payment); err != nil {
		return nil, err
	}
	return s.applyPayment(ctx, bookingID, costing.LedgerOpAdd, payment)
}

// UpdatePayment replaces a payment's operator-editable fields. ID and
// serial are preserved.
func (s *BookingService) UpdatePayment(ctx context.Context, bookingID, paymentID uuid.UUID, input *PaymentInput) (*entity.Booking, error) {
	payment := input.toPayment()
	payment.ID = paymentID
	if err := costing.ValidatePayment(&payment); err != nil {
		return nil, err
	}
	return s.applyPayment(ctx, bookingID, costing.LedgerOpUpdate, payment)
}

// DeletePayment removes a payment from the booking's ledger.
func (s *BookingService) DeletePayment(ctx context.Context, bookingID, paymentID uuid.UUID) (*entity.Booking, error) {
	return s.applyPayment(ctx, bookingID, costing.LedgerOpDelete, entity.Payment{ID: paymentID})
}

func (s *BookingService) applyPayment(ctx context.Context, bookingID uuid.UUID, op costing.LedgerOp, payment entity.Payment) (*entity.Booking, error) {
	var booking *entity.Booking

	err := s.uow.Do(ctx, func(r repository.TxRepos) error {
		var err error
		booking, err = r.Bookings.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if booking == nil {
			return apperror.NewNotFoundError("Booking")
		}

		if op == costing.LedgerOpAdd {
			seq, err := r.Sequences.Next(ctx, entity.SequencePayment)
			if err != nil {
				return err
			}
			costing.NewPaymentID(&payment, entity.FormatPaymentSerial(seq))
		}

		payments, state, err := costing.ApplyPayment(booking.LedgerTotal(), booking.AdvancePayments, booking.LedgerTolerance(), op, payment)
		if err != nil {
			return err
		}

		booking.AdvancePayments = payments
		booking.TotalPaid = state.TotalPaid
		booking.RemainingBalance = state.RemainingBalance
		booking.IsFullyPaid = state.IsFullyPaid

		return r.Bookings.Update(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func settleBooking(b *entity.Booking) {
	state := costing.Settle(b.LedgerTotal(), b.AdvancePayments, b.LedgerTolerance())
	b.TotalPaid = state.TotalPaid
	b.RemainingBalance = state.RemainingBalance
	b.IsFullyPaid = state.IsFullyPaid
}

// validateSelection checks a booking's choices against the program catalog:
// the package must exist, every chosen city must be offered by the package,
// and the chosen hotel must be among that city's options.
func validateSelection(program *entity.Program, packageName string, selection []entity.CityChoice) error {
	var fieldErrors []apperror.FieldError

	pkg := program.Package(packageName)
	if pkg == nil {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "package_name", Message: "unknown package " + packageName},
		})
	}

	for _, choice := range selection {
		hotels, ok := pkg.Hotels[choice.City]
		if !ok {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "selection", Message: "package does not cover city " + choice.City})
			continue
		}
		found := false
		for _, h := range hotels {
			if h == choice.Hotel {
				found = true
				break
			}
		}
		if !found {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "selection", Message: choice.Hotel + " is not offered in " + choice.City})
		}
		if !choice.RoomType.IsValid() {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "selection", Message: "unknown room type for " + choice.City})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
