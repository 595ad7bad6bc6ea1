package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/rihlahq/rihla-api/internal/domain/costing"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/workbook"
)

// TransferService round-trips bookings through the spreadsheet template:
// export builds a workbook whose dropdowns are constrained to the tenant's
// current catalog, import runs filled rows through the same cost
// computation as the interactive path.
type TransferService struct {
	programRepo repository.ProgramRepository
	bookingRepo repository.BookingRepository
	uow         repository.UnitOfWork
	tierService *TierService
}

// NewTransferService creates a new transfer service
func NewTransferService(
	programRepo repository.ProgramRepository,
	bookingRepo repository.BookingRepository,
	uow repository.UnitOfWork,
	tierService *TierService,
) *TransferService {
	return &TransferService{
		programRepo: programRepo,
		bookingRepo: bookingRepo,
		uow:         uow,
		tierService: tierService,
	}
}

// SkippedRow explains why one row of an import was not turned into a
// booking.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportSummary is the result of a bulk import.
type ImportSummary struct {
	Imported int          `json:"imported"`
	Skipped  []SkippedRow `json:"skipped"`
}

// ExportTemplate builds the booking template workbook from the tenant's
// current catalog. Reads are not isolated from concurrent catalog edits; a
// slightly stale template is acceptable for a download.
func (s *TransferService) ExportTemplate(ctx context.Context) (*excelize.File, error) {
	programs, err := s.programRepo.ListAllWithPricing(ctx)
	if err != nil {
		return nil, err
	}
	return workbook.BuildTemplate(programs)
}

// Import parses a filled template and creates bookings from the rows that
// survive validation. Rows are skipped, never failed, on a blank or
// duplicate passport (against existing bookings and earlier rows of the
// same file), an unresolvable program, package or priced hotel combination,
// or an unparseable selling price; each skip is reported with its row
// number. All surviving rows are inserted in one transaction.
func (s *TransferService) Import(ctx context.Context, f *excelize.File) (*ImportSummary, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	rows, err := workbook.ParseRows(f)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	programs, err := s.programRepo.ListAllWithPricing(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*entity.Program, len(programs))
	for i := range programs {
		byName[programs[i].Name] = &programs[i]
	}

	seen, err := s.bookingRepo.PassportNumbers(ctx)
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{Skipped: []SkippedRow{}}
	var bookings []entity.Booking

	for _, row := range rows {
		booking, reason := s.resolveRow(tenantID, byName, seen, row)
		if reason != "" {
			summary.Skipped = append(summary.Skipped, SkippedRow{Row: row.Line, Reason: reason})
			continue
		}
		seen[booking.PassportNumber] = true
		bookings = append(bookings, *booking)
	}

	if len(bookings) > 0 {
		if err := s.tierService.AllowBookings(ctx, len(bookings)); err != nil {
			return nil, err
		}
		err = s.uow.Do(ctx, func(r repository.TxRepos) error {
			return r.Bookings.CreateBatch(ctx, bookings)
		})
		if err != nil {
			return nil, err
		}
	}

	summary.Imported = len(bookings)
	return summary, nil
}

// resolveRow turns one sheet row into a booking, or returns the skip
// reason. Cost flows through the same computation as interactive creation.
func (s *TransferService) resolveRow(tenantID uuid.UUID, programs map[string]*entity.Program, seen map[string]bool, row workbook.Row) (*entity.Booking, string) {
	if row.PassportNumber == "" {
		return nil, "missing passport number"
	}
	if seen[row.PassportNumber] {
		return nil, "duplicate passport number"
	}

	program, ok := programs[row.Program]
	if !ok {
		return nil, "unknown program"
	}
	pkg := program.Package(row.Package)
	if pkg == nil {
		return nil, "unknown package"
	}

	selection := make([]entity.CityChoice, 0, len(workbook.TemplateCities))
	roomType := enum.RoomType(strings.ToLower(row.RoomType))
	for _, city := range workbook.TemplateCities {
		hotel := row.Hotels[city]
		if hotel == "" {
			continue
		}
		selection = append(selection, entity.CityChoice{
			City:     city,
			Hotel:    hotel,
			RoomType: roomType,
		})
	}
	if len(selection) == 0 {
		return nil, "no hotel selected"
	}
	if !roomType.IsValid() {
		return nil, "unknown room type"
	}

	hotels := make([]string, len(selection))
	for i, c := range selection {
		hotels[i] = c.Hotel
	}
	if pkg.PriceRowFor(entity.CombinationKey(hotels)) == nil {
		return nil, "unpriced hotel combination"
	}

	sellingPrice, err := strconv.ParseFloat(strings.ReplaceAll(row.SellingPrice, ",", ""), 64)
	if err != nil || sellingPrice < 0 {
		return nil, "invalid selling price"
	}

	booking := &entity.Booking{
		TenantID:       tenantID,
		ProgramID:      program.ID,
		CustomerName:   row.CustomerName,
		PassportNumber: row.PassportNumber,
		Phone:          row.Phone,
		PackageName:    pkg.Name,
		Selection:      selection,
		SellingPrice:   sellingPrice,
	}
	booking.BasePrice = costing.ComputeBaseCost(program, program.Pricing, booking.PackageName, booking.Selection, program.Cost)
	booking.Profit = booking.SellingPrice - booking.BasePrice
	settleBooking(booking)

	return booking, ""
}
