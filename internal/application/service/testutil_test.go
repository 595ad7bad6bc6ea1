package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/enum"
	"github.com/rihlahq/rihla-api/internal/infrastructure/database"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
)

// testEnv bundles a migrated in-memory database with the service graph and
// a context carrying a seeded tenant.
type testEnv struct {
	db  *gorm.DB
	ctx context.Context

	tenantID uuid.UUID

	programs      *ProgramService
	pricing       *PricingService
	costs         *ProgramCostService
	bookings      *BookingService
	dailyServices *DailyServiceService
	expenses      *ExpenseService
	transfer      *TransferService
	dashboard     *DashboardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tenant := &entity.Tenant{
		Name:    "Al Madina Travel",
		Slug:    "almadina",
		OwnerID: uuid.New(),
	}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	tenantRepo := infraRepo.NewTenantRepository(db)
	tierRepo := infraRepo.NewTierRepository(db)
	programRepo := infraRepo.NewProgramRepository(db)
	pricingRepo := infraRepo.NewPricingTableRepository(db)
	costRepo := infraRepo.NewProgramCostRepository(db)
	bookingRepo := infraRepo.NewBookingRepository(db)
	dailyServiceRepo := infraRepo.NewDailyServiceRepository(db)
	expenseRepo := infraRepo.NewExpenseRepository(db)
	uow := infraRepo.NewUnitOfWork(db)

	tierService := NewTierService(tenantRepo, tierRepo, programRepo, bookingRepo)
	reconciler := NewReconcileService()

	return &testEnv{
		db:            db,
		ctx:           infraRepo.WithTenant(context.Background(), tenant.ID),
		tenantID:      tenant.ID,
		programs:      NewProgramService(programRepo, uow, reconciler, tierService),
		pricing:       NewPricingService(pricingRepo, uow, reconciler),
		costs:         NewProgramCostService(costRepo, uow, reconciler),
		bookings:      NewBookingService(bookingRepo, programRepo, uow, tierService),
		dailyServices: NewDailyServiceService(dailyServiceRepo, uow),
		expenses:      NewExpenseService(expenseRepo, uow),
		transfer:      NewTransferService(programRepo, bookingRepo, uow, tierService),
		dashboard:     NewDashboardService(programRepo, bookingRepo, dailyServiceRepo, expenseRepo),
	}
}

// seedProgram creates a two-city program with one package and its pricing
// table. With the standard selection the base cost works out to 2100:
// flat fees 800 + Makkah 400*5/2 + Madinah 150*4/2.
func (env *testEnv) seedProgram(t *testing.T) *entity.Program {
	t.Helper()

	program, err := env.programs.CreateProgram(env.ctx, &CreateProgramInput{
		Name:         "Umrah Express",
		Type:         enum.ProgramTypeUmrah,
		DurationDays: 10,
		Cities: []entity.ProgramCity{
			{Name: "Makkah", Nights: 5},
			{Name: "Madinah", Nights: 4},
		},
		Packages: []entity.ProgramPackage{
			{
				Name: "Gold",
				Hotels: map[string][]string{
					"Makkah":  {"Hilton Makkah", "Swissotel"},
					"Madinah": {"Oberoi Madinah"},
				},
				Prices: []entity.PriceRow{
					{
						HotelCombination: "Hilton Makkah - Oberoi Madinah",
						RoomTypes: []entity.RoomTypeCapacity{
							{Type: enum.RoomTypeDouble, Guests: 2},
							{Type: enum.RoomTypeQuad, Guests: 4},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("seed program: %v", err)
	}

	_, err = env.pricing.UpsertPricing(env.ctx, &UpsertPricingInput{
		ProgramID:     program.ID,
		TicketAirline: 500,
		VisaFees:      200,
		GuideFees:     100,
		Hotels: []entity.HotelRate{
			{
				Name:   "Hilton Makkah",
				City:   "Makkah",
				Nights: 5,
				PricePerNight: map[enum.RoomType]float64{
					enum.RoomTypeDouble: 400,
					enum.RoomTypeQuad:   600,
				},
			},
			{
				Name:   "Oberoi Madinah",
				City:   "Madinah",
				Nights: 4,
				PricePerNight: map[enum.RoomType]float64{
					enum.RoomTypeDouble: 150,
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("seed pricing: %v", err)
	}

	return program
}

func (env *testEnv) standardSelection() []entity.CityChoice {
	return []entity.CityChoice{
		{City: "Makkah", Hotel: "Hilton Makkah", RoomType: enum.RoomTypeDouble},
		{City: "Madinah", Hotel: "Oberoi Madinah", RoomType: enum.RoomTypeDouble},
	}
}

func (env *testEnv) seedBooking(t *testing.T, programID uuid.UUID, sellingPrice float64) *entity.Booking {
	t.Helper()

	booking, err := env.bookings.CreateBooking(env.ctx, &CreateBookingInput{
		ProgramID:      programID,
		CustomerName:   "Ahmed Ali",
		PassportNumber: "P" + uuid.NewString()[:8],
		Phone:          "+20100000000",
		PackageName:    "Gold",
		Selection:      env.standardSelection(),
		SellingPrice:   sellingPrice,
	})
	if err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}
