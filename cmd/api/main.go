package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/config"
	"github.com/rihlahq/rihla-api/internal/infrastructure/database"
	"github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/internal/presentation/http/handler"
	"github.com/rihlahq/rihla-api/internal/presentation/http/routes"
	"github.com/rihlahq/rihla-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	tierRepo := repository.NewTierRepository(db)
	programRepo := repository.NewProgramRepository(db)
	pricingRepo := repository.NewPricingTableRepository(db)
	costRepo := repository.NewProgramCostRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	dailyServiceRepo := repository.NewDailyServiceRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	uow := repository.NewUnitOfWork(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, jwtManager)
	tierService := service.NewTierService(tenantRepo, tierRepo, programRepo, bookingRepo)
	tenantService := service.NewTenantService(tenantRepo, tierRepo, tierService)
	reconciler := service.NewReconcileService()
	programService := service.NewProgramService(programRepo, uow, reconciler, tierService)
	pricingService := service.NewPricingService(pricingRepo, uow, reconciler)
	costService := service.NewProgramCostService(costRepo, uow, reconciler)
	bookingService := service.NewBookingService(bookingRepo, programRepo, uow, tierService)
	dailyServiceService := service.NewDailyServiceService(dailyServiceRepo, uow)
	expenseService := service.NewExpenseService(expenseRepo, uow)
	transferService := service.NewTransferService(programRepo, bookingRepo, uow, tierService)
	dashboardService := service.NewDashboardService(programRepo, bookingRepo, dailyServiceRepo, expenseRepo)
	userService := service.NewUserService(userRepo, roleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Tenant:       handler.NewTenantHandler(tenantService),
		Tier:         handler.NewTierHandler(tierService),
		Program:      handler.NewProgramHandler(programService, pricingService, costService),
		Booking:      handler.NewBookingHandler(bookingService),
		DailyService: handler.NewDailyServiceHandler(dailyServiceService),
		Expense:      handler.NewExpenseHandler(expenseService),
		Transfer:     handler.NewTransferHandler(transferService, cfg.Import.UploadMaxSize),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		User:         handler.NewUserHandler(userService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
