package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rihlahq/rihla-api/internal/config"
	domainRepo "github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/internal/presentation/http/handler"
	"github.com/rihlahq/rihla-api/internal/presentation/http/middleware"
	"github.com/rihlahq/rihla-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth         *handler.AuthHandler
	Tenant       *handler.TenantHandler
	Tier         *handler.TierHandler
	Program      *handler.ProgramHandler
	Booking      *handler.BookingHandler
	DailyService *handler.DailyServiceHandler
	Expense      *handler.ExpenseHandler
	Transfer     *handler.TransferHandler
	Dashboard    *handler.DashboardHandler
	User         *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication + tenant resolution required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(middleware.TenantMiddleware(deps.TenantRepo))

		// Per-tenant rate limiter
		rateLimiter := middleware.NewTenantRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboard.Use(middleware.RequirePermission("view-dashboard"))
	{
		dashboard.GET("", h.Dashboard.GetStats)
	}

	registerTenantRoutes(protected, h)
	registerTierRoutes(protected, h)
	registerProgramRoutes(protected, h)
	registerBookingRoutes(protected, h, deps)
	registerDailyServiceRoutes(protected, h)
	registerExpenseRoutes(protected, h)
	registerTransferRoutes(protected, h)
	registerUserRoutes(protected, h)
}

func registerTenantRoutes(protected *gin.RouterGroup, h *Handlers) {
	tenants := protected.Group("/tenants")
	{
		tenants.GET("", h.Tenant.List)
		tenants.POST("", h.Tenant.Create)
		tenants.GET("/current", h.Tenant.GetCurrent)
		tenants.PUT("/current", middleware.RequirePermission("manage-tenants"), h.Tenant.Update)
		tenants.GET("/current/members", h.Tenant.ListMembers)
		tenants.POST("/current/members", middleware.RequirePermission("manage-tenants"), h.Tenant.InviteMember)
		tenants.PUT("/current/members/:user_id", middleware.RequirePermission("manage-tenants"), h.Tenant.UpdateMemberRole)
		tenants.DELETE("/current/members/:user_id", middleware.RequirePermission("manage-tenants"), h.Tenant.RemoveMember)
	}
}

func registerTierRoutes(protected *gin.RouterGroup, h *Handlers) {
	tiers := protected.Group("/tiers")
	{
		tiers.GET("", h.Tier.List)
		tiers.PUT("/:id", middleware.RequireRole("owner"), h.Tier.Update)
	}
}

func registerProgramRoutes(protected *gin.RouterGroup, h *Handlers) {
	programs := protected.Group("/programs")
	programs.Use(middleware.RequireTenant())
	{
		programs.GET("", h.Program.List)
		programs.POST("", middleware.RequirePermission("manage-programs"), h.Program.Create)
		programs.GET("/:id", h.Program.Get)
		programs.PUT("/:id", middleware.RequirePermission("manage-programs"), h.Program.Update)
		programs.DELETE("/:id", middleware.RequirePermission("manage-programs"), h.Program.Delete)

		// Pricing table sub-resource
		programs.GET("/:id/pricing", h.Program.GetPricing)
		programs.PUT("/:id/pricing", middleware.RequirePermission("manage-pricing"), h.Program.UpsertPricing)

		// Flat-cost override sub-resource
		programs.GET("/:id/cost", h.Program.GetCost)
		programs.PUT("/:id/cost", middleware.RequirePermission("manage-pricing"), h.Program.UpsertCost)
		programs.POST("/:id/cost/toggle", middleware.RequirePermission("manage-pricing"), h.Program.ToggleCost)
	}
}

func registerBookingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bookings := protected.Group("/bookings")
	bookings.Use(middleware.RequireTenant())
	bookings.Use(middleware.RequirePermission("manage-bookings"))
	{
		bookings.GET("", h.Booking.List)
		// Booking creation uses idempotency middleware to prevent duplicates
		bookings.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Booking.Create)
		bookings.GET("/:id", h.Booking.Get)
		bookings.PUT("/:id", h.Booking.Update)
		bookings.DELETE("/:id", h.Booking.Delete)

		// Payment ledger sub-resource
		bookings.POST("/:id/payments", h.Booking.AddPayment)
		bookings.PUT("/:id/payments/:payment_id", h.Booking.UpdatePayment)
		bookings.DELETE("/:id/payments/:payment_id", h.Booking.DeletePayment)
	}
}

func registerDailyServiceRoutes(protected *gin.RouterGroup, h *Handlers) {
	services := protected.Group("/daily-services")
	services.Use(middleware.RequireTenant())
	services.Use(middleware.RequirePermission("manage-services"))
	{
		services.GET("", h.DailyService.List)
		services.POST("", h.DailyService.Create)
		services.GET("/:id", h.DailyService.Get)
		services.PUT("/:id", h.DailyService.Update)
		services.DELETE("/:id", h.DailyService.Delete)

		services.POST("/:id/payments", h.DailyService.AddPayment)
		services.PUT("/:id/payments/:payment_id", h.DailyService.UpdatePayment)
		services.DELETE("/:id/payments/:payment_id", h.DailyService.DeletePayment)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	expenses.Use(middleware.RequireTenant())
	expenses.Use(middleware.RequirePermission("manage-expenses"))
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", h.Expense.Delete)

		expenses.POST("/:id/payments", h.Expense.AddPayment)
		expenses.PUT("/:id/payments/:payment_id", h.Expense.UpdatePayment)
		expenses.DELETE("/:id/payments/:payment_id", h.Expense.DeletePayment)
	}
}

func registerTransferRoutes(protected *gin.RouterGroup, h *Handlers) {
	transfer := protected.Group("/transfer")
	transfer.Use(middleware.RequireTenant())
	transfer.Use(middleware.RequirePermission("import-bookings"))
	{
		transfer.GET("/template", h.Transfer.ExportTemplate)
		transfer.POST("/import", h.Transfer.Import)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission("manage-users"))
	{
		users.GET("", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id/role", h.User.AssignRole)
		users.DELETE("/:id", h.User.Delete)
	}

	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission("manage-users"))
	{
		roles.GET("", h.User.ListRoles)
	}
}
