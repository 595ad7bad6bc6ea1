package database

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/config"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User-related entities
		&entity.User{},
		&entity.Role{},
		&entity.Permission{},

		// Tenant entities
		&entity.Tenant{},
		&entity.TenantMembership{},
		&entity.Tier{},

		// Catalog entities
		&entity.Program{},
		&entity.PricingTable{},
		&entity.ProgramCost{},

		// Ledger entities
		&entity.Booking{},
		&entity.DailyService{},
		&entity.Expense{},
		&entity.SequenceCounter{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the database with default data (roles, permissions, tiers, admin user)
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Create default permissions
	permissions := []entity.Permission{
		{Name: "view-dashboard", GuardName: "web"},
		{Name: "manage-programs", GuardName: "web"},
		{Name: "manage-pricing", GuardName: "web"},
		{Name: "manage-bookings", GuardName: "web"},
		{Name: "manage-services", GuardName: "web"},
		{Name: "manage-expenses", GuardName: "web"},
		{Name: "manage-users", GuardName: "web"},
		{Name: "manage-tenants", GuardName: "web"},
		{Name: "import-bookings", GuardName: "web"},
	}

	for i := range permissions {
		var existing entity.Permission
		if err := db.Where("name = ?", permissions[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&permissions[i]).Error; err != nil {
				log.Printf("Warning: failed to create permission %s: %v", permissions[i].Name, err)
			}
		}
	}

	// Reload permissions with IDs
	var allPermissions []entity.Permission
	db.Find(&allPermissions)

	pick := func(names ...string) []entity.Permission {
		var out []entity.Permission
		for _, name := range names {
			for _, p := range allPermissions {
				if p.Name == name {
					out = append(out, p)
					break
				}
			}
		}
		return out
	}

	// Create owner role with all permissions
	var ownerRole entity.Role
	if err := db.Where("name = ?", "owner").First(&ownerRole).Error; err != nil {
		ownerRole = entity.Role{
			Name:        "owner",
			GuardName:   "web",
			Permissions: allPermissions,
		}
		if err := db.Create(&ownerRole).Error; err != nil {
			log.Printf("Warning: failed to create owner role: %v", err)
		}
	}

	// Create admin role with everything but tenant administration
	var adminRole entity.Role
	if err := db.Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		adminRole = entity.Role{
			Name:      "admin",
			GuardName: "web",
			Permissions: pick(
				"view-dashboard",
				"manage-programs",
				"manage-pricing",
				"manage-bookings",
				"manage-services",
				"manage-expenses",
				"manage-users",
				"import-bookings",
			),
		}
		if err := db.Create(&adminRole).Error; err != nil {
			log.Printf("Warning: failed to create admin role: %v", err)
		}
	}

	// Create employee role for day-to-day booking work
	var employeeRole entity.Role
	if err := db.Where("name = ?", "employee").First(&employeeRole).Error; err != nil {
		employeeRole = entity.Role{
			Name:      "employee",
			GuardName: "web",
			Permissions: pick(
				"view-dashboard",
				"manage-bookings",
				"manage-services",
			),
		}
		if err := db.Create(&employeeRole).Error; err != nil {
			log.Printf("Warning: failed to create employee role: %v", err)
		}
	}

	// Create default subscription tiers
	tiers := []entity.Tier{
		{Name: "free", MaxPrograms: 3, MaxBookings: 50, MaxEmployees: 2},
		{Name: "standard", MaxPrograms: 20, MaxBookings: 1000, MaxEmployees: 10},
		{Name: "unlimited", MaxPrograms: 0, MaxBookings: 0, MaxEmployees: 0},
	}
	for i := range tiers {
		var existing entity.Tier
		if err := db.Where("name = ?", tiers[i].Name).First(&existing).Error; err != nil {
			if err := db.Create(&tiers[i]).Error; err != nil {
				log.Printf("Warning: failed to create tier %s: %v", tiers[i].Name, err)
			}
		}
	}

	// Create owner user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				var oRole entity.Role
				if err := db.Where("name = ?", "owner").First(&oRole).Error; err == nil {
					if adminName == "" {
						adminName = "Owner"
					}
					// Split admin name into first and last name
					firstName := adminName
					lastName := ""
					for i, c := range adminName {
						if c == ' ' {
							firstName = adminName[:i]
							lastName = adminName[i+1:]
							break
						}
					}
					adminUser := entity.User{
						ID:        uuid.New(),
						FirstName: firstName,
						LastName:  lastName,
						Email:     adminEmail,
						Password:  string(hashedPassword),
						Roles:     []entity.Role{oRole},
					}
					if err := db.Create(&adminUser).Error; err != nil {
						log.Printf("Warning: failed to create owner user: %v", err)
					} else {
						log.Printf("Owner user created: %s", adminEmail)
					}
				}
			}
		} else {
			log.Printf("Owner user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
