package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/infrastructure/database"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
)

func TestExtractTenantFromHost(t *testing.T) {
	tests := []struct {
		host    string
		want    string
		wantErr bool
	}{
		{"almadina.rihla.app", "almadina", false},
		{"almadina.rihla.app:8080", "almadina", false},
		{"rihla.app", "", true},
		{"localhost:8080", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractTenantFromHost(tt.host)
		if (err != nil) != tt.wantErr {
			t.Errorf("ExtractTenantFromHost(%q) error = %v, wantErr %v", tt.host, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ExtractTenantFromHost(%q) = %q, want %q", tt.host, got, tt.want)
		}
	}
}

func newTenantRouter(t *testing.T) (*gin.Engine, uuid.UUID) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tenant := &entity.Tenant{Name: "Al Madina Travel", Slug: "almadina", OwnerID: uuid.New()}
	if err := db.Create(tenant).Error; err != nil {
		t.Fatalf("create tenant: %v", err)
	}

	router := gin.New()
	router.Use(TenantMiddleware(infraRepo.NewTenantRepository(db)))
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"tenant_id": GetTenantID(c)})
	})
	router.GET("/scoped", RequireTenant(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tenant.ID
}

func TestTenantMiddlewareSubdomain(t *testing.T) {
	router, tenantID := newTenantRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "almadina.rihla.app"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !containsID(body, tenantID) {
		t.Errorf("body %q missing tenant id %s", body, tenantID)
	}
}

func TestTenantMiddlewareHeaderFallback(t *testing.T) {
	router, tenantID := newTenantRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "localhost:8080"
	req.Header.Set(TenantSlugHeader, "almadina")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); !containsID(body, tenantID) {
		t.Errorf("body %q missing tenant id %s", body, tenantID)
	}
}

func TestTenantMiddlewareUnknownSlug(t *testing.T) {
	router, _ := newTenantRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Host = "ghost.rihla.app"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRequireTenantBlocksUnscopedRequests(t *testing.T) {
	router, _ := newTenantRouter(t)

	// No subdomain and no header: request passes tenant resolution with a
	// nil tenant but is stopped at RequireTenant.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Host = "localhost:8080"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/scoped", nil)
	req.Host = "almadina.rihla.app"
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func containsID(body string, id uuid.UUID) bool {
	return id != uuid.Nil && strings.Contains(body, id.String())
}
