package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	infraRepo "github.com/rihlahq/rihla-api/internal/infrastructure/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/cache"
)

// tierCacheTTL bounds how stale a cached tier may get when an invalidation
// hook is missed (e.g. a tier edited directly in the database).
const tierCacheTTL = 5 * time.Minute

// TierService resolves a tenant's subscription tier and enforces its
// creation limits. Lookups run on every guarded create, so resolved tiers
// are cached per tenant; mutations that change a tenant's tier must call
// Invalidate.
type TierService struct {
	tenantRepo  repository.TenantRepository
	tierRepo    repository.TierRepository
	programRepo repository.ProgramRepository
	bookingRepo repository.BookingRepository

	tiers *cache.Cache[uuid.UUID, *entity.Tier]
}

// NewTierService creates a new tier service
func NewTierService(
	tenantRepo repository.TenantRepository,
	tierRepo repository.TierRepository,
	programRepo repository.ProgramRepository,
	bookingRepo repository.BookingRepository,
) *TierService {
	return &TierService{
		tenantRepo:  tenantRepo,
		tierRepo:    tierRepo,
		programRepo: programRepo,
		bookingRepo: bookingRepo,
		tiers:       cache.New[uuid.UUID, *entity.Tier](tierCacheTTL),
	}
}

// TierFor returns the current tenant's tier, or nil when the tenant has no
// tier assigned (treated as unlimited).
func (s *TierService) TierFor(ctx context.Context) (*entity.Tier, error) {
	tenantID, ok := infraRepo.GetTenantID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Tenant context required")
	}

	if tier, ok := s.tiers.Get(tenantID); ok {
		return tier, nil
	}

	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.NewNotFoundError("Tenant")
	}

	s.tiers.Set(tenantID, tenant.Tier)
	return tenant.Tier, nil
}

// AllowProgram fails when creating one more program would exceed the
// tenant's tier limit.
func (s *TierService) AllowProgram(ctx context.Context) error {
	tier, err := s.TierFor(ctx)
	if err != nil {
		return err
	}
	if tier == nil {
		return nil
	}

	count, err := s.programRepo.Count(ctx)
	if err != nil {
		return err
	}
	if !entity.Allows(tier.MaxPrograms, int(count)) {
		return apperror.NewAppError(403, "Program limit reached for your subscription tier")
	}
	return nil
}

// AllowBookings fails when creating n more bookings would exceed the
// tenant's tier limit. Bulk import passes its whole batch size.
func (s *TierService) AllowBookings(ctx context.Context, n int) error {
	tier, err := s.TierFor(ctx)
	if err != nil {
		return err
	}
	if tier == nil {
		return nil
	}

	count, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return err
	}
	if tier.MaxBookings > 0 && int(count)+n > tier.MaxBookings {
		return apperror.NewAppError(403, "Booking limit reached for your subscription tier")
	}
	return nil
}

// AllowMember fails when adding one more member would exceed the tenant's
// tier limit.
func (s *TierService) AllowMember(ctx context.Context, tenantID uuid.UUID) error {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return err
	}
	if tenant == nil {
		return apperror.NewNotFoundError("Tenant")
	}
	if tenant.Tier == nil {
		return nil
	}

	count, err := s.tenantRepo.CountMembers(ctx, tenantID)
	if err != nil {
		return err
	}
	if !entity.Allows(tenant.Tier.MaxEmployees, int(count)) {
		return apperror.NewAppError(403, "Member limit reached for your subscription tier")
	}
	return nil
}

// Invalidate drops the cached tier for a tenant. Called whenever a tenant's
// tier assignment or the tier itself changes.
func (s *TierService) Invalidate(tenantID uuid.UUID) {
	s.tiers.Invalidate(tenantID)
}

// ListTiers returns all subscription tiers.
func (s *TierService) ListTiers(ctx context.Context) ([]entity.Tier, error) {
	return s.tierRepo.List(ctx)
}

// UpdateTierInput represents the update tier input
type UpdateTierInput struct {
	ID           uuid.UUID
	MaxPrograms  *int
	MaxBookings  *int
	MaxEmployees *int
}

// UpdateTier changes a tier's limits. All cached resolutions are flushed
// because any tenant may be on the edited tier.
func (s *TierService) UpdateTier(ctx context.Context, input *UpdateTierInput) (*entity.Tier, error) {
	tier, err := s.tierRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, apperror.NewNotFoundError("Tier")
	}

	if input.MaxPrograms != nil {
		tier.MaxPrograms = *input.MaxPrograms
	}
	if input.MaxBookings != nil {
		tier.MaxBookings = *input.MaxBookings
	}
	if input.MaxEmployees != nil {
		tier.MaxEmployees = *input.MaxEmployees
	}

	if err := s.tierRepo.Update(ctx, tier); err != nil {
		return nil, err
	}

	s.tiers.Flush()
	return tier, nil
}
