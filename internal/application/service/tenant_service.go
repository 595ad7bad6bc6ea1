package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/domain/entity"
	"github.com/rihlahq/rihla-api/internal/domain/repository"
	"github.com/rihlahq/rihla-api/pkg/apperror"
	"github.com/rihlahq/rihla-api/pkg/pagination"
	"github.com/rihlahq/rihla-api/pkg/utils"
)

// TenantService handles agency tenant operations
type TenantService struct {
	tenantRepo  repository.TenantRepository
	tierRepo    repository.TierRepository
	tierService *TierService
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo repository.TenantRepository, tierRepo repository.TierRepository, tierService *TierService) *TenantService {
	return &TenantService{tenantRepo: tenantRepo, tierRepo: tierRepo, tierService: tierService}
}

// CreateTenantInput represents input for creating a tenant
type CreateTenantInput struct {
	Name     string
	Slug     string
	OwnerID  uuid.UUID
	TierName string
	Settings *entity.TenantSettings
}

// CreateTenant creates a new tenant. New tenants land on the free tier
// unless another one is named. The slug is derived from the agency name
// when not given explicitly.
func (s *TenantService) CreateTenant(ctx context.Context, input *CreateTenantInput) (*entity.Tenant, error) {
	slug := input.Slug
	if slug == "" {
		slug = utils.Slugify(input.Name)
	}
	if slug == "" {
		return nil, apperror.NewBadRequestError("Tenant slug is required")
	}

	existing, err := s.tenantRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Tenant slug already exists")
	}

	settings := entity.DefaultTenantSettings()
	if input.Settings != nil {
		settings = *input.Settings
	}

	tierName := input.TierName
	if tierName == "" {
		tierName = "free"
	}
	tier, err := s.tierRepo.GetByName(ctx, tierName)
	if err != nil {
		return nil, err
	}

	tenant := &entity.Tenant{
		Name:     input.Name,
		Slug:     slug,
		OwnerID:  input.OwnerID,
		Settings: settings,
	}
	if tier != nil {
		tenant.TierID = &tier.ID
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}

	// Add owner as member
	membership := &entity.TenantMembership{
		TenantID: tenant.ID,
		UserID:   input.OwnerID,
		Role:     "owner",
	}
	_ = s.tenantRepo.AddMember(ctx, membership)

	return tenant, nil
}

// GetTenant retrieves a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.ErrNotFound
	}
	return tenant, nil
}

// GetUserTenants retrieves the tenants a user belongs to
func (s *TenantService) GetUserTenants(ctx context.Context, userID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Tenant], error) {
	tenants, total, err := s.tenantRepo.GetUserTenants(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(tenants, pag), nil
}

// UpdateTenantInput represents input for updating a tenant
type UpdateTenantInput struct {
	ID       uuid.UUID
	Name     string
	TierName string
	Settings *entity.TenantSettings
}

// UpdateTenant updates a tenant. A tier change invalidates the cached tier
// resolution so the new limits apply immediately.
func (s *TenantService) UpdateTenant(ctx context.Context, input *UpdateTenantInput) (*entity.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, apperror.ErrNotFound
	}

	if input.Name != "" {
		tenant.Name = input.Name
	}
	if input.Settings != nil {
		tenant.Settings = *input.Settings
	}
	if input.TierName != "" {
		tier, err := s.tierRepo.GetByName(ctx, input.TierName)
		if err != nil {
			return nil, err
		}
		if tier == nil {
			return nil, apperror.NewNotFoundError("Tier")
		}
		tenant.TierID = &tier.ID
		tenant.Tier = tier
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}

	s.tierService.Invalidate(tenant.ID)
	return tenant, nil
}

// InviteMemberInput represents input for inviting a user to a tenant
type InviteMemberInput struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Role     string
}

// InviteMember adds a user to a tenant, subject to the tier's member limit
func (s *TenantService) InviteMember(ctx context.Context, input *InviteMemberInput) error {
	isMember, _ := s.tenantRepo.IsMember(ctx, input.TenantID, input.UserID)
	if isMember {
		return apperror.NewConflictError("User is already a member of this tenant")
	}

	if err := s.tierService.AllowMember(ctx, input.TenantID); err != nil {
		return err
	}

	membership := &entity.TenantMembership{
		TenantID: input.TenantID,
		UserID:   input.UserID,
		Role:     input.Role,
	}

	return s.tenantRepo.AddMember(ctx, membership)
}

// RemoveMember removes a user from a tenant
func (s *TenantService) RemoveMember(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.tenantRepo.RemoveMember(ctx, tenantID, userID)
}

// GetTenantMembers retrieves all members of a tenant
func (s *TenantService) GetTenantMembers(ctx context.Context, tenantID uuid.UUID) ([]entity.TenantMembership, error) {
	members, err := s.tenantRepo.GetMembers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	// Populate user details for JSON response
	for i := range members {
		members[i].PopulateUserDetails()
	}

	return members, nil
}

// UpdateMemberRole updates a member's role in a tenant
func (s *TenantService) UpdateMemberRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	return s.tenantRepo.UpdateMemberRole(ctx, tenantID, userID, role)
}
