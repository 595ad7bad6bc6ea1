package request

import "github.com/rihlahq/rihla-api/internal/domain/entity"

// CreateTenantRequest represents a create tenant request
type CreateTenantRequest struct {
	Name     string                 `json:"name" binding:"required,max=255"`
	Slug     string                 `json:"slug" binding:"omitempty,max=100,lowercase,alphanum"`
	TierName string                 `json:"tier_name"`
	Settings *entity.TenantSettings `json:"settings"`
}

// UpdateTenantRequest represents an update tenant request
type UpdateTenantRequest struct {
	Name     string                 `json:"name"`
	TierName string                 `json:"tier_name"`
	Settings *entity.TenantSettings `json:"settings"`
}

// InviteMemberRequest represents a member invitation request
type InviteMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=owner admin employee"`
}

// UpdateMemberRoleRequest represents a member role change request
type UpdateMemberRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin employee"`
}

// UpdateTierRequest represents a tier limits change request
type UpdateTierRequest struct {
	MaxPrograms  *int `json:"max_programs" binding:"omitempty,min=0"`
	MaxBookings  *int `json:"max_bookings" binding:"omitempty,min=0"`
	MaxEmployees *int `json:"max_employees" binding:"omitempty,min=0"`
}

// AssignRoleRequest represents a role assignment request
type AssignRoleRequest struct {
	RoleName string `json:"role_name" binding:"required,oneof=owner admin employee"`
}
