package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rihlahq/rihla-api/internal/application/service"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/request"
	"github.com/rihlahq/rihla-api/internal/presentation/http/dto/response"
	"github.com/rihlahq/rihla-api/internal/presentation/http/middleware"
	"github.com/rihlahq/rihla-api/pkg/pagination"
)

// TenantHandler handles agency tenant HTTP requests
type TenantHandler struct {
	tenantService *service.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *service.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Create handles creating a new agency tenant owned by the current user
func (h *TenantHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &service.CreateTenantInput{
		Name:     req.Name,
		Slug:     req.Slug,
		OwnerID:  *userID,
		TierName: req.TierName,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tenant created successfully", gin.H{
		"tenant": tenant,
	})
}

// GetCurrent returns the current request's active tenant
func (h *TenantHandler) GetCurrent(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	tenant, err := h.tenantService.GetTenant(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant retrieved successfully", gin.H{
		"tenant": tenant,
	})
}

// List returns the tenants the current user belongs to
func (h *TenantHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	params := pagination.DefaultPagination()
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.tenantService.GetUserTenants(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Tenants retrieved successfully", result)
}

// Update updates the current tenant's name, tier or settings
func (h *TenantHandler) Update(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	var req request.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), &service.UpdateTenantInput{
		ID:       tenantID,
		Name:     req.Name,
		TierName: req.TierName,
		Settings: req.Settings,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tenant updated successfully", gin.H{
		"tenant": tenant,
	})
}

// ListMembers returns all members of the current tenant
func (h *TenantHandler) ListMembers(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	members, err := h.tenantService.GetTenantMembers(c.Request.Context(), tenantID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", gin.H{
		"members": members,
	})
}

// InviteMember invites a user to the current tenant
func (h *TenantHandler) InviteMember(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	var req request.InviteMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	err = h.tenantService.InviteMember(c.Request.Context(), &service.InviteMemberInput{
		TenantID: tenantID,
		UserID:   userID,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member invited successfully", nil)
}

// RemoveMember removes a user from the current tenant
func (h *TenantHandler) RemoveMember(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.tenantService.RemoveMember(c.Request.Context(), tenantID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}

// UpdateMemberRole updates a member's role in the current tenant
func (h *TenantHandler) UpdateMemberRole(c *gin.Context) {
	tenantID := middleware.GetTenantID(c)
	if tenantID == uuid.Nil {
		response.BadRequest(c, "No active tenant")
		return
	}

	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req request.UpdateMemberRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tenantService.UpdateMemberRole(c.Request.Context(), tenantID, userID, req.Role); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member role updated successfully", nil)
}
