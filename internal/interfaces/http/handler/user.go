package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tsvs/backend/internal/application/identity"
)

// birthDateLayout is the wire format of birth_year
const birthDateLayout = "2006-01-02"

// UserHandler handles account endpoints
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ProfileRequest holds the editable profile fields
type ProfileRequest struct {
	Name       string `json:"name" binding:"required,portalname,max=100"`
	Surname    string `json:"surname" binding:"required,portalname,max=100"`
	MiddleName string `json:"middle_name" binding:"omitempty,portalname,max=100"`
	BirthYear  string `json:"birth_year" binding:"omitempty,datetime=2006-01-02"`
	Email      string `json:"email" binding:"required,email,max=255"`
	INN        *int64 `json:"inn" binding:"omitempty,gt=0"`
	Avatar     string `json:"avatar" binding:"omitempty,max=512"`
	JobTitle   string `json:"job_title" binding:"omitempty,max=255"`
}

func (r ProfileRequest) toInput() identity.ProfileInput {
	in := identity.ProfileInput{
		Name:       r.Name,
		Surname:    r.Surname,
		MiddleName: r.MiddleName,
		Email:      r.Email,
		INN:        r.INN,
		Avatar:     r.Avatar,
		JobTitle:   r.JobTitle,
	}
	if r.BirthYear != "" {
		// already checked by the datetime tag
		if t, err := time.Parse(birthDateLayout, r.BirthYear); err == nil {
			in.BirthYear = &t
		}
	}
	return in
}

// CreateUserRequest is the signup body
type CreateUserRequest struct {
	ProfileRequest
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// UpdateUserRequest is the edit body
type UpdateUserRequest struct {
	ProfileRequest
	IsActive *bool `json:"is_active" binding:"required"`
}

// ResetPasswordRequest is the password reset body
type ResetPasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// Create godoc
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Success      201 {object} dto.Response{data=identity.UserDTO}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Create(c.Request.Context(), identity.CreateUserInput{
		ProfileInput: req.toInput(),
		Password:     req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// List godoc
// @Summary      List all users
// @Tags         users
// @Param        q query string false "Name or email fragment"
// @Success      200 {object} dto.Response{data=[]identity.UserDTO}
// @Security     BearerAuth
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.ListAll(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// ListActive godoc
// @Summary      List active users
// @Tags         users
// @Security     BearerAuth
// @Router       /users/active [get]
func (h *UserHandler) ListActive(c *gin.Context) {
	users, err := h.userService.ListActive(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, users)
}

// GetByID godoc
// @Summary      Get an active user
// @Tags         users
// @Security     BearerAuth
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Update godoc
// @Summary      Edit a user
// @Tags         users
// @Security     BearerAuth
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if !h.bindJSON(c, &req) {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), identity.UpdateUserInput{
		ID:       id,
		ActorID:  actorID,
		Profile:  req.toInput(),
		IsActive: req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Delete godoc
// @Summary      Soft delete a user
// @Tags         users
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	result, err := h.userService.Delete(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Disable godoc
// @Summary      Deactivate a user
// @Tags         users
// @Security     BearerAuth
// @Router       /users/{id}/disable [post]
func (h *UserHandler) Disable(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	result, err := h.userService.Disable(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ResetPassword godoc
// @Summary      Set a new password
// @Tags         users
// @Security     BearerAuth
// @Router       /users/{id}/reset-password [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.userService.ResetPassword(c.Request.Context(), identity.ResetPasswordInput{
		ID:              id,
		ActorID:         actorID,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// History godoc
// @Summary      Audit trail of a user
// @Tags         users
// @Security     BearerAuth
// @Router       /users/{id}/history [get]
func (h *UserHandler) History(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	rows, err := h.userService.History(c.Request.Context(), id, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}

// AdminHandler handles privilege escalation endpoints
type AdminHandler struct {
	BaseHandler
	adminService *identity.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *identity.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GrantAdmin godoc
// @Summary      Grant ROLE_PORTAL_ADMIN
// @Tags         admin
// @Security     BearerAuth
// @Router       /admin/users/{id}/privilege [patch]
func (h *AdminHandler) GrantAdmin(c *gin.Context) {
	h.changePrivilege(c, h.adminService.GrantAdmin)
}

// RevokeAdmin godoc
// @Summary      Revoke ROLE_PORTAL_ADMIN
// @Tags         admin
// @Security     BearerAuth
// @Router       /admin/users/{id}/privilege [delete]
func (h *AdminHandler) RevokeAdmin(c *gin.Context) {
	h.changePrivilege(c, h.adminService.RevokeAdmin)
}

func (h *AdminHandler) changePrivilege(c *gin.Context, op func(ctx context.Context, targetID, actorID uuid.UUID) (*identity.PrivilegeResult, error)) {
	targetID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	actorID, ok := h.callerID(c)
	if !ok {
		return
	}

	result, err := op(c.Request.Context(), targetID, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
