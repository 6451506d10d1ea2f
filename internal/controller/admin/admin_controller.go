package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"textbook_backend/config"
	"textbook_backend/internal/controller"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/service"
)

type AdminController struct {
	adminService service.AdminService
	cfg          *config.Config
}

func NewAdminController(adminService service.AdminService, cfg *config.Config) *AdminController {
	return &AdminController{adminService: adminService, cfg: cfg}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(id), true
}

// Login godoc
// @Summary Admin login
// @Tags Admin
// @Accept json
// @Produce json
// @Param body body dto.AdminLoginRequest true "Email and password"
// @Success 200 {object} dto.AdminAuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /admin/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Email and password are required.", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminService.Login(req)
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a new admin account
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AdminCreateRequest true "Email and password"
// @Success 201 {object} dto.AdminDTO
// @Failure 409 {object} dto.ErrorResponse "Email already in use"
// @Router /admin/create [post]
func (c *AdminController) Create(ctx *gin.Context) {
	var req dto.AdminCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Email and password are required.", Details: []string{err.Error()}})
		return
	}

	resp, err := c.adminService.CreateAdmin(req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("CreateAdmin failed")
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary List all admin accounts
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.AdminDTO
// @Router /admin/all [get]
func (c *AdminController) List(ctx *gin.Context) {
	resp, err := c.adminService.ListAdmins()
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary Delete an admin account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Admin ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/{id} [delete]
func (c *AdminController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.adminService.DeleteAdmin(id); err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Admin deleted successfully"})
}

// ListUsers godoc
// @Summary List active users with their test aggregates
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserListResponse
// @Router /admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	resp, err := c.adminService.ListUsers()
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UserStats godoc
// @Summary Dashboard statistics over users and submissions
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserStatsResponse
// @Router /admin/users/stats [get]
func (c *AdminController) UserStats(ctx *gin.Context) {
	resp, err := c.adminService.UserStats()
	if err != nil {
		log.Error().Err(err).Msg("UserStats failed")
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// UserTestHistory godoc
// @Summary One user's submission history
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.UserTestHistoryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{userId}/tests [get]
func (c *AdminController) UserTestHistory(ctx *gin.Context) {
	id, ok := parseID(ctx, "userId")
	if !ok {
		return
	}
	resp, err := c.adminService.UserTestHistory(id)
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeactivateUser godoc
// @Summary Soft-deactivate a user account
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{userId} [delete]
func (c *AdminController) DeactivateUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "userId")
	if !ok {
		return
	}
	if err := c.adminService.DeactivateUser(id); err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "User deactivated successfully"})
}
