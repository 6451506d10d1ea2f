package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"textbook_backend/config"
	"textbook_backend/internal/controller"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/middleware"
	"textbook_backend/internal/service"
)

type UserController struct {
	authService  service.AuthService
	adminService service.AdminService
	cfg          *config.Config
}

func NewUserController(authService service.AuthService, adminService service.AdminService, cfg *config.Config) *UserController {
	return &UserController{authService: authService, adminService: adminService, cfg: cfg}
}

// Register godoc
// @Summary Register a new user
// @Description Create a student account and return a token plus the user profile.
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "Name, email and password"
// @Success 201 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or invalid fields"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /users/register [post]
func (c *UserController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Name, email and password are required.", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Register(req)
	if err != nil {
		log.Warn().Err(err).Str("email", req.Email).Msg("Register failed")
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log a user in
// @Tags Users
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Email and password"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /users/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Email and password are required.", Details: []string{err.Error()}})
		return
	}

	resp, err := c.authService.Login(req)
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Me godoc
// @Summary Current user's profile and result history
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/me [get]
func (c *UserController) Me(ctx *gin.Context) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized."})
		return
	}

	resp, err := c.authService.Profile(principal.ID)
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Stats godoc
// @Summary User statistics (admin)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.UserStatsResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /users/stats [get]
func (c *UserController) Stats(ctx *gin.Context) {
	resp, err := c.adminService.UserStats()
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
