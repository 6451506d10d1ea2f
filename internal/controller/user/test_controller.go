package user

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"textbook_backend/config"
	"textbook_backend/internal/controller"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/middleware"
	"textbook_backend/internal/service"
)

type TestController struct {
	delivery   service.TestDeliveryService
	submission service.TestSubmissionService
	cfg        *config.Config
}

func NewTestController(delivery service.TestDeliveryService, submission service.TestSubmissionService, cfg *config.Config) *TestController {
	return &TestController{delivery: delivery, submission: submission, cfg: cfg}
}

// GetTestBySubject godoc
// @Summary Get a shuffled, paginated page of a test's questions
// @Description Question order is driven by testSeed; echo the returned seed on later pages to keep the order stable. Correct answers are never included.
// @Tags Tests
// @Produce json
// @Param subject path string true "Test subject, e.g. physics"
// @Param page query int false "1-based page" default(1)
// @Param limit query int false "Page size" default(20)
// @Param testSeed query string false "Seed from a previous page request"
// @Success 200 {object} dto.TestViewDTO
// @Failure 404 {object} dto.ErrorResponse "Unknown subject or empty test"
// @Router /tests/{subject} [get]
func (c *TestController) GetTestBySubject(ctx *gin.Context) {
	subject := ctx.Param("subject")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	seed := ctx.Query("testSeed")

	resp, err := c.delivery.GetTestBySubject(subject, page, limit, seed)
	if err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("GetTestBySubject failed")
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitTest godoc
// @Summary Submit answers for a test
// @Description Grades the submission against the server-held answer key and stores a new result. Malformed individual answers are skipped, not rejected.
// @Tags Tests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitTestRequest true "Test ID, answers and elapsed seconds"
// @Success 200 {object} dto.SubmissionResultDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed submission"
// @Failure 404 {object} dto.ErrorResponse "Test not found"
// @Router /tests/submit [post]
func (c *TestController) SubmitTest(ctx *gin.Context) {
	principal, ok := middleware.PrincipalFrom(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized."})
		return
	}

	var req dto.SubmitTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request data. Test ID and user answers are required.", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submission.SubmitTest(principal.ID, req)
	if err != nil {
		log.Error().Err(err).Uint("userID", principal.ID).Uint("testID", req.TestID).Msg("SubmitTest failed")
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Health godoc
// @Summary Liveness probe for the test routes
// @Tags Tests
// @Produce json
// @Success 200 {object} map[string]string
// @Router /tests/health [get]
func (c *TestController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
