package news

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"textbook_backend/config"
	"textbook_backend/internal/controller"
	"textbook_backend/internal/dto"
	"textbook_backend/internal/service"
)

type NewsController struct {
	newsService service.NewsService
	cfg         *config.Config
}

func NewNewsController(newsService service.NewsService, cfg *config.Config) *NewsController {
	return &NewsController{newsService: newsService, cfg: cfg}
}

// Add godoc
// @Summary Add a news article
// @Description Multipart form with title, desc and an optional image. The image is stored locally and served under /uploads.
// @Tags News
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param desc formData string true "Description"
// @Param image formData file false "Image (jpeg/png/webp, max 5MB)"
// @Success 201 {object} dto.NewsDTO
// @Failure 400 {object} dto.ErrorResponse
// @Router /news/add [post]
func (c *NewsController) Add(ctx *gin.Context) {
	title := ctx.PostForm("title")
	desc := ctx.PostForm("desc")

	// Image is optional; ignore the error when the part is absent.
	image, _ := ctx.FormFile("image")

	resp, err := c.newsService.Add(title, desc, image)
	if err != nil {
		log.Warn().Err(err).Str("title", title).Msg("Add news failed")
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary All news, newest first
// @Tags News
// @Produce json
// @Success 200 {array} dto.NewsDTO
// @Router /news/get [get]
func (c *NewsController) List(ctx *gin.Context) {
	resp, err := c.newsService.List()
	if err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Remove godoc
// @Summary Delete a news article and its stored image
// @Tags News
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.NewsDeleteRequest true "News ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /news/delete [post]
func (c *NewsController) Remove(ctx *gin.Context) {
	var req dto.NewsDeleteRequest
	if err := ctx.ShouldBind(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "News ID is required", Details: []string{err.Error()}})
		return
	}

	if err := c.newsService.Remove(req.ID); err != nil {
		controller.WriteError(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "News deleted successfully"})
}
