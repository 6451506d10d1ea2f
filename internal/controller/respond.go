package controller

import (
	"github.com/gin-gonic/gin"

	"textbook_backend/internal/apperr"
	"textbook_backend/internal/dto"
)

// WriteError maps a service error to an HTTP response. Underlying error
// details are included only outside production.
func WriteError(ctx *gin.Context, err error, production bool) {
	resp := dto.ErrorResponse{Message: apperr.Message(err)}
	if !production && apperr.KindOf(err) == apperr.Internal {
		resp.Details = []string{err.Error()}
	}
	ctx.JSON(apperr.HTTPStatus(err), resp)
}
