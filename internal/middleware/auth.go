package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"textbook_backend/internal/dto"
	"textbook_backend/internal/repository"
	"textbook_backend/internal/service"
)

const principalKey = "principal"

// extractToken reads the bearer credential, with a legacy fallback to a
// plain "token" header that older clients still send.
func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ctx.GetHeader("token")
}

// RequireAuth validates the caller's token and attaches the Principal to
// the request context.
func RequireAuth(tokens service.TokenService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, token missing."})
			return
		}

		principal, err := tokens.Parse(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
			return
		}

		// The token may outlive the account.
		if _, err := userRepo.FindByID(principal.ID); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "User no longer exists."})
			return
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

// RequireAdmin validates the token, checks the admin role, and verifies the
// admin account still exists.
func RequireAdmin(tokens service.TokenService, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := extractToken(ctx)
		if token == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Not authorized, token missing."})
			return
		}

		principal, err := tokens.Parse(token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: err.Error()})
			return
		}
		if principal.Role != "admin" {
			ctx.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Forbidden. Admin access required."})
			return
		}
		if _, err := adminRepo.FindByID(principal.ID); err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Admin not found."})
			return
		}

		ctx.Set(principalKey, principal)
		ctx.Next()
	}
}

// PrincipalFrom returns the identity attached by RequireAuth/RequireAdmin.
func PrincipalFrom(ctx *gin.Context) (*service.Principal, bool) {
	v, ok := ctx.Get(principalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*service.Principal)
	return p, ok
}
