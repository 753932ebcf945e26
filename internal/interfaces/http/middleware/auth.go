package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"numbers/internal/infrastructure/auth"
	"numbers/internal/shared/constants"
	"numbers/internal/shared/logger"
	"numbers/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the caller's vendor
// scope on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyVendorID, claims.VendorID)
		c.Set(constants.ContextKeyAccountID, claims.AccountID)
		c.Set(constants.ContextKeyAdmin, claims.Admin)

		c.Next()
	}
}

// RequireAdmin rejects callers whose token has no admin scope. Must run
// after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(constants.ContextKeyAdmin) {
			utils.ErrorResponse(c, http.StatusForbidden, "admin scope required")
			c.Abort()
			return
		}
		c.Next()
	}
}
