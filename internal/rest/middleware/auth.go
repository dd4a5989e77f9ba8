package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hotelhub/hotelhub/internal/auth"
	ierr "github.com/hotelhub/hotelhub/internal/errors"
	"github.com/hotelhub/hotelhub/internal/logger"
	"github.com/hotelhub/hotelhub/internal/types"
	"github.com/samber/lo"
)

const bearerPrefix = "Bearer "

// AuthenticateMiddleware validates the bearer token and stores the caller's
// user ID, role and raw token in the request context.
func AuthenticateMiddleware(authProvider auth.Provider, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, bearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		claims, err := authProvider.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("failed to validate token", "error", err)
			abortUnauthorized(c, "Invalid token")
			return
		}

		if claims == nil || claims.UserID == "" {
			abortUnauthorized(c, "Invalid token claims")
			return
		}

		ctx := c.Request.Context()
		ctx = types.SetUserID(ctx, claims.UserID)
		ctx = types.SetUserRole(ctx, claims.Role)
		ctx = types.SetJWT(ctx, tokenString)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not listed. It must run after
// AuthenticateMiddleware.
func RequireRole(roles ...types.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := types.GetUserRole(c.Request.Context())
		if !lo.Contains(roles, role) {
			_ = c.Error(ierr.NewError("role not allowed").
				WithHint("You do not have permission to perform this action").
				WithReportableDetails(map[string]any{"role": role}).
				Mark(ierr.ErrPermissionDenied))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff allows administrators and employees
func RequireStaff() gin.HandlerFunc {
	return RequireRole(types.UserRoleAdmin, types.UserRoleEmployee)
}

func abortUnauthorized(c *gin.Context, hint string) {
	_ = c.Error(ierr.NewError("unauthenticated request").
		WithHint(hint).
		Mark(ierr.ErrUnauthorized))
	c.Abort()
}
