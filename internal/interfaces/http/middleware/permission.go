package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tsvs/backend/internal/domain/identity"
	"github.com/tsvs/backend/internal/infrastructure/logger"
	"github.com/tsvs/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when access is denied (optional)
	OnDenied func(c *gin.Context, required []string)
}

// RequireAdmin admits portal admins and superadmins
func RequireAdmin() gin.HandlerFunc {
	return RequireAnyRole(identity.RolePortalAdmin, identity.RolePortalSuperAdmin)
}

// RequireSuperAdmin admits superadmins only
func RequireSuperAdmin() gin.HandlerFunc {
	return RequireAnyRole(identity.RolePortalSuperAdmin)
}

// RequireAnyRole creates middleware that requires any of the specified roles
func RequireAnyRole(roles ...identity.PortalRole) gin.HandlerFunc {
	return RequireAnyRoleWithConfig(RoleConfig{}, roles...)
}

// RequireAnyRoleWithConfig creates middleware that requires any of the specified roles with custom config.
// Roles come from the token, so services still re-check against the stored user.
func RequireAnyRoleWithConfig(cfg RoleConfig, roles ...identity.PortalRole) gin.HandlerFunc {
	required := identity.NewRoleSet(roles...).Strings()

	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, required, "No authentication claims found")
			return
		}

		if !claims.HasAnyRole(required...) {
			handleRoleDenied(c, cfg, required, "User lacks required role")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Role check passed",
				zap.String("user_id", claims.UserID),
				zap.Strings("required_any", required),
				zap.Strings("user_roles", claims.Roles),
			)
		}

		c.Next()
	}
}

// handleRoleDenied handles role denied scenarios
func handleRoleDenied(c *gin.Context, cfg RoleConfig, required []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, required)
		return
	}

	if cfg.Logger != nil {
		userID := ""
		var userRoles []string
		if claims := GetJWTClaims(c); claims != nil {
			userID = claims.UserID
			userRoles = claims.Roles
		}

		cfg.Logger.Warn("Role check denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required_roles", required),
			zap.Strings("user_roles", userRoles),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	abortForbidden(c)
}

func abortForbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Not enough permissions",
		c.GetString(logger.GinRequestIDKey),
	))
}
