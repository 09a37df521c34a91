package middleware

import (
	"strings"

	"syndiceasy/internal/config"
	"syndiceasy/internal/core/domain"
	"syndiceasy/internal/pkg/jwt"
	"syndiceasy/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == string(allowedRole) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// SyndicOrAdmin middleware allows SYNDIC or ADMIN roles
func SyndicOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleSyndic, domain.RoleAdmin)
}

// ResidentOnly middleware allows only RESIDENT role
func ResidentOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleResident)
}

// StaffOnly middleware allows the planning roles
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleRh, domain.RoleAdmin, domain.RoleEmployee)
}

// CurrentUserID returns the authenticated user id from context
func CurrentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

// CurrentRole returns the authenticated role from context
func CurrentRole(c *fiber.Ctx) domain.Role {
	role, _ := c.Locals("role").(string)
	return domain.Role(role)
}
