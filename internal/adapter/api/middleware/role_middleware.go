package middleware

import (
	"github.com/labstack/echo/v4"

	"carebridge/internal/domain/entity"
	"carebridge/internal/usecase"
	"carebridge/pkg/errors"
	"carebridge/pkg/response"
)

// RequireRole gates a route group to one role. Must run after Authenticate.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := c.Get("session").(*usecase.Session)
			if !ok || session == nil {
				return response.Error(c, errors.Unauthorized("Authentication required", nil))
			}
			if session.Role != role {
				return response.Error(c, errors.Forbidden("Insufficient role", nil))
			}
			return next(c)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return RequireRole(entity.RoleAdmin)
}

func DonorOnly() echo.MiddlewareFunc {
	return RequireRole(entity.RoleDonor)
}

func VolunteerOnly() echo.MiddlewareFunc {
	return RequireRole(entity.RoleVolunteer)
}
