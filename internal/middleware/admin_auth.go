package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/vantora-labs/vantora/backend/internal/models"
	"github.com/vantora-labs/vantora/backend/internal/repositories"
)

// AdminAuthMiddleware re-verifies the admin flag server-side on every admin
// route. The flag is read from the database, not from the token, so revoking
// admin rights takes effect immediately.
func AdminAuthMiddleware(userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("user").(*models.JwtCustomClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authentication")
			}

			user, err := userRepo.GetUserByID(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
			}

			if !user.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "Admin access required")
			}

			return next(c)
		}
	}
}
