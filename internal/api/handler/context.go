package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/barbercommunity/marketplace/internal/api/middleware"
	"github.com/barbercommunity/marketplace/internal/core/domain"
)

// ctxClaims extracts the identity injected by the Auth middleware. A missing
// subject means the middleware did not run.
func ctxClaims(c echo.Context) (domain.ID, domain.Role, error) {
	userID, _ := c.Get(middleware.KeyUserID).(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ := c.Get(middleware.KeyRole).(string)
	return domain.ID(userID), domain.Role(role), nil
}
