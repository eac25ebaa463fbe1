package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/api/middleware"
	"github.com/vetcard/vetcard-api/internal/core/domain"
)

// ctxUser extracts the principal injected by the Auth middleware. A missing
// user means the route is wired without Auth, which is a programming error,
// so the request fails with 401 rather than panicking.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// ctxRole extracts the role resolved by the Auth middleware.
func ctxRole(c echo.Context) domain.Role {
	role, _ := c.Get(middleware.CtxRole).(domain.Role)
	return role
}
