package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
	"github.com/vetcard/vetcard-api/pkg/tokens"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUser = "user"
	CtxRole = "role"
)

// Auth resolves a bearer token to a live principal and injects it into the
// request context. Refresh tokens are rejected here even when otherwise
// valid: only access-kind tokens are API credentials.
func Auth(codec *tokens.Codec, repo ports.AuthRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, ok := codec.Verify(parts[1])
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			if claims.Kind != tokens.KindAccess {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token kind")
			}

			// Subject must coerce back to the store's native key type.
			if _, err := primitive.ObjectIDFromHex(claims.Subject); err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			user, err := repo.FindByID(c.Request().Context(), claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown principal")
			}
			if !user.Active {
				return echo.NewHTTPError(http.StatusForbidden, "user is inactive")
			}

			// A principal without a profile is treated as a plain owner.
			role := domain.RoleOwner
			if profile, err := repo.FindProfileByUserID(c.Request().Context(), user.ID); err == nil {
				role = profile.Role
			}

			c.Set(CtxUser, user)
			c.Set(CtxRole, role)

			return next(c)
		}
	}
}
