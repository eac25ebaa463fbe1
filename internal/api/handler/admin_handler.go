package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type setActiveRequest struct {
	Active *bool `json:"is_active" validate:"required"`
}

type listUsersResponse struct {
	Data  []ports.UserWithProfile `json:"data"`
	Total int64                   `json:"total"`
}

// Stats returns platform-wide counters. Admin only.
//
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.Stats
// @Failure      403  {object}  errorResponse
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// Users pages through principals with optional role/active/search filters.
// Admin only.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        role    query  int     false  "Filter by role (1-4)"
// @Param        active  query  bool    false  "Filter by active flag"
// @Param        search  query  string  false  "Match username or email"
// @Param        skip    query  int     false  "Offset"
// @Param        limit   query  int     false  "Page size"
// @Success      200  {object}  listUsersResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/users [get]
func (h *AdminHandler) Users(c echo.Context) error {
	filter := ports.UserFilter{Search: c.QueryParam("search")}

	if raw := c.QueryParam("role"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || !domain.Role(n).Valid() {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid role filter")
		}
		role := domain.Role(n)
		filter.Role = &role
	}
	if raw := c.QueryParam("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid active filter")
		}
		filter.Active = &active
	}
	filter.Skip, _ = strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	filter.Limit, _ = strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	users, total, err := h.service.Users(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listUsersResponse{Data: users, Total: total})
}

// SetActive toggles a principal's active flag. Admin only. Deactivated
// users fail the auth gate on their next request.
//
// @Summary      Activate or deactivate a user
// @Tags         admin
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "User ID"
// @Param        body  body  setActiveRequest  true  "Target state"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/users/{id}/active [put]
func (h *AdminHandler) SetActive(c echo.Context) error {
	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.SetActive(c.Request().Context(), c.Param("id"), *req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
