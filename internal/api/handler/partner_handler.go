package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type PartnerHandler struct {
	service ports.PartnerService
}

func NewPartnerHandler(service ports.PartnerService) *PartnerHandler {
	return &PartnerHandler{service: service}
}

type scheduleEntryRequest struct {
	DayOfWeek int    `json:"day_of_week" validate:"min=0,max=6"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Closed    bool   `json:"is_closed"`
}

type scheduleRequest struct {
	Entries []scheduleEntryRequest `json:"entries" validate:"required,dive"`
}

type locationRequest struct {
	Latitude  float64 `json:"latitude"  validate:"required"`
	Longitude float64 `json:"longitude" validate:"required"`
	Address   string  `json:"address"`
}

// SetSchedule replaces the caller's weekly opening hours. Partner only.
//
// @Summary      Set opening hours
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scheduleRequest  true  "Weekly schedule"
// @Success      200   {array}   domain.ScheduleEntry
// @Failure      400   {object}  errorResponse
// @Router       /partner/schedule [put]
func (h *PartnerHandler) SetSchedule(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req scheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entries := make([]domain.ScheduleEntry, 0, len(req.Entries))
	for _, e := range req.Entries {
		entries = append(entries, domain.ScheduleEntry{
			DayOfWeek: e.DayOfWeek,
			OpenTime:  e.OpenTime,
			CloseTime: e.CloseTime,
			Closed:    e.Closed,
		})
	}

	schedule, err := h.service.SetSchedule(c.Request().Context(), user.ID, entries)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedule)
}

// Schedule returns the caller's weekly opening hours. Partner only.
func (h *PartnerHandler) Schedule(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	schedule, err := h.service.Schedule(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedule)
}

// SetLocation stores the caller's point of sale. Partner only.
//
// @Summary      Set location
// @Tags         partner
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      locationRequest  true  "Coordinates"
// @Success      200   {object}  domain.Location
// @Router       /partner/location [put]
func (h *PartnerHandler) SetLocation(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req locationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	location, err := h.service.SetLocation(c.Request().Context(), user.ID, &domain.Location{
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Address:   req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, location)
}

// Location returns the caller's stored point of sale. Partner only.
func (h *PartnerHandler) Location(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	location, err := h.service.Location(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, location)
}

// PublicSchedule returns a partner's opening hours by partner id. Public.
func (h *PartnerHandler) PublicSchedule(c echo.Context) error {
	schedule, err := h.service.Schedule(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, schedule)
}

// PublicLocation returns a partner's point of sale by partner id. Public.
func (h *PartnerHandler) PublicLocation(c echo.Context) error {
	location, err := h.service.Location(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, location)
}
