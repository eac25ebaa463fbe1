package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type ReminderHandler struct {
	service ports.ReminderService
}

func NewReminderHandler(service ports.ReminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

type reminderRequest struct {
	AnimalName string    `json:"animal_name"   validate:"required"`
	Message    string    `json:"assistant_sms" validate:"required"`
	Date       time.Time `json:"date_assistant" validate:"required"`
	Planned    bool      `json:"status"`
}

// Create schedules a care reminder.
//
// @Summary      Create a reminder
// @Tags         reminders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      reminderRequest  true  "Reminder"
// @Success      201   {object}  domain.Reminder
// @Failure      400   {object}  errorResponse
// @Router       /reminders [post]
func (h *ReminderHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.service.Create(c.Request().Context(), user.ID, &domain.Reminder{
		AnimalName: req.AnimalName,
		Message:    req.Message,
		Date:       req.Date,
		Planned:    req.Planned,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, reminder)
}

// List returns the caller's reminders ordered by date.
//
// @Summary      List my reminders
// @Tags         reminders
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Reminder
// @Router       /reminders [get]
func (h *ReminderHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	reminders, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminders)
}

// Update replaces a reminder's fields, including flipping its planned flag.
func (h *ReminderHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req reminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	reminder, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), &domain.Reminder{
		AnimalName: req.AnimalName,
		Message:    req.Message,
		Date:       req.Date,
		Planned:    req.Planned,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reminder)
}

// Delete removes one of the caller's reminders.
func (h *ReminderHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
