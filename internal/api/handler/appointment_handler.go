package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type bookAppointmentRequest struct {
	VetID  string    `json:"vet_id"           validate:"required"`
	PetID  string    `json:"pet_id"           validate:"required"`
	Date   time.Time `json:"appointment_date" validate:"required"`
	Reason string    `json:"reason"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	Notes  string `json:"notes"`
}

type askConsultationRequest struct {
	VetID    string `json:"vet_id"   validate:"required"`
	PetID    string `json:"pet_id"   validate:"required"`
	Question string `json:"question" validate:"required"`
}

type answerConsultationRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// Book creates a pending appointment with a veterinarian.
//
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bookAppointmentRequest  true  "Booking details"
// @Success      201   {object}  domain.Appointment
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /appointments [post]
func (h *AppointmentHandler) Book(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req bookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.Book(c.Request().Context(), user.ID, ports.BookAppointmentInput{
		VetID:  req.VetID,
		PetID:  req.PetID,
		Date:   req.Date,
		Reason: req.Reason,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appointment)
}

// Mine lists appointments for the caller, role dependent: vets see their
// schedule, everyone else sees what they booked.
//
// @Summary      List my appointments
// @Tags         appointments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Appointment
// @Router       /appointments [get]
func (h *AppointmentHandler) Mine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var appointments []domain.Appointment
	if ctxRole(c) == domain.RoleVeterinarian {
		appointments, err = h.service.ForVet(c.Request().Context(), user.ID)
	} else {
		appointments, err = h.service.ForOwner(c.Request().Context(), user.ID)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointments)
}

// SetStatus advances an appointment through its lifecycle. Vet only.
//
// @Summary      Update appointment status
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Appointment ID"
// @Param        body  body      setStatusRequest  true  "Target status"
// @Success      200   {object}  domain.Appointment
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /vet/appointments/{id}/status [put]
func (h *AppointmentHandler) SetStatus(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appointment, err := h.service.SetStatus(c.Request().Context(), user.ID, c.Param("id"),
		domain.AppointmentStatus(req.Status), req.Notes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appointment)
}

// Ask opens an online consultation with a veterinarian.
//
// @Summary      Ask a consultation question
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      askConsultationRequest  true  "Question"
// @Success      201   {object}  domain.Consultation
// @Failure      403   {object}  errorResponse
// @Router       /consultations [post]
func (h *AppointmentHandler) Ask(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req askConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	consultation, err := h.service.Ask(c.Request().Context(), user.ID, req.VetID, req.PetID, req.Question)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, consultation)
}

// Consultations lists the caller's consultations, role dependent.
func (h *AppointmentHandler) Consultations(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var consultations []domain.Consultation
	if ctxRole(c) == domain.RoleVeterinarian {
		consultations, err = h.service.ConsultationsForVet(c.Request().Context(), user.ID)
	} else {
		consultations, err = h.service.ConsultationsForOwner(c.Request().Context(), user.ID)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultations)
}

// Answer resolves a pending consultation. Vet only.
//
// @Summary      Answer a consultation
// @Tags         consultations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                     true  "Consultation ID"
// @Param        body  body      answerConsultationRequest  true  "Answer"
// @Success      200   {object}  domain.Consultation
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /vet/consultations/{id}/answer [put]
func (h *AppointmentHandler) Answer(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req answerConsultationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	consultation, err := h.service.Answer(c.Request().Context(), user.ID, c.Param("id"), req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultation)
}

// Close archives an answered consultation. Owner only.
//
// @Summary      Close a consultation
// @Tags         consultations
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Consultation ID"
// @Success      200  {object}  domain.Consultation
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /consultations/{id}/close [put]
func (h *AppointmentHandler) Close(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	consultation, err := h.service.Close(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, consultation)
}
