package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type PetHandler struct {
	service ports.PetService
}

func NewPetHandler(service ports.PetService) *PetHandler {
	return &PetHandler{service: service}
}

type petRequest struct {
	Name         string     `json:"name"    validate:"required"`
	SpeciesID    string     `json:"species" validate:"required"`
	Breed        string     `json:"breed"`
	BirthDate    *time.Time `json:"birth_date"`
	WeightKg     float64    `json:"weight"  validate:"omitempty,gt=0"`
	ImageURL     string     `json:"image_url"`
	SpecialNotes string     `json:"special_notes"`
}

func (r petRequest) toDomain() *domain.Pet {
	return &domain.Pet{
		Name:         r.Name,
		SpeciesID:    r.SpeciesID,
		Breed:        r.Breed,
		BirthDate:    r.BirthDate,
		WeightKg:     r.WeightKg,
		ImageURL:     r.ImageURL,
		SpecialNotes: r.SpecialNotes,
	}
}

// Create registers a pet under the caller's account.
//
// @Summary      Create a pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      petRequest  true  "Pet details"
// @Success      201   {object}  domain.Pet
// @Failure      400   {object}  errorResponse
// @Router       /pets [post]
func (h *PetHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req petRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.service.Create(c.Request().Context(), user.ID, req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, pet)
}

// List returns the caller's pets.
//
// @Summary      List my pets
// @Tags         pets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Pet
// @Router       /pets [get]
func (h *PetHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	pets, err := h.service.List(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pets)
}

// Update replaces a pet's editable fields.
//
// @Summary      Update a pet
// @Tags         pets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string      true  "Pet ID"
// @Param        body  body      petRequest  true  "Pet details"
// @Success      200   {object}  domain.Pet
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /pets/{id} [put]
func (h *PetHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req petRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pet, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, pet)
}

// Delete removes one of the caller's pets.
//
// @Summary      Delete a pet
// @Tags         pets
// @Security     BearerAuth
// @Param        id  path  string  true  "Pet ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /pets/{id} [delete]
func (h *PetHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// AnimalTypes lists the species reference data. Public.
//
// @Summary      List animal types
// @Tags         pets
// @Produce      json
// @Success      200  {array}  domain.AnimalType
// @Router       /animal-types [get]
func (h *PetHandler) AnimalTypes(c echo.Context) error {
	types, err := h.service.AnimalTypes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, types)
}
