package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

type categoryRequest struct {
	Name      string `json:"name" validate:"required"`
	Slug      string `json:"slug"`
	ImageURL  string `json:"image_url"`
	SortOrder int    `json:"sort_order"`
}

type subcategoryRequest struct {
	CategoryID string `json:"category_id" validate:"required"`
	Name       string `json:"name"        validate:"required"`
	Slug       string `json:"slug"`
	SortOrder  int    `json:"sort_order"`
}

type productRequest struct {
	SubcategoryID string  `json:"subcategory_id"`
	Name          string  `json:"name"  validate:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	ImageURL      string  `json:"img_url"`
	Active        bool    `json:"is_active"`
}

func (r productRequest) toDomain() *domain.Product {
	return &domain.Product{
		SubcategoryID: r.SubcategoryID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		ImageURL:      r.ImageURL,
		Active:        r.Active,
	}
}

// Categories lists marketplace categories. Public.
//
// @Summary      List categories
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.ProductCategory
// @Router       /catalog/categories [get]
func (h *CatalogHandler) Categories(c echo.Context) error {
	categories, err := h.service.Categories(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, categories)
}

// Category returns one category by id.
func (h *CatalogHandler) Category(c echo.Context) error {
	category, err := h.service.Category(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, category)
}

// CreateCategory adds a marketplace category. Admin only.
//
// @Summary      Create a category
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category"
// @Success      201   {object}  domain.ProductCategory
// @Failure      403   {object}  errorResponse
// @Router       /catalog/categories [post]
func (h *CatalogHandler) CreateCategory(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	category, err := h.service.CreateCategory(c.Request().Context(), &domain.ProductCategory{
		Name:      req.Name,
		Slug:      req.Slug,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		Active:    true,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, category)
}

// Subcategories lists the subcategories of a category. Public.
//
// @Summary      List subcategories
// @Tags         catalog
// @Produce      json
// @Param        id  path  string  true  "Category ID"
// @Success      200  {array}  domain.ProductSubcategory
// @Router       /catalog/categories/{id}/subcategories [get]
func (h *CatalogHandler) Subcategories(c echo.Context) error {
	subs, err := h.service.Subcategories(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, subs)
}

// CreateSubcategory adds a subcategory under an existing category. Admin only.
func (h *CatalogHandler) CreateSubcategory(c echo.Context) error {
	var req subcategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sub, err := h.service.CreateSubcategory(c.Request().Context(), &domain.ProductSubcategory{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Slug:       req.Slug,
		SortOrder:  req.SortOrder,
		Active:     true,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sub)
}

// Products lists the caller's own products. Partner only.
//
// @Summary      List my products
// @Tags         catalog
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Product
// @Router       /partner/products [get]
func (h *CatalogHandler) Products(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	products, err := h.service.Products(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Browse lists all active marketplace products. Public.
//
// @Summary      Browse products
// @Tags         catalog
// @Produce      json
// @Success      200  {array}  domain.Product
// @Router       /catalog/products [get]
func (h *CatalogHandler) Browse(c echo.Context) error {
	products, err := h.service.Products(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Product returns one product by id. Public.
func (h *CatalogHandler) Product(c echo.Context) error {
	product, err := h.service.Product(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the caller's shop. Partner only.
//
// @Summary      Create a product
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      403   {object}  errorResponse
// @Router       /partner/products [post]
func (h *CatalogHandler) CreateProduct(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(c.Request().Context(), user.ID, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, product)
}

// UpdateProduct replaces one of the caller's products. Partner only.
func (h *CatalogHandler) UpdateProduct(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(c.Request().Context(), user.ID, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, product)
}

// DeleteProduct removes one of the caller's products. Partner only.
func (h *CatalogHandler) DeleteProduct(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
