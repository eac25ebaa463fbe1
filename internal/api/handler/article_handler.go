package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/vetcard/vetcard-api/internal/core/domain"
	"github.com/vetcard/vetcard-api/internal/core/ports"
)

type ArticleHandler struct {
	service ports.ArticleService
}

func NewArticleHandler(service ports.ArticleService) *ArticleHandler {
	return &ArticleHandler{service: service}
}

type articleRequest struct {
	Title      string `json:"title" validate:"required"`
	Excerpt    string `json:"excerpt"`
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	Category   string `json:"category"`
	AuthorName string `json:"author_name"`
	SourceURL  string `json:"source_url"`
}

func (r articleRequest) toDomain() *domain.Article {
	return &domain.Article{
		Title:      r.Title,
		Excerpt:    r.Excerpt,
		Content:    r.Content,
		ImageURL:   r.ImageURL,
		Category:   r.Category,
		AuthorName: r.AuthorName,
		SourceURL:  r.SourceURL,
	}
}

// Published lists published articles, newest first. Public.
//
// @Summary      List published articles
// @Tags         articles
// @Produce      json
// @Param        category  query  string  false  "Filter by category"
// @Param        skip      query  int     false  "Offset"
// @Param        limit     query  int     false  "Page size (default 20)"
// @Success      200  {array}  domain.Article
// @Router       /articles [get]
func (h *ArticleHandler) Published(c echo.Context) error {
	skip, _ := strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	articles, err := h.service.Published(c.Request().Context(), c.QueryParam("category"), skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// Read returns one published article and counts the view. Public.
//
// @Summary      Read an article
// @Tags         articles
// @Produce      json
// @Param        id  path  string  true  "Article ID"
// @Success      200  {object}  domain.Article
// @Failure      404  {object}  errorResponse
// @Router       /articles/{id} [get]
func (h *ArticleHandler) Read(c echo.Context) error {
	article, err := h.service.Read(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Create drafts a new article for the calling vet.
//
// @Summary      Create an article
// @Tags         articles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      articleRequest  true  "Article"
// @Success      201   {object}  domain.Article
// @Failure      403   {object}  errorResponse
// @Router       /vet/articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Create(c.Request().Context(), user.ID, req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, article)
}

// Mine lists the caller's own articles, drafts included.
func (h *ArticleHandler) Mine(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	articles, err := h.service.Mine(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, articles)
}

// Update replaces one of the caller's articles.
func (h *ArticleHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	article, err := h.service.Update(c.Request().Context(), user.ID, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Publish makes a draft visible to everyone. Idempotent.
//
// @Summary      Publish an article
// @Tags         articles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Article ID"
// @Success      200  {object}  domain.Article
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /vet/articles/{id}/publish [post]
func (h *ArticleHandler) Publish(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	article, err := h.service.Publish(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, article)
}

// Delete removes one of the caller's articles.
func (h *ArticleHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), user.ID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
