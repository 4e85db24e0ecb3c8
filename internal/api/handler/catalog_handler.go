package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/barbercommunity/marketplace/internal/core/domain"
	"github.com/barbercommunity/marketplace/internal/core/ports"
)

const maxPageSize = 50

type CatalogHandler struct {
	repo ports.CatalogRepository
}

func NewCatalogHandler(repo ports.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{repo: repo}
}

// pageParams reads limit/offset, clamping limit to [1, maxPageSize].
func pageParams(c echo.Context, defLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defLimit
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func pagination(limit, offset, returned, total int) domain.Pagination {
	return domain.Pagination{Limit: limit, Offset: offset, Total: total, HasMore: offset+returned < total}
}

// Posts lists the feed.
//
// @Router /api/posts [get]
func (h *CatalogHandler) Posts(c echo.Context) error {
	limit, offset := pageParams(c, 10)
	posts, total, err := h.repo.ListPosts(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ports.PostPage{Posts: posts, Pagination: pagination(limit, offset, len(posts), total)})
}

// Barbers lists the provider directory.
//
// @Router /api/barbers [get]
func (h *CatalogHandler) Barbers(c echo.Context) error {
	limit, offset := pageParams(c, 12)
	barbers, total, err := h.repo.ListBarbers(c.Request().Context(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ports.BarberPage{Barbers: barbers, Pagination: pagination(limit, offset, len(barbers), total)})
}

// Search filters providers by city.
//
// @Router /api/barbers/search [get]
func (h *CatalogHandler) Search(c echo.Context) error {
	city := strings.TrimSpace(c.QueryParam("city"))
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city is required")
	}
	limit, _ := pageParams(c, 20)
	barbers, err := h.repo.SearchBarbers(c.Request().Context(), city, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"barbers": barbers})
}

// Cities lists the distinct provider cities.
//
// @Router /api/barbers/cities/list [get]
func (h *CatalogHandler) Cities(c echo.Context) error {
	cities, err := h.repo.Cities(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"cities": cities})
}

// Profile returns one provider with posts and stats.
//
// @Router /api/barbers/{id} [get]
func (h *CatalogHandler) Profile(c echo.Context) error {
	profile, err := h.repo.FindBarber(c.Request().Context(), domain.ID(c.Param("id")))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Contact stores a client's message to a provider. Requires Auth and the
// client role.
//
// @Router /api/contact [post]
func (h *CatalogHandler) Contact(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req domain.ContactMessage
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.repo.SaveContact(c.Request().Context(), userID, req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "message sent"})
}
