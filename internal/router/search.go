package router

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/minjae-ko/localtax-portal/internal/search"
)

type SearchRouter struct {
	e        *echo.Echo
	searcher search.Searcher
}

func NewSearchRouter(e *echo.Echo, searcher search.Searcher) *SearchRouter {
	return &SearchRouter{
		e:        e,
		searcher: searcher,
	}
}

func (r *SearchRouter) Bind() {
	r.e.GET("/api/search", r.searchHandler)
}

func (r *SearchRouter) searchHandler(c echo.Context) error {
	query := c.QueryParam("q")

	limit := search.DefaultLimit
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err == nil && parsed > 0 {
			limit = parsed
		}
	}

	results, err := r.searcher.Search(c.Request().Context(), query, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"results": results})
}
