package handler // handler package contains the metadata search endpoint

import (
	"net/http" // http provides status code constants
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/moviweb/moviweb/internal/omdb" // omdb defines the search hit shape
)

// SearchMovies handles GET /v1/search/movies?q= and returns up to ten
// candidate movies from the metadata service in service order. Lookup
// failures of any kind surface as an empty list rather than an error,
// so the endpoint always answers 200 for a well-formed query.
func (h *APIHandler) SearchMovies(c echo.Context) error { // begin SearchMovies handler
	query := strings.TrimSpace(c.QueryParam("q")) // trim spaces from the query parameter
	if query == "" {                              // a query is required
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "q is required"}) // respond with bad request when missing
	}
	hits := h.Store.SearchMovies(c.Request().Context(), query) // delegate to the lookup client
	if hits == nil {                                           // normalize nil to an empty list
		hits = []omdb.SearchHit{}
	}
	return c.JSON(http.StatusOK, map[string]any{"items": hits}) // return the hits wrapped in a JSON object
}
