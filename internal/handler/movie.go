package handler // handler package contains movie endpoints

import (
	"errors"   // errors provides Is for sentinel comparisons
	"net/http" // http provides status code constants
	"strconv"  // strconv parses user-supplied numeric text
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/moviweb/moviweb/internal/model"      // model defines the movie record
	"github.com/moviweb/moviweb/internal/omdb"       // omdb provides the year parse policy
	"github.com/moviweb/moviweb/internal/repository" // repository defines sentinel errors
)

// movieResponse is the wire shape of a movie. Pointer fields
// serialize as null when unset, which keeps "no user rating yet"
// distinct from a rating of zero.
type movieResponse struct {
	ID             uint64   `json:"id"`
	Title          string   `json:"title"`
	Director       string   `json:"director"`
	Year           int      `json:"year"`
	ExternalRating float64  `json:"external_rating"`
	UserRating     *float64 `json:"user_rating"`
	PosterURL      *string  `json:"poster_url"`
	ExternalID     *string  `json:"external_id"`
	OwnerID        uint64   `json:"owner_id"`
}

func toMovieResponse(m *model.Movie) movieResponse {
	return movieResponse{
		ID:             m.ID,
		Title:          m.Title,
		Director:       m.Director,
		Year:           m.Year,
		ExternalRating: m.ExternalRating,
		UserRating:     m.UserRating,
		PosterURL:      m.PosterURL,
		ExternalID:     m.ExternalID,
		OwnerID:        m.OwnerID,
	}
}

// ListMovies handles GET /v1/users/:id/movies and returns all movies owned by the user
func (h *APIHandler) ListMovies(c echo.Context) error { // begin ListMovies handler
	ownerID, err := pathID(c, "id") // parse the owner ID from the URL
	if err != nil {                 // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"}) // invalid ID error response
	}
	movies, err := h.Store.ListMovies(c.Request().Context(), ownerID) // unknown owners yield an empty list
	if err != nil {                                                   // handle store errors
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"}) // respond with internal server error
	}
	items := make([]movieResponse, 0, len(movies)) // convert records to the wire shape
	for i := range movies {
		items = append(items, toMovieResponse(&movies[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items}) // return the list wrapped in a JSON object
}

// AddMovie handles POST /v1/users/:id/movies. The body carries either
// a title (enrichment is best-effort, the movie is always stored) or
// an external_id picked from search results (no fallback; a failed
// lookup stores nothing and reports 422).
func (h *APIHandler) AddMovie(c echo.Context) error { // begin AddMovie handler
	ownerID, err := pathID(c, "id") // parse the owner ID from the URL
	if err != nil {                 // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"}) // invalid ID error response
	}
	var body struct { // anonymous struct to bind incoming JSON
		Title      string `json:"title"`       // Title adds by lookup-with-fallback
		ExternalID string `json:"external_id"` // ExternalID adds an exact search candidate
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"}) // return bad request when binding fails
	}
	title := strings.TrimSpace(body.Title)           // trim spaces from the provided title
	externalID := strings.TrimSpace(body.ExternalID) // trim spaces from the provided identifier

	ctx := c.Request().Context()
	switch {
	case externalID != "": // exact-identifier path selected
		m, err := h.Store.AddMovieByID(ctx, ownerID, externalID)
		if err != nil { // inspect store failures
			if errors.Is(err, repository.ErrUserNotFound) { // owner must exist
				return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"}) // respond with not found
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not add movie"}) // respond with internal error
		}
		if m == nil { // lookup came back absent; nothing was stored
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": "could not fetch details"}) // caller must report the miss
		}
		return c.JSON(http.StatusCreated, toMovieResponse(m)) // return 201 and the enriched movie
	case title != "": // title path selected
		m, err := h.Store.AddMovieByTitle(ctx, ownerID, title)
		if err != nil { // inspect store failures
			if errors.Is(err, repository.ErrUserNotFound) { // owner must exist
				return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"}) // respond with not found
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not add movie"}) // respond with internal error
		}
		return c.JSON(http.StatusCreated, toMovieResponse(m)) // return 201 even when enrichment fell back
	default: // neither field was provided
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title or external_id is required"}) // respond with bad request
	}
}

// UpdateMovie handles PUT /v1/movies/:id. Only title, director, year
// and the personal rating can change; the externally sourced fields
// are not part of the request shape at all. Year and rating arrive as
// text (the UI submits form values): a non-numeric year becomes 0 and
// an empty or unparsable rating clears the personal rating to unset.
func (h *APIHandler) UpdateMovie(c echo.Context) error { // begin UpdateMovie handler
	id, err := pathID(c, "id") // parse the movie ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"}) // invalid ID error response
	}
	var body struct { // struct for binding the JSON payload
		Title      string `json:"title"`       // Title is the new movie title
		Director   string `json:"director"`    // Director is the new director name
		Year       string `json:"year"`        // Year as displayed text; all-digit or it becomes 0
		UserRating string `json:"user_rating"` // UserRating as text; empty clears to unset
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"}) // return bad request when binding fails
	}
	title := strings.TrimSpace(body.Title) // trim spaces from the provided title
	if title == "" {                       // title cannot be empty after trimming
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"}) // respond with bad request if title is empty
	}
	director := strings.TrimSpace(body.Director) // trim spaces from the provided director
	if director == "" {                          // keep the sentinel instead of an empty string
		director = "Unknown"
	}
	year := omdb.ParseYear(body.Year) // all-digit or 0, same policy as enrichment parsing
	var userRating *float64           // nil means the personal rating is unset
	if v, err := strconv.ParseFloat(strings.TrimSpace(body.UserRating), 64); err == nil {
		userRating = &v // only a parsable value sets the rating
	}

	m, err := h.Store.UpdateMovie(c.Request().Context(), id, title, director, year, userRating)
	if err != nil { // inspect store failures
		if errors.Is(err, repository.ErrMovieNotFound) { // when the movie does not exist
			return c.JSON(http.StatusNotFound, map[string]string{"error": "movie not found"}) // respond with not found
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "update failed"}) // respond with generic update failure
	}
	return c.JSON(http.StatusOK, toMovieResponse(m)) // return the updated movie with OK status
}

// DeleteMovie handles DELETE /v1/movies/:id and removes a single movie
func (h *APIHandler) DeleteMovie(c echo.Context) error { // begin DeleteMovie handler
	id, err := pathID(c, "id") // parse the movie ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"}) // invalid ID error response
	}
	ok, err := h.Store.DeleteMovie(c.Request().Context(), id) // delegate deletion to the store
	if err != nil {                                           // handle store errors
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"}) // respond with generic delete failure
	}
	if !ok { // no row was deleted
		return c.JSON(http.StatusNotFound, map[string]string{"error": "movie not found"}) // respond with not found
	}
	return c.NoContent(http.StatusNoContent) // 204 on successful deletion
}
