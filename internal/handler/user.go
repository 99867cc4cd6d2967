package handler // handler package contains user endpoints

import (
	"errors"   // errors provides Is for sentinel comparisons
	"net/http" // http provides status code constants
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/moviweb/moviweb/internal/model"      // model defines the user record
	"github.com/moviweb/moviweb/internal/repository" // repository defines sentinel errors
)

// userResponse is the wire shape of a user.
type userResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name}
}

// CreateUser handles POST /v1/users and creates a new user
func (h *APIHandler) CreateUser(c echo.Context) error { // begin CreateUser handler
	var body struct { // anonymous struct to bind incoming JSON
		Name string `json:"name"` // Name is the only required field for a user
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body into the struct
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"}) // return bad request when binding fails
	}
	name := strings.TrimSpace(body.Name) // trim spaces around the user name
	u, err := h.Store.CreateUser(c.Request().Context(), name)
	if err != nil { // delegate creation to the store and inspect failures
		if errors.Is(err, repository.ErrEmptyName) { // empty name is a validation error
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"}) // respond with bad request when the name is blank
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create user"}) // respond with internal error for other failures
	}
	return c.JSON(http.StatusCreated, toUserResponse(u)) // return 201 and the created user on success
}

// ListUsers handles GET /v1/users and returns all users
func (h *APIHandler) ListUsers(c echo.Context) error { // begin ListUsers handler
	users, err := h.Store.ListUsers(c.Request().Context()) // fetch all users
	if err != nil {                                        // handle store errors
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"}) // respond with internal server error
	}
	items := make([]userResponse, 0, len(users)) // convert records to the wire shape
	for i := range users {
		items = append(items, toUserResponse(&users[i]))
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items}) // return the list wrapped in a JSON object
}

// GetUser handles GET /v1/users/:id and returns a single user
func (h *APIHandler) GetUser(c echo.Context) error { // begin GetUser handler
	id, err := pathID(c, "id") // parse the user ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"}) // invalid ID error response
	}
	u, err := h.Store.GetUser(c.Request().Context(), id)
	if err != nil { // inspect lookup failures
		if errors.Is(err, repository.ErrUserNotFound) { // when the user does not exist
			return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"}) // respond with not found
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "db error"}) // respond with database error
	}
	return c.JSON(http.StatusOK, toUserResponse(u)) // return the user with OK status
}

// DeleteUser handles DELETE /v1/users/:id and removes the user with all owned movies
func (h *APIHandler) DeleteUser(c echo.Context) error { // begin DeleteUser handler
	id, err := pathID(c, "id") // parse the user ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"}) // invalid ID error response
	}
	ok, err := h.Store.DeleteUser(c.Request().Context(), id) // delete cascades to owned movies atomically
	if err != nil {                                          // handle store errors
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"}) // respond with generic delete failure
	}
	if !ok { // no row was deleted
		return c.JSON(http.StatusNotFound, map[string]string{"error": "user not found"}) // respond with not found
	}
	return c.NoContent(http.StatusNoContent) // 204 on successful deletion
}
