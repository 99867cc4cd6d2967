package handler // handler defines http handlers

import (
	"strconv" // strconv converts path parameters to numeric types

	"github.com/labstack/echo/v4" // echo defines request context types

	"github.com/moviweb/moviweb/internal/store" // store is the data access core
)

// APIHandler bundles the data store for all user and movie endpoints.
type APIHandler struct {
	Store *store.Store // Store owns persistence and enrichment policy
}

// NewAPIHandler constructs a new APIHandler and panics if the store is nil.
func NewAPIHandler(s *store.Store) *APIHandler {
	if s == nil { // check for a missing dependency
		panic("nil store passed to NewAPIHandler") // panic when the store is missing
	}
	return &APIHandler{Store: s} // return a pointer to the new handler
}

// pathID parses the named path parameter as an unsigned integer.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64) // parse the raw parameter in base 10
}
