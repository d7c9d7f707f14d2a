package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/logger"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// Machine-readable error codes.
const (
	CodeInvalidJSON      = "invalid_json"
	CodeValidation       = "validation_failed"
	CodeInvalidParam     = "invalid_parameter"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeAuthorNotFound   = "author_not_found"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal_error"
)

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, code, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: code})
}

// respondValidationError sends a 400 response carrying the per-field errors.
func respondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "request validation failed",
		Code:    CodeValidation,
		Details: err,
	})
}

// respondStoreError maps a store error onto a status code. Failures of the
// store itself are logged; their details are not exposed to the client.
func respondStoreError(c *gin.Context, log *logger.Logger, err error, resource string) {
	var storeErr *database.StoreError
	switch {
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: CodeNotFound})
	case errors.Is(err, database.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: resource + " already exists", Code: CodeConflict})
	case errors.Is(err, database.ErrAuthorNotFound):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "author does not exist", Code: CodeAuthorNotFound})
	case errors.Is(err, database.ErrInvalidPage), errors.Is(err, database.ErrInvalidQuery):
		respondBadRequest(c, CodeInvalidParam, err.Error())
	case errors.As(err, &storeErr):
		log.Error("store failure", "op", storeErr.Op, "error", storeErr.Err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "store unavailable, try again", Code: CodeStoreUnavailable})
	default:
		log.Error("internal error", "resource", resource, "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: CodeInternal})
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, CodeInvalidParam, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// Pagination holds the page size policy for list endpoints.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
}

// parsePage reads skip and limit from the query string. A missing limit takes
// the default, a limit above the maximum is clamped. Negative values are passed
// through so the store can reject them.
func (p Pagination) parsePage(c *gin.Context) (skip, limit int, ok bool) {
	skip, ok = queryInt(c, "skip", 0)
	if !ok {
		return 0, 0, false
	}
	limit, ok = queryInt(c, "limit", p.DefaultLimit)
	if !ok {
		return 0, 0, false
	}
	if p.MaxLimit > 0 && limit > p.MaxLimit {
		limit = p.MaxLimit
	}
	return skip, limit, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present || raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, CodeInvalidParam, "invalid "+name)
		return 0, false
	}
	return v, true
}
