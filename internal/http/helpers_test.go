package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseIDParam_Valid(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "123"}}

	id, ok := parseIDParam(c, "id")

	assert.True(t, ok)
	assert.Equal(t, uint(123), id)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestParseIDParam_Invalid(t *testing.T) {
	for _, value := range []string{"abc", "-1", ""} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: value}}

		id, ok := parseIDParam(c, "id")

		assert.False(t, ok, value)
		assert.Equal(t, uint(0), id)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid id")
	}
}

func TestPagination_ParsePage(t *testing.T) {
	pages := Pagination{DefaultLimit: 100, MaxLimit: 500}

	tests := []struct {
		name      string
		query     string
		wantSkip  int
		wantLimit int
		wantOK    bool
	}{
		{"defaults", "", 0, 100, true},
		{"explicit", "?skip=5&limit=20", 5, 20, true},
		{"clamped", "?limit=10000", 0, 500, true},
		{"zero limit", "?limit=0", 0, 0, true},
		{"negative passes through", "?skip=-1", -1, 100, true},
		{"not a number", "?limit=ten", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/"+tt.query, nil)

			skip, limit, ok := pages.parsePage(c)

			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantSkip, skip)
				assert.Equal(t, tt.wantLimit, limit)
			} else {
				assert.Equal(t, http.StatusBadRequest, w.Code)
			}
		})
	}
}

func TestRespondStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not found", fmt.Errorf("get book: %w", database.ErrNotFound), http.StatusNotFound, CodeNotFound},
		{"conflict", database.ErrConflict, http.StatusConflict, CodeConflict},
		{"dangling author", database.ErrAuthorNotFound, http.StatusUnprocessableEntity, CodeAuthorNotFound},
		{"invalid page", database.ErrInvalidPage, http.StatusBadRequest, CodeInvalidParam},
		{"invalid query", database.ErrInvalidQuery, http.StatusBadRequest, CodeInvalidParam},
		{"store failure", &database.StoreError{Op: "list", Err: errors.New("disk I/O error")}, http.StatusServiceUnavailable, CodeStoreUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/books/1", nil)

			respondStoreError(c, logger.Nop(), tt.err, "book")

			assert.Equal(t, tt.wantCode, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantBody, resp.Code)
			assert.NotContains(t, resp.Error, "disk I/O")
		})
	}
}
