package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/analytics"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/logger"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

// setupTestServer wires the full router over a fresh sqlite database.
func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: "silent",
	}, logger.Nop())
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		AuthorStore: authors.NewRepository(db.DB),
		BookStore:   books.NewRepository(db.DB, logger.Nop()),
		Analytics:   analytics.NewRepository(db.DB),
		Database:    db,
		Pagination:  Pagination{DefaultLimit: 100, MaxLimit: 1000},
		Logger:      logger.Nop(),
		Version:     "test",
	})

	cleanup := func() {
		db.Close()
	}
	return &testServer{router: router, db: db.DB}, cleanup
}

// do sends a request with an optional JSON body. A string body is sent as is.
func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) createAuthor(t *testing.T, name string) AuthorResponse {
	t.Helper()
	w := s.do(t, "POST", "/authors", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[AuthorResponse](t, w)
}

func (s *testServer) createBook(t *testing.T, body map[string]any) BookResponse {
	t.Helper()
	w := s.do(t, "POST", "/books", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[BookResponse](t, w)
}
