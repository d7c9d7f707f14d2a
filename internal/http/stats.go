package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/database/analytics"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// CatalogAnalytics defines the read-only reporting queries.
type CatalogAnalytics interface {
	CountBooksByAuthor(ctx context.Context) ([]analytics.AuthorBookCount, error)
	SearchBooksByMetadata(ctx context.Context, query string) ([]entities.Book, error)
}

type StatsController struct {
	analytics CatalogAnalytics
	log       *logger.Logger
}

func NewStatsController(analytics CatalogAnalytics, log *logger.Logger) *StatsController {
	return &StatsController{analytics: analytics, log: log}
}

// BooksPerAuthor reports how many books each author with books has
// GET /stats/books-per-author
func (sc *StatsController) BooksPerAuthor(c *gin.Context) {
	counts, err := sc.analytics.CountBooksByAuthor(c.Request.Context())
	if err != nil {
		respondStoreError(c, sc.log, err, "author")
		return
	}
	c.JSON(http.StatusOK, counts)
}

// SearchBooks finds books whose metadata mentions the query
// GET /books/search?q=
func (sc *StatsController) SearchBooks(c *gin.Context) {
	list, err := sc.analytics.SearchBooksByMetadata(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondStoreError(c, sc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponses(list))
}
