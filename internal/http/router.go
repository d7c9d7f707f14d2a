package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/logger"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(SecurityHeadersMiddleware())

	authorsController := NewAuthorsController(cfg.AuthorStore, cfg.Pagination, log)
	booksController := NewBooksController(cfg.BookStore, cfg.Pagination, log)
	statsController := NewStatsController(cfg.Analytics, log)
	health := NewHealthController(cfg.Database, cfg.Version)

	// Health endpoints
	router.GET("/health", health.Status)

	// Authors
	router.POST("/authors", authorsController.CreateAuthor)
	router.GET("/authors", authorsController.ListAuthors)
	router.GET("/authors/:id", authorsController.GetAuthor)
	router.PUT("/authors/:id", authorsController.UpdateAuthor)
	router.DELETE("/authors/:id", authorsController.DeleteAuthor)
	router.GET("/authors/:id/books", booksController.FindAuthorBooksByDate)
	router.PATCH("/authors/:id/books/metadata", booksController.MergeAuthorBooksMetadata)

	// Books
	router.POST("/books", booksController.CreateBook)
	router.GET("/books", booksController.ListBooks)
	router.GET("/books/with-authors", booksController.ListBooksWithAuthors)
	router.GET("/books/search", statsController.SearchBooks)
	router.GET("/books/:id", booksController.GetBook)
	router.PUT("/books/:id", booksController.UpdateBook)
	router.DELETE("/books/:id", booksController.DeleteBook)

	// Reports
	router.GET("/stats/books-per-author", statsController.BooksPerAuthor)

	return router
}
