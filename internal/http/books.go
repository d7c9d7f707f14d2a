package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// BookStore defines database operations for book management.
type BookStore interface {
	Create(ctx context.Context, book entities.Book) (*entities.Book, error)
	Get(ctx context.Context, id uint) (*entities.Book, error)
	ListSorted(ctx context.Context, skip, limit int, sortBy books.SortKey) ([]entities.Book, error)
	Update(ctx context.Context, id uint, patch entities.BookPatch) (*entities.Book, error)
	Delete(ctx context.Context, id uint) (*entities.Book, error)
	FindByAuthorAndDate(ctx context.Context, authorID uint, date datatypes.Date) ([]entities.Book, error)
	MergeMetadataByAuthor(ctx context.Context, authorID uint, metadata datatypes.JSONMap) ([]entities.Book, error)
	ListWithAuthor(ctx context.Context) ([]entities.Book, error)
}

type BooksController struct {
	store BookStore
	pages Pagination
	log   *logger.Logger
}

func NewBooksController(store BookStore, pages Pagination, log *logger.Logger) *BooksController {
	return &BooksController{store: store, pages: pages, log: log}
}

// CreateBook creates a new book for an existing author
// POST /books
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req bookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, CodeInvalidJSON, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	book, err := bc.store.Create(c.Request.Context(), req.toBook())
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusCreated, newBookResponse(book))
}

// ListBooks returns a page of books sorted by title or publication date
// GET /books?skip=&limit=&sort_by=
func (bc *BooksController) ListBooks(c *gin.Context) {
	skip, limit, ok := bc.pages.parsePage(c)
	if !ok {
		return
	}
	sortBy := books.ParseSortKey(c.Query("sort_by"))

	list, err := bc.store.ListSorted(c.Request.Context(), skip, limit, sortBy)
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponses(list))
}

// ListBooksWithAuthors returns every book with its author embedded
// GET /books/with-authors
func (bc *BooksController) ListBooksWithAuthors(c *gin.Context) {
	list, err := bc.store.ListWithAuthor(c.Request.Context())
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponses(list))
}

// GetBook returns a single book
// GET /books/:id
func (bc *BooksController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponse(book))
}

// UpdateBook changes the fields present in the body
// PUT /books/:id
func (bc *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req bookUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, CodeInvalidJSON, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	book, err := bc.store.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponse(book))
}

// DeleteBook removes a book and returns it
// DELETE /books/:id
func (bc *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponse(book))
}

// FindAuthorBooksByDate returns the books of an author published on a given day
// GET /authors/:id/books?publication_date=YYYY-MM-DD
func (bc *BooksController) FindAuthorBooksByDate(c *gin.Context) {
	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	date, err := entities.ParseDate(c.Query("publication_date"))
	if err != nil {
		respondBadRequest(c, CodeInvalidParam, "publication_date must be a date in YYYY-MM-DD format")
		return
	}

	list, err := bc.store.FindByAuthorAndDate(c.Request.Context(), authorID, date)
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponses(list))
}

// MergeAuthorBooksMetadata merges metadata into every book of an author
// PATCH /authors/:id/books/metadata
func (bc *BooksController) MergeAuthorBooksMetadata(c *gin.Context) {
	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req metadataMergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, CodeInvalidJSON, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	list, err := bc.store.MergeMetadataByAuthor(c.Request.Context(), authorID, datatypes.JSONMap(req.Metadata))
	if err != nil {
		respondStoreError(c, bc.log, err, "book")
		return
	}
	c.JSON(http.StatusOK, newBookResponses(list))
}
