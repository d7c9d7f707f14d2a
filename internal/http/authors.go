package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// AuthorStore defines database operations for author management.
type AuthorStore interface {
	Create(ctx context.Context, author entities.Author) (*entities.Author, error)
	Get(ctx context.Context, id uint) (*entities.Author, error)
	List(ctx context.Context, skip, limit int) ([]entities.Author, error)
	Update(ctx context.Context, id uint, patch entities.AuthorPatch) (*entities.Author, error)
	Delete(ctx context.Context, id uint) (*entities.Author, error)
}

type AuthorsController struct {
	store AuthorStore
	pages Pagination
	log   *logger.Logger
}

func NewAuthorsController(store AuthorStore, pages Pagination, log *logger.Logger) *AuthorsController {
	return &AuthorsController{store: store, pages: pages, log: log}
}

// CreateAuthor creates a new author
// POST /authors
func (ac *AuthorsController) CreateAuthor(c *gin.Context) {
	var req authorCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, CodeInvalidJSON, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	author, err := ac.store.Create(c.Request.Context(), req.toAuthor())
	if err != nil {
		respondStoreError(c, ac.log, err, "author")
		return
	}
	c.JSON(http.StatusCreated, newAuthorResponse(author))
}

// ListAuthors returns a page of authors in creation order
// GET /authors?skip=&limit=
func (ac *AuthorsController) ListAuthors(c *gin.Context) {
	skip, limit, ok := ac.pages.parsePage(c)
	if !ok {
		return
	}

	authors, err := ac.store.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondStoreError(c, ac.log, err, "author")
		return
	}
	c.JSON(http.StatusOK, newAuthorResponses(authors))
}

// GetAuthor returns an author with its books
// GET /authors/:id
func (ac *AuthorsController) GetAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, ac.log, err, "author")
		return
	}
	c.JSON(http.StatusOK, newAuthorResponse(author))
}

// UpdateAuthor changes the fields present in the body
// PUT /authors/:id
func (ac *AuthorsController) UpdateAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req authorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, CodeInvalidJSON, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondValidationError(c, err)
		return
	}

	author, err := ac.store.Update(c.Request.Context(), id, req.toPatch())
	if err != nil {
		respondStoreError(c, ac.log, err, "author")
		return
	}
	c.JSON(http.StatusOK, newAuthorResponse(author))
}

// DeleteAuthor removes an author and returns it. Its books are kept.
// DELETE /authors/:id
func (ac *AuthorsController) DeleteAuthor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	author, err := ac.store.Delete(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, ac.log, err, "author")
		return
	}
	c.JSON(http.StatusOK, newAuthorResponse(author))
}
