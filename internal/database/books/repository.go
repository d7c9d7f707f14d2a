// Package books provides database operations for catalog books.
//
// This package implements the BookStore interface defined in
// internal/http/books.go.
//
// # Usage
//
//	repo := books.NewRepository(db, log)
//	book, err := repo.Get(ctx, 123)
package books

import (
	"context"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// SortKey selects the ordering of ListSorted.
type SortKey string

const (
	SortByTitle           SortKey = "title"
	SortByPublicationDate SortKey = "publication_date"
)

// ParseSortKey maps a client supplied sort key. Anything unrecognised sorts by title.
func ParseSortKey(s string) SortKey {
	if SortKey(s) == SortByPublicationDate {
		return SortByPublicationDate
	}
	return SortByTitle
}

// Repository handles all book database operations.
type Repository struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB, log *logger.Logger) *Repository {
	return &Repository{db: db, log: log.With("repo", "books")}
}

// ensureAuthor fails with ErrAuthorNotFound unless the author exists.
func ensureAuthor(tx *gorm.DB, authorID uint) error {
	var count int64
	if err := tx.Model(&entities.Author{}).Where("id = ?", authorID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return database.ErrAuthorNotFound
	}
	return nil
}

// Create inserts a new book. The author must exist; a duplicate ISBN fails
// with ErrConflict.
func (r *Repository) Create(ctx context.Context, book entities.Book) (*entities.Book, error) {
	created := entities.Book{
		Title:           book.Title,
		PublicationDate: entities.NormalizeDate(book.PublicationDate),
		AuthorID:        book.AuthorID,
		ISBN:            entities.NormalizeISBN(book.ISBN),
		Metadata:        entities.CloneMetadata(book.Metadata),
	}
	err := database.WithTx(ctx, r.db, "create book", func(tx *gorm.DB) error {
		if err := ensureAuthor(tx, created.AuthorID); err != nil {
			return err
		}
		return tx.Create(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Get retrieves a book by ID.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, database.Translate("get book", err)
	}
	return &book, nil
}

// List returns books in insertion order.
func (r *Repository) List(ctx context.Context, skip, limit int) ([]entities.Book, error) {
	return r.list(ctx, "list books", skip, limit, "id ASC")
}

// ListSorted returns books ordered ascending by sortBy, ties in insertion order.
func (r *Repository) ListSorted(ctx context.Context, skip, limit int, sortBy SortKey) ([]entities.Book, error) {
	order := string(ParseSortKey(string(sortBy))) + " ASC, id ASC"
	return r.list(ctx, "list sorted books", skip, limit, order)
}

func (r *Repository) list(ctx context.Context, op string, skip, limit int, order string) ([]entities.Book, error) {
	if err := database.ValidatePage(skip, limit); err != nil {
		return nil, err
	}
	books := []entities.Book{}
	if limit == 0 {
		return books, nil
	}
	err := r.db.WithContext(ctx).Order(order).Offset(skip).Limit(limit).Find(&books).Error
	if err != nil {
		return nil, database.Translate(op, err)
	}
	return books, nil
}

// Update applies the set fields of patch. Changing the author requires the
// new author to exist.
func (r *Repository) Update(ctx context.Context, id uint, patch entities.BookPatch) (*entities.Book, error) {
	var book entities.Book
	err := database.WithTx(ctx, r.db, "update book", func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		if authorID, ok := patch.AuthorID.Get(); ok && authorID != book.AuthorID {
			if err := ensureAuthor(tx, authorID); err != nil {
				return err
			}
		}
		cols := patch.Columns()
		if len(cols) == 0 {
			return nil
		}
		if err := tx.Model(&entities.Book{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return err
		}
		book = entities.Book{}
		return tx.First(&book, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// Delete removes a book and returns it as it was.
func (r *Repository) Delete(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	err := database.WithTx(ctx, r.db, "delete book", func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Book{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByAuthorAndDate returns the books of authorID published exactly on date.
func (r *Repository) FindByAuthorAndDate(ctx context.Context, authorID uint, date datatypes.Date) ([]entities.Book, error) {
	books := []entities.Book{}
	err := r.db.WithContext(ctx).
		Where("author_id = ? AND publication_date = ?", authorID, entities.NormalizeDate(date)).
		Order("id ASC").
		Find(&books).Error
	if err != nil {
		return nil, database.Translate("find books by author and date", err)
	}
	return books, nil
}

// MergeMetadataByAuthor merges metadata key by key into every book of
// authorID. A book without metadata receives its own copy of metadata.
// Either every book is updated or none is.
func (r *Repository) MergeMetadataByAuthor(ctx context.Context, authorID uint, metadata datatypes.JSONMap) ([]entities.Book, error) {
	books := []entities.Book{}
	err := database.WithTx(ctx, r.db, "merge book metadata", func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", authorID).Order("id ASC").Find(&books).Error; err != nil {
			return err
		}
		for i := range books {
			merged := entities.MergeMetadata(books[i].Metadata, metadata)
			err := tx.Model(&entities.Book{}).
				Where("id = ?", books[i].ID).
				Update("metadata", merged).Error
			if err != nil {
				return err
			}
			books[i].Metadata = merged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debug("merged book metadata", "author_id", authorID, "books", len(books), "keys", len(metadata))
	return books, nil
}

// ListWithAuthor returns every book with its author loaded, using one query
// for the books and one for their authors. Books whose author was deleted
// carry a nil Author.
func (r *Repository) ListWithAuthor(ctx context.Context) ([]entities.Book, error) {
	books := []entities.Book{}
	if err := r.db.WithContext(ctx).Preload("Author").Order("id ASC").Find(&books).Error; err != nil {
		return nil, database.Translate("list books with author", err)
	}
	return books, nil
}

// Count returns the number of books.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error; err != nil {
		return 0, database.Translate("count books", err)
	}
	return count, nil
}
