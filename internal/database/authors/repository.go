// Package authors provides database operations for catalog authors.
//
// This package implements the AuthorStore interface defined in
// internal/http/authors.go.
//
// # Usage
//
//	repo := authors.NewRepository(db)
//	author, err := repo.Create(ctx, entities.Author{Name: "Agatha Christie"})
package authors

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// Repository handles all author database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new authors repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func preloadBooks(db *gorm.DB) *gorm.DB {
	return db.Preload("Books", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})
}

// Create inserts a new author. A duplicate name fails with ErrConflict.
func (r *Repository) Create(ctx context.Context, author entities.Author) (*entities.Author, error) {
	created := entities.Author{
		Name:      author.Name,
		BirthDate: entities.NormalizeDatePtr(author.BirthDate),
	}
	if err := r.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, database.Translate("create author", err)
	}
	created.Books = []entities.Book{}
	return &created, nil
}

// Get retrieves an author with its books.
func (r *Repository) Get(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	if err := preloadBooks(r.db.WithContext(ctx)).First(&author, id).Error; err != nil {
		return nil, database.Translate("get author", err)
	}
	return &author, nil
}

// FindByName retrieves an author by its unique name, without books.
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Author, error) {
	var author entities.Author
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&author).Error; err != nil {
		return nil, database.Translate("find author by name", err)
	}
	return &author, nil
}

// List returns authors in insertion order, skipping skip and returning at most limit.
func (r *Repository) List(ctx context.Context, skip, limit int) ([]entities.Author, error) {
	if err := database.ValidatePage(skip, limit); err != nil {
		return nil, err
	}
	authors := []entities.Author{}
	if limit == 0 {
		return authors, nil
	}
	err := preloadBooks(r.db.WithContext(ctx)).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&authors).Error
	if err != nil {
		return nil, database.Translate("list authors", err)
	}
	return authors, nil
}

// Update applies the set fields of patch. Fields not set keep their stored value.
func (r *Repository) Update(ctx context.Context, id uint, patch entities.AuthorPatch) (*entities.Author, error) {
	var author entities.Author
	err := database.WithTx(ctx, r.db, "update author", func(tx *gorm.DB) error {
		if err := tx.First(&author, id).Error; err != nil {
			return err
		}
		if cols := patch.Columns(); len(cols) > 0 {
			if err := tx.Model(&entities.Author{}).Where("id = ?", id).Updates(cols).Error; err != nil {
				return err
			}
		}
		author = entities.Author{}
		return preloadBooks(tx).First(&author, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Delete removes an author and returns it as it was. Books of the author are
// left in place.
func (r *Repository) Delete(ctx context.Context, id uint) (*entities.Author, error) {
	var author entities.Author
	err := database.WithTx(ctx, r.db, "delete author", func(tx *gorm.DB) error {
		if err := preloadBooks(tx).First(&author, id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Author{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &author, nil
}

// Count returns the number of authors.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Author{}).Count(&count).Error; err != nil {
		return 0, database.Translate("count authors", err)
	}
	return count, nil
}
