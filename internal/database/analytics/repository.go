// Package analytics provides read-only aggregate and search queries over the catalog.
package analytics

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
)

// searchBatchSize bounds how many books are held in memory while scanning metadata.
const searchBatchSize = 500

// AuthorBookCount is one row of CountBooksByAuthor.
type AuthorBookCount struct {
	AuthorID   uint   `json:"author_id"`
	AuthorName string `json:"author_name"`
	BookCount  int64  `json:"book_count"`
}

// Repository handles catalog aggregation and search.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new analytics repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountBooksByAuthor returns the number of books of every author that has at
// least one, ordered by author id.
func (r *Repository) CountBooksByAuthor(ctx context.Context) ([]AuthorBookCount, error) {
	counts := []AuthorBookCount{}
	err := r.db.WithContext(ctx).
		Model(&entities.Author{}).
		Select("authors.id AS author_id, authors.name AS author_name, COUNT(books.id) AS book_count").
		Joins("JOIN books ON books.author_id = authors.id").
		Group("authors.id, authors.name").
		Order("authors.id ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, database.Translate("count books by author", err)
	}
	return counts, nil
}

// SearchBooksByMetadata returns books with a metadata key or value that
// contains query, ignoring case. Each key and scalar value is matched on its
// own, so a query never spans two of them and JSON punctuation never matches.
// Books without metadata never match.
func (r *Repository) SearchBooksByMetadata(ctx context.Context, query string) ([]entities.Book, error) {
	if strings.TrimSpace(query) == "" {
		return nil, database.ErrInvalidQuery
	}
	needle := strings.ToLower(query)

	matches := []entities.Book{}
	var batch []entities.Book
	err := r.db.WithContext(ctx).
		Where("metadata IS NOT NULL").
		FindInBatches(&batch, searchBatchSize, func(tx *gorm.DB, _ int) error {
			for _, book := range batch {
				if metadataContains(book.Metadata, needle) {
					matches = append(matches, book)
				}
			}
			return nil
		}).Error
	if err != nil {
		return nil, database.Translate("search books by metadata", err)
	}
	return matches, nil
}

func metadataContains(m map[string]any, needle string) bool {
	for _, term := range entities.MetadataTerms(m) {
		if strings.Contains(strings.ToLower(term), needle) {
			return true
		}
	}
	return false
}
