package http

import "github.com/mrlokans/catalog/internal/entities"

// BookResponse is the wire form of a book. Dates are YYYY-MM-DD.
type BookResponse struct {
	ID              uint           `json:"id"`
	Title           string         `json:"title"`
	PublicationDate string         `json:"publication_date"`
	AuthorID        uint           `json:"author_id"`
	ISBN            *string        `json:"isbn"`
	Metadata        map[string]any `json:"metadata"`
	Author          *AuthorSummary `json:"author,omitempty"`
}

// AuthorSummary is an author without its books, embedded in book listings.
type AuthorSummary struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	BirthDate *string `json:"birth_date"`
}

// AuthorResponse is the wire form of an author with its books.
type AuthorResponse struct {
	AuthorSummary
	Books []BookResponse `json:"books"`
}

func newAuthorSummary(a *entities.Author) *AuthorSummary {
	if a == nil {
		return nil
	}
	summary := &AuthorSummary{ID: a.ID, Name: a.Name}
	if a.BirthDate != nil {
		s := entities.FormatDate(*a.BirthDate)
		summary.BirthDate = &s
	}
	return summary
}

func newAuthorResponse(a *entities.Author) AuthorResponse {
	return AuthorResponse{
		AuthorSummary: *newAuthorSummary(a),
		Books:         newBookResponses(a.Books),
	}
}

func newAuthorResponses(authors []entities.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for i := range authors {
		out = append(out, newAuthorResponse(&authors[i]))
	}
	return out
}

func newBookResponse(b *entities.Book) BookResponse {
	resp := BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		PublicationDate: entities.FormatDate(b.PublicationDate),
		AuthorID:        b.AuthorID,
		ISBN:            b.ISBN,
		Author:          newAuthorSummary(b.Author),
	}
	if len(b.Metadata) > 0 {
		resp.Metadata = map[string]any(b.Metadata)
	}
	return resp
}

func newBookResponses(books []entities.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for i := range books {
		out = append(out, newBookResponse(&books[i]))
	}
	return out
}
