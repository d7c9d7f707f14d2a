package http

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gorm.io/datatypes"

	"github.com/mrlokans/catalog/internal/entities"
)

var isbnPattern = regexp.MustCompile(`^[0-9Xx-]{10,20}$`)

var (
	nameRules  = []validation.Rule{validation.Required, validation.Length(1, 256), validation.By(notBlank)}
	titleRules = []validation.Rule{validation.Required, validation.Length(1, 512), validation.By(notBlank)}
	dateRules  = []validation.Rule{validation.Date(entities.DateLayout).Error("must be a date in YYYY-MM-DD format")}
	isbnRules  = []validation.Rule{validation.Match(isbnPattern).Error("must be 10 to 20 digits, dashes or X")}
)

func notBlank(value interface{}) error {
	if s, ok := value.(string); ok && s != "" && strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// validatePatch validates the value of p only when the client supplied it.
func validatePatch[T any](p entities.Patch[T], rules ...validation.Rule) error {
	if !p.Set {
		return nil
	}
	return validation.Validate(p.Value, rules...)
}

func parseOptionalDate(s *string) *datatypes.Date {
	if s == nil || *s == "" {
		return nil
	}
	d, _ := entities.ParseDate(*s)
	return &d
}

// ========================================
// AUTHOR DTOs
// ========================================

type authorCreateRequest struct {
	Name      string  `json:"name"`
	BirthDate *string `json:"birth_date"`
}

func (r authorCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, nameRules...),
		validation.Field(&r.BirthDate, dateRules...),
	)
}

// toAuthor converts a validated request.
func (r authorCreateRequest) toAuthor() entities.Author {
	return entities.Author{
		Name:      r.Name,
		BirthDate: parseOptionalDate(r.BirthDate),
	}
}

// authorUpdateRequest only carries the keys present in the body. An explicit
// null birth_date clears it.
type authorUpdateRequest struct {
	Name      entities.Patch[string]  `json:"name"`
	BirthDate entities.Patch[*string] `json:"birth_date"`
}

func (r authorUpdateRequest) Validate() error {
	return validation.Errors{
		"name":       validatePatch(r.Name, nameRules...),
		"birth_date": validatePatch(r.BirthDate, dateRules...),
	}.Filter()
}

func (r authorUpdateRequest) toPatch() entities.AuthorPatch {
	var patch entities.AuthorPatch
	if v, ok := r.Name.Get(); ok {
		patch.Name = entities.Some(v)
	}
	if v, ok := r.BirthDate.Get(); ok {
		patch.BirthDate = entities.Some(parseOptionalDate(v))
	}
	return patch
}

// ========================================
// BOOK DTOs
// ========================================

type bookCreateRequest struct {
	Title           string         `json:"title"`
	PublicationDate string         `json:"publication_date"`
	AuthorID        uint           `json:"author_id"`
	ISBN            *string        `json:"isbn"`
	Metadata        map[string]any `json:"metadata"`
}

func (r bookCreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, titleRules...),
		validation.Field(&r.PublicationDate, append([]validation.Rule{validation.Required}, dateRules...)...),
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.ISBN, isbnRules...),
	)
}

func (r bookCreateRequest) toBook() entities.Book {
	date, _ := entities.ParseDate(r.PublicationDate)
	book := entities.Book{
		Title:           r.Title,
		PublicationDate: date,
		AuthorID:        r.AuthorID,
		ISBN:            r.ISBN,
	}
	if r.Metadata != nil {
		book.Metadata = datatypes.JSONMap(r.Metadata)
	}
	return book
}

// bookUpdateRequest only carries the keys present in the body. metadata
// replaces the stored mapping as a whole; null clears it, as it does isbn.
type bookUpdateRequest struct {
	Title           entities.Patch[string]         `json:"title"`
	PublicationDate entities.Patch[string]         `json:"publication_date"`
	AuthorID        entities.Patch[uint]           `json:"author_id"`
	ISBN            entities.Patch[*string]        `json:"isbn"`
	Metadata        entities.Patch[map[string]any] `json:"metadata"`
}

func (r bookUpdateRequest) Validate() error {
	return validation.Errors{
		"title":            validatePatch(r.Title, titleRules...),
		"publication_date": validatePatch(r.PublicationDate, append([]validation.Rule{validation.Required}, dateRules...)...),
		"author_id":        validatePatch(r.AuthorID, validation.Required),
		"isbn":             validatePatch(r.ISBN, isbnRules...),
	}.Filter()
}

func (r bookUpdateRequest) toPatch() entities.BookPatch {
	var patch entities.BookPatch
	if v, ok := r.Title.Get(); ok {
		patch.Title = entities.Some(v)
	}
	if v, ok := r.PublicationDate.Get(); ok {
		date, _ := entities.ParseDate(v)
		patch.PublicationDate = entities.Some(date)
	}
	if v, ok := r.AuthorID.Get(); ok {
		patch.AuthorID = entities.Some(v)
	}
	if v, ok := r.ISBN.Get(); ok {
		patch.ISBN = entities.Some(v)
	}
	if v, ok := r.Metadata.Get(); ok {
		var metadata datatypes.JSONMap
		if v != nil {
			metadata = datatypes.JSONMap(v)
		}
		patch.Metadata = entities.Some(metadata)
	}
	return patch
}

// metadataMergeRequest is the body of a metadata merge. An empty object is
// accepted and changes nothing.
type metadataMergeRequest struct {
	Metadata map[string]any `json:"metadata"`
}

func (r metadataMergeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Metadata, validation.NotNil),
	)
}
