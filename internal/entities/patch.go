package entities

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// Patch is an optional field of a partial update. Set reports whether the
// caller supplied the field at all; Value is only meaningful when Set is true.
// Decoding JSON marks the field as set whenever its key is present, including
// an explicit null.
type Patch[T any] struct {
	Value T
	Set   bool
}

// Some returns a set patch holding v.
func Some[T any](v T) Patch[T] {
	return Patch[T]{Value: v, Set: true}
}

// Get returns the value and whether it was set.
func (p Patch[T]) Get() (T, bool) {
	return p.Value, p.Set
}

func (p *Patch[T]) UnmarshalJSON(data []byte) error {
	p.Set = true
	return json.Unmarshal(data, &p.Value)
}

// AuthorPatch enumerates the updatable author fields.
type AuthorPatch struct {
	Name      Patch[string]
	BirthDate Patch[*datatypes.Date]
}

// BookPatch enumerates the updatable book fields. Metadata replaces the whole
// mapping; use the metadata merge operation for key-wise updates.
type BookPatch struct {
	Title           Patch[string]
	PublicationDate Patch[datatypes.Date]
	AuthorID        Patch[uint]
	ISBN            Patch[*string]
	Metadata        Patch[datatypes.JSONMap]
}

// Columns returns the column assignments for the set fields.
func (p AuthorPatch) Columns() map[string]any {
	cols := make(map[string]any, 2)
	if v, ok := p.Name.Get(); ok {
		cols["name"] = v
	}
	if v, ok := p.BirthDate.Get(); ok {
		cols["birth_date"] = NormalizeDatePtr(v)
	}
	return cols
}

// Columns returns the column assignments for the set fields.
func (p BookPatch) Columns() map[string]any {
	cols := make(map[string]any, 5)
	if v, ok := p.Title.Get(); ok {
		cols["title"] = v
	}
	if v, ok := p.PublicationDate.Get(); ok {
		cols["publication_date"] = NormalizeDate(v)
	}
	if v, ok := p.AuthorID.Get(); ok {
		cols["author_id"] = v
	}
	if v, ok := p.ISBN.Get(); ok {
		cols["isbn"] = NormalizeISBN(v)
	}
	if v, ok := p.Metadata.Get(); ok {
		cols["metadata"] = CloneMetadata(v)
	}
	return cols
}
