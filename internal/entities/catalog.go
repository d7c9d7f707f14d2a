package entities

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire and display format of calendar dates.
const DateLayout = "2006-01-02"

// Author is a catalog author. Books is populated by the repository, it is not a column.
type Author struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Name      string          `gorm:"uniqueIndex;not null;size:256" json:"name"`
	BirthDate *datatypes.Date `json:"birth_date,omitempty"`
	Books     []Book          `gorm:"foreignKey:AuthorID" json:"books"`
}

// Book is a catalog book. AuthorID is not constrained at the database level,
// so a book can outlive its author.
type Book struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	Title           string            `gorm:"index;not null;size:512" json:"title"`
	PublicationDate datatypes.Date    `gorm:"index;not null" json:"publication_date"`
	AuthorID        uint              `gorm:"index" json:"author_id"`
	ISBN            *string           `gorm:"uniqueIndex;size:20" json:"isbn,omitempty"`
	Metadata        datatypes.JSONMap `json:"metadata,omitempty"`
	Author          *Author           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

func (Book) TableName() string {
	return "books"
}

// NewDate returns the calendar date y-m-d at UTC midnight. Every date written to
// the store goes through here so equality and ordering compare like with like.
func NewDate(year int, month time.Month, day int) datatypes.Date {
	return datatypes.Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf drops the clock part of t.
func DateOf(t time.Time) datatypes.Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// NormalizeDate drops the clock part of d.
func NormalizeDate(d datatypes.Date) datatypes.Date {
	return DateOf(time.Time(d))
}

// NormalizeDatePtr is NormalizeDate for optional dates.
func NormalizeDatePtr(d *datatypes.Date) *datatypes.Date {
	if d == nil {
		return nil
	}
	v := NormalizeDate(*d)
	return &v
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return datatypes.Date{}, err
	}
	return DateOf(t), nil
}

// FormatDate renders d as YYYY-MM-DD.
func FormatDate(d datatypes.Date) string {
	return time.Time(d).Format(DateLayout)
}

// NormalizeISBN maps an empty ISBN to absent.
func NormalizeISBN(isbn *string) *string {
	if isbn == nil || *isbn == "" {
		return nil
	}
	v := *isbn
	return &v
}
