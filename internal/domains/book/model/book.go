package model

import (
	"github.com/shopspring/decimal"

	"bookstore-api/internal/repository"
)

// MaxSummaryLength bounds Book.Summary in characters
const MaxSummaryLength = 500

// Price matches the NUMERIC(12, 2) column: two decimal places, below 10^10
const PriceScale = 2

var MaxPrice = decimal.New(1, 10).Sub(decimal.New(1, -PriceScale))

// Book - Domain Entity (from database)
type Book struct {
	ID      int                 `json:"id" db:"id"`
	Title   string              `json:"title" db:"title"`
	Year    *int                `json:"year" db:"year"`
	Isbn    string              `json:"isbn" db:"isbn"`
	Summary *string             `json:"summary" db:"summary"`
	Image   *string             `json:"image" db:"image"` // path to the image (e.g. on a CDN)
	Price   decimal.NullDecimal `json:"price" db:"price"`

	// Nullable at the entity level; required on input
	AuthorID *int `json:"author_id" db:"author_id"`
}

func (b *Book) GetID() int   { return b.ID }
func (b *Book) SetID(id int) { b.ID = id }

var Table = repository.Table[*Book]{
	Name:    "books",
	Columns: []string{"title", "year", "isbn", "summary", "image", "price", "author_id"},
	New:     func() *Book { return &Book{} },
	Values: func(b *Book) []any {
		return []any{b.Title, b.Year, b.Isbn, b.Summary, b.Image, b.Price, b.AuthorID}
	},
	Fields: func(b *Book) []any {
		return []any{&b.ID, &b.Title, &b.Year, &b.Isbn, &b.Summary, &b.Image, &b.Price, &b.AuthorID}
	},
}
