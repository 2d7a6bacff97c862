package model

import (
	"github.com/shopspring/decimal"

	authorModel "bookstore-api/internal/domains/author/model"
)

// ToDTO maps a Book; author may be nil when the book has no (known) author
func (b *Book) ToDTO(author *authorModel.Author) *BookDTO {
	dto := &BookDTO{
		ID:       b.ID,
		Title:    b.Title,
		Year:     b.Year,
		Isbn:     b.Isbn,
		Summary:  b.Summary,
		Image:    b.Image,
		AuthorID: b.AuthorID,
		Author:   author.ToDTO(),
	}
	if b.Price.Valid {
		p := b.Price.Decimal
		dto.Price = &p
	}
	return dto
}

func (r CreateBookRequest) ToEntity() *Book {
	return &Book{
		Title:    r.Title,
		Year:     r.Year,
		Isbn:     r.Isbn,
		Summary:  r.Summary,
		Image:    r.Image,
		Price:    nullDecimal(r.Price),
		AuthorID: r.AuthorID,
	}
}

func (r UpdateBookRequest) ToEntity() *Book {
	return &Book{
		ID:       r.ID,
		Title:    r.Title,
		Year:     r.Year,
		Isbn:     r.Isbn,
		Summary:  r.Summary,
		Image:    r.Image,
		Price:    nullDecimal(r.Price),
		AuthorID: r.AuthorID,
	}
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}
