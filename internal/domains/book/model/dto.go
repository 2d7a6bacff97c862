package model

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"

	authorModel "bookstore-api/internal/domains/author/model"
)

// ============ RESPONSES ============

// BookDTO is the client-facing shape of a Book, with its author nested when known
type BookDTO struct {
	ID       int                    `json:"id"`
	Title    string                 `json:"title"`
	Year     *int                   `json:"year,omitempty"`
	Isbn     string                 `json:"isbn"`
	Summary  *string                `json:"summary,omitempty"`
	Image    *string                `json:"image,omitempty"`
	Price    *decimal.Decimal       `json:"price,omitempty"`
	AuthorID *int                   `json:"author_id"`
	Author   *authorModel.AuthorDTO `json:"author,omitempty"`
}

// ============ REQUESTS ============

type CreateBookRequest struct {
	Title    string           `json:"title"`
	Year     *int             `json:"year,omitempty"`
	Isbn     string           `json:"isbn"`
	Summary  *string          `json:"summary,omitempty"`
	Image    *string          `json:"image,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	AuthorID *int             `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Isbn, validation.Required),
		validation.Field(&r.Summary, validation.RuneLength(0, MaxSummaryLength)),
		validation.Field(&r.Price, validation.By(validPrice)),
		validation.Field(&r.AuthorID, validation.Required),
	)
}

// UpdateBookRequest replaces every field of the book with the given id
type UpdateBookRequest struct {
	ID       int              `json:"id"`
	Title    string           `json:"title"`
	Year     *int             `json:"year,omitempty"`
	Isbn     string           `json:"isbn"`
	Summary  *string          `json:"summary,omitempty"`
	Image    *string          `json:"image,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	AuthorID *int             `json:"author_id"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Isbn, validation.Required),
		validation.Field(&r.Summary, validation.RuneLength(0, MaxSummaryLength)),
		validation.Field(&r.Price, validation.By(validPrice)),
		validation.Field(&r.AuthorID, validation.Required),
	)
}

var (
	errNegativePrice = errors.New("must be no less than 0")
	errPriceTooLarge = fmt.Errorf("must be no greater than %s", MaxPrice.StringFixed(PriceScale))
	errPriceScale    = fmt.Errorf("must have at most %d decimal places", PriceScale)
)

func validPrice(value interface{}) error {
	p, _ := value.(*decimal.Decimal)
	switch {
	case p == nil:
		return nil
	case p.IsNegative():
		return errNegativePrice
	case p.GreaterThan(MaxPrice):
		return errPriceTooLarge
	case !p.Equal(p.Round(PriceScale)):
		return errPriceScale
	}
	return nil
}
