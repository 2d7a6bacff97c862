package validation

import (
	"errors"
	"testing"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Title string
	Isbn  string
}

func (s sample) Validate() error {
	return ozzo.ValidateStruct(&s,
		ozzo.Field(&s.Title, ozzo.Required),
		ozzo.Field(&s.Isbn, ozzo.Required),
	)
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
	assert.Nil(t, FromError(sample{Title: "x", Isbn: "1"}.Validate()))
}

func TestFromErrorSortsFields(t *testing.T) {
	v := FromError(sample{}.Validate())

	assert.Equal(t, []Violation{
		{Field: "Isbn", Message: "cannot be blank"},
		{Field: "Title", Message: "cannot be blank"},
	}, v)
}

func TestFromErrorNested(t *testing.T) {
	err := ozzo.Errors{"author": ozzo.Errors{"first_name": errors.New("cannot be blank")}}

	assert.Equal(t, []Violation{{Field: "author.first_name", Message: "cannot be blank"}}, FromError(err))
}

func TestFromErrorPlain(t *testing.T) {
	assert.Equal(t, []Violation{{Message: "boom"}}, FromError(errors.New("boom")))
}
