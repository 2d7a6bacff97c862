package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// AuthorDTO is the client-facing shape of an Author
type AuthorDTO struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio,omitempty"`
}

type CreateAuthorRequest struct {
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio,omitempty"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
	)
}

type UpdateAuthorRequest struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio,omitempty"`
}

// Validate checks field constraints only; the id is matched against the path by the handler
func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required),
		validation.Field(&r.LastName, validation.Required),
	)
}
