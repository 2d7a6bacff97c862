package model

import (
	"bookstore-api/internal/repository"
)

type Author struct {
	ID        int     `json:"id" db:"id"`
	FirstName string  `json:"first_name" db:"first_name"`
	LastName  string  `json:"last_name" db:"last_name"`
	Bio       *string `json:"bio" db:"bio"`
}

func (a *Author) GetID() int   { return a.ID }
func (a *Author) SetID(id int) { a.ID = id }

// Table maps Author onto the authors table
var Table = repository.Table[*Author]{
	Name:    "authors",
	Columns: []string{"first_name", "last_name", "bio"},
	New:     func() *Author { return &Author{} },
	Values: func(a *Author) []any {
		return []any{a.FirstName, a.LastName, a.Bio}
	},
	Fields: func(a *Author) []any {
		return []any{&a.ID, &a.FirstName, &a.LastName, &a.Bio}
	},
}
