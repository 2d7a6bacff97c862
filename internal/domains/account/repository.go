package account

import (
	"context"

	"bookstore-api/internal/domains/account/model"
)

// Repository is the account store
type Repository interface {
	// FindByEmail returns model.ErrAccountNotFound when no account matches
	FindByEmail(ctx context.Context, email string) (*model.Account, error)

	// Create hashes rawPassword and inserts an account with no roles.
	// Returns model.ErrDuplicateAccount when the email is taken.
	Create(ctx context.Context, email, rawPassword string) (*model.Account, error)

	// ListRoles returns the role names held by the account, sorted
	ListRoles(ctx context.Context, accountID string) ([]model.Role, error)

	// AssignRoles grants roles; already held roles are ignored
	AssignRoles(ctx context.Context, accountID string, roles ...model.Role) error
}
