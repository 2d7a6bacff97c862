package account

import (
	"context"

	"bookstore-api/internal/domains/account/model"
	"bookstore-api/pkg/jwt"
)

// Service issues and checks bearer tokens
type Service interface {
	// Register creates an account with no roles.
	// Returns model.ErrDuplicateAccount when the email is taken.
	Register(ctx context.Context, email, rawPassword string) error

	// Authenticate returns a signed token, or model.ErrInvalidCredentials for
	// an unknown email and a wrong password alike
	Authenticate(ctx context.Context, email, rawPassword string) (string, error)

	IssueToken(a *model.Account) (string, error)

	// Authorize validates token and requires at least one of requiredRoles.
	// An empty requiredRoles accepts any valid token.
	Authorize(token string, requiredRoles []model.Role) (*jwt.Claims, error)
}
