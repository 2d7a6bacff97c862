package author

import (
	"context"

	"bookstore-api/internal/domains/author/model"
)

// Repository defines the interface for Author data access operations.
// *repository.Repository[*model.Author] is the production implementation.
type Repository interface {
	FindAll(ctx context.Context) ([]*model.Author, error)
	// FindByID returns found=false when absent
	FindByID(ctx context.Context, id int) (*model.Author, bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, a *model.Author) (bool, error)
	Update(ctx context.Context, a *model.Author) (bool, error)
	Delete(ctx context.Context, a *model.Author) (bool, error)
}
