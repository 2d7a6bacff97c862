package book

import (
	"context"

	"bookstore-api/internal/domains/book/model"
)

// Repository defines the interface for Book data access operations
type Repository interface {
	FindAll(ctx context.Context) ([]*model.Book, error)
	FindByID(ctx context.Context, id int) (*model.Book, bool, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, b *model.Book) (bool, error)
	Update(ctx context.Context, b *model.Book) (bool, error)
	Delete(ctx context.Context, b *model.Book) (bool, error)
}
