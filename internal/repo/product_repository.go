package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/product-store/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Insert(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, match NameMatch) (int, error)
	FindByNamePrefix(ctx context.Context, prefix string) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	Stats(ctx context.Context) (Stats, error)
}

var (
	// ErrEmptyMatch is returned when a prefix delete would match every product.
	ErrEmptyMatch = errors.New("empty name prefix matches every product")
	// ErrInvalidQuantity is returned for a negative quantity.
	ErrInvalidQuantity = errors.New("quantity out of range")
)
