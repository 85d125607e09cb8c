package catalog

import (
	"context"
	"errors"

	"github.com/Sqr400Flashfund/sqr400flashfund/internal/domain"
)

// Catalog resolves product identifiers for checkout and the storefront
// listing pages.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}

var ErrProductNotFound = errors.New("product not found")
