package ports

import (
	"context"

	"github.com/girafadepapel/storefront-service/internal/domain/catalog"
)

type ProductFilter struct {
	Category string
	Featured *bool
}

type ProductRepository interface {
	List(ctx context.Context, filter ProductFilter) ([]*catalog.Product, error)
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id string) error
}

type BannerRepository interface {
	ListActive(ctx context.Context) ([]*catalog.Banner, error)
	ListAll(ctx context.Context) ([]*catalog.Banner, error)
	GetByID(ctx context.Context, id string) (*catalog.Banner, error)
	Create(ctx context.Context, b *catalog.Banner) error
	Update(ctx context.Context, b *catalog.Banner) error
	Delete(ctx context.Context, id string) error
}

type ColorRepository interface {
	List(ctx context.Context) ([]*catalog.Color, error)
	GetByID(ctx context.Context, id string) (*catalog.Color, error)
	Create(ctx context.Context, c *catalog.Color) error
	Update(ctx context.Context, c *catalog.Color) error
	Delete(ctx context.Context, id string) error
}
