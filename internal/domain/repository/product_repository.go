package repository

import (
	"context"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uint) (*entity.Product, error)
	// GetByIDWithDetails loads the category and the line items referencing the product
	GetByIDWithDetails(ctx context.Context, id uint) (*entity.Product, error)
	GetAllWithDetails(ctx context.Context) ([]entity.Product, error)
	GetByCategoryID(ctx context.Context, categoryID uint) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uint) error
	DeleteByCategoryID(ctx context.Context, categoryID uint) error
}

// ProductCategoryRepository defines the interface for category data operations
type ProductCategoryRepository interface {
	Create(ctx context.Context, category *entity.ProductCategory) error
	GetByID(ctx context.Context, id uint) (*entity.ProductCategory, error)
	// GetAll returns every category with its products loaded
	GetAll(ctx context.Context) ([]entity.ProductCategory, error)
	Update(ctx context.Context, category *entity.ProductCategory) error
	Delete(ctx context.Context, id uint) error
}
