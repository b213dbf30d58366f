package repository

import (
	"context"
	"errors"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetByIDWithDetails(ctx context.Context, id uint) (*entity.Product, error) {
	var product entity.Product
	err := r.withDetails(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) GetAllWithDetails(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.withDetails(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCategoryID(ctx context.Context, categoryID uint) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("product_category_id = ?", categoryID).
		Order("id ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) DeleteByCategoryID(ctx context.Context, categoryID uint) error {
	return r.db.WithContext(ctx).
		Where("product_category_id = ?", categoryID).
		Delete(&entity.Product{}).Error
}

func (r *productRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Category").
		Preload("ReceiptDetails", orderByID)
}

type productCategoryRepository struct {
	db *gorm.DB
}

// NewProductCategoryRepository creates a new category repository
func NewProductCategoryRepository(db *gorm.DB) domainRepo.ProductCategoryRepository {
	return &productCategoryRepository{db: db}
}

func (r *productCategoryRepository) Create(ctx context.Context, category *entity.ProductCategory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
}

func (r *productCategoryRepository) GetByID(ctx context.Context, id uint) (*entity.ProductCategory, error) {
	var category entity.ProductCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &category, err
}

func (r *productCategoryRepository) GetAll(ctx context.Context) ([]entity.ProductCategory, error) {
	var categories []entity.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Products", orderByID).
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

func (r *productCategoryRepository) Update(ctx context.Context, category *entity.ProductCategory) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
}

func (r *productCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductCategory{}, "id = ?", id).Error
}
