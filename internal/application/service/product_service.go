package service

import (
	"context"
	"fmt"

	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// ProductService handles product and category operations
type ProductService struct {
	uow repository.UnitOfWork
}

// NewProductService creates a new product service
func NewProductService(uow repository.UnitOfWork) *ProductService {
	return &ProductService{uow: uow}
}

// GetAll returns every product with its category and line items
func (s *ProductService) GetAll(ctx context.Context) ([]model.ProductModel, error) {
	products, err := s.uow.Products().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return model.FromProducts(products), nil
}

// GetByID returns the product, or nil when it does not exist
func (s *ProductService) GetByID(ctx context.Context, id uint) (*model.ProductModel, error) {
	product, err := s.uow.Products().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	m := model.FromProduct(product)
	return &m, nil
}

// Add creates a product in an existing category and writes the new id into m
func (s *ProductService) Add(ctx context.Context, m *model.ProductModel) error {
	if err := validateProduct(m); err != nil {
		return err
	}

	product := model.ToProduct(m)
	product.ID = 0
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		if err := requireCategory(ctx, tx, product.ProductCategoryID); err != nil {
			return err
		}
		return tx.Products().Create(ctx, product)
	})
	if err != nil {
		return err
	}

	m.ID = product.ID
	return nil
}

// Update replaces the name, price and category of an existing product
func (s *ProductService) Update(ctx context.Context, m *model.ProductModel) error {
	if err := validateProduct(m); err != nil {
		return err
	}

	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		existing, err := tx.Products().GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewValidationError("product does not exist")
		}
		if err := requireCategory(ctx, tx, m.ProductCategoryID); err != nil {
			return err
		}

		existing.ProductName = m.ProductName
		existing.ProductCategoryID = m.ProductCategoryID
		existing.SetPriceFromDecimal(m.Price)
		return tx.Products().Update(ctx, existing)
	})
}

// Delete removes the product and every line item that references it
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		existing, err := tx.Products().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewValidationError("product does not exist")
		}
		if err := tx.ReceiptDetails().DeleteByProductIDs(ctx, []uint{id}); err != nil {
			return err
		}
		return tx.Products().Delete(ctx, id)
	})
}

// GetByFilter returns the products matching every bound set on filter
func (s *ProductService) GetByFilter(ctx context.Context, filter *model.FilterSearchModel) ([]model.ProductModel, error) {
	products, err := s.uow.Products().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return model.FromProducts(products), nil
	}

	matched := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if filter.CategoryID != nil && p.ProductCategoryID != *filter.CategoryID {
			continue
		}
		if filter.MinPrice != nil && p.Price < entity.DecimalToMoney(*filter.MinPrice) {
			continue
		}
		if filter.MaxPrice != nil && p.Price > entity.DecimalToMoney(*filter.MaxPrice) {
			continue
		}
		matched = append(matched, p)
	}
	return model.FromProducts(matched), nil
}

// GetAllProductCategories returns every category with its product ids
func (s *ProductService) GetAllProductCategories(ctx context.Context) ([]model.ProductCategoryModel, error) {
	categories, err := s.uow.Categories().GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return model.FromCategories(categories), nil
}

// AddCategory creates a category and writes the new id into m
func (s *ProductService) AddCategory(ctx context.Context, m *model.ProductCategoryModel) error {
	if err := validateCategory(m); err != nil {
		return err
	}

	category := model.ToCategory(m)
	category.ID = 0
	if err := s.uow.Categories().Create(ctx, category); err != nil {
		return err
	}

	m.ID = category.ID
	return nil
}

// UpdateCategory renames an existing category
func (s *ProductService) UpdateCategory(ctx context.Context, m *model.ProductCategoryModel) error {
	if err := validateCategory(m); err != nil {
		return err
	}

	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		existing, err := tx.Categories().GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewValidationError("category does not exist")
		}
		existing.CategoryName = m.CategoryName
		return tx.Categories().Update(ctx, existing)
	})
}

// RemoveCategory removes the category with its products and their line items
func (s *ProductService) RemoveCategory(ctx context.Context, id uint) error {
	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		existing, err := tx.Categories().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewValidationError("category does not exist")
		}

		products, err := tx.Products().GetByCategoryID(ctx, id)
		if err != nil {
			return err
		}
		productIDs := make([]uint, 0, len(products))
		for _, p := range products {
			productIDs = append(productIDs, p.ID)
		}
		if err := tx.ReceiptDetails().DeleteByProductIDs(ctx, productIDs); err != nil {
			return err
		}
		if err := tx.Products().DeleteByCategoryID(ctx, id); err != nil {
			return err
		}
		return tx.Categories().Delete(ctx, id)
	})
}

func requireCategory(ctx context.Context, tx repository.UnitOfWork, id uint) error {
	category, err := tx.Categories().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewValidationError("product category does not exist")
	}
	return nil
}

func validateProduct(m *model.ProductModel) error {
	if m == nil {
		return apperror.NewValidationError("product is required")
	}
	if isBlank(m.ProductName) {
		return apperror.NewValidationError("product name is required")
	}
	if m.Price < 0 {
		return apperror.NewValidationError("price must not be negative")
	}
	if !entity.FitsMoneyScale(m.Price) {
		return apperror.NewValidationError(fmt.Sprintf("price must not have more than %d decimal places", entity.MoneyDecimals))
	}
	return nil
}

func validateCategory(m *model.ProductCategoryModel) error {
	if m == nil {
		return apperror.NewValidationError("category is required")
	}
	if isBlank(m.CategoryName) {
		return apperror.NewValidationError("category name is required")
	}
	return nil
}
