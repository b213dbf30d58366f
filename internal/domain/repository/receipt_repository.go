package repository

import (
	"context"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt data operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uint) (*entity.Receipt, error)
	// GetByIDWithDetails loads line items with product and category, and the
	// customer with its person
	GetByIDWithDetails(ctx context.Context, id uint) (*entity.Receipt, error)
	GetAllWithDetails(ctx context.Context) ([]entity.Receipt, error)
	GetByCustomerID(ctx context.Context, customerID uint) ([]entity.Receipt, error)
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id uint) error
}

// ReceiptDetailRepository defines the interface for line item data operations
type ReceiptDetailRepository interface {
	Create(ctx context.Context, detail *entity.ReceiptDetail) error
	// GetAllWithDetails returns every line item with product and category loaded
	GetAllWithDetails(ctx context.Context) ([]entity.ReceiptDetail, error)
	GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.ReceiptDetail, error)
	Update(ctx context.Context, detail *entity.ReceiptDetail) error
	Delete(ctx context.Context, id uint) error
	DeleteByReceiptIDs(ctx context.Context, receiptIDs []uint) error
	DeleteByProductIDs(ctx context.Context, productIDs []uint) error
}
