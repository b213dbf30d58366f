package repository

import (
	"context"
	"errors"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetByIDWithDetails(ctx context.Context, id uint) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.withDetails(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

func (r *receiptRepository) GetAllWithDetails(ctx context.Context) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.withDetails(ctx).Order("id ASC").Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) GetByCustomerID(ctx context.Context, customerID uint) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Find(&receipts).Error
	return receipts, err
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(receipt).Error
}

func (r *receiptRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
}

func (r *receiptRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ReceiptDetails", orderByID).
		Preload("ReceiptDetails.Product").
		Preload("ReceiptDetails.Product.Category").
		Preload("Customer").
		Preload("Customer.Person")
}

type receiptDetailRepository struct {
	db *gorm.DB
}

// NewReceiptDetailRepository creates a new line item repository
func NewReceiptDetailRepository(db *gorm.DB) domainRepo.ReceiptDetailRepository {
	return &receiptDetailRepository{db: db}
}

func (r *receiptDetailRepository) Create(ctx context.Context, detail *entity.ReceiptDetail) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(detail).Error
}

func (r *receiptDetailRepository) GetAllWithDetails(ctx context.Context) ([]entity.ReceiptDetail, error) {
	var details []entity.ReceiptDetail
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Product.Category").
		Order("id ASC").
		Find(&details).Error
	return details, err
}

func (r *receiptDetailRepository) GetByReceiptID(ctx context.Context, receiptID uint) ([]entity.ReceiptDetail, error) {
	var details []entity.ReceiptDetail
	err := r.db.WithContext(ctx).
		Where("receipt_id = ?", receiptID).
		Order("id ASC").
		Find(&details).Error
	return details, err
}

func (r *receiptDetailRepository) Update(ctx context.Context, detail *entity.ReceiptDetail) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(detail).Error
}

func (r *receiptDetailRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.ReceiptDetail{}, "id = ?", id).Error
}

func (r *receiptDetailRepository) DeleteByReceiptIDs(ctx context.Context, receiptIDs []uint) error {
	if len(receiptIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("receipt_id IN ?", receiptIDs).
		Delete(&entity.ReceiptDetail{}).Error
}

func (r *receiptDetailRepository) DeleteByProductIDs(ctx context.Context, productIDs []uint) error {
	if len(productIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Delete(&entity.ReceiptDetail{}).Error
}
