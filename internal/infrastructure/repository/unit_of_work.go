package repository

import (
	"context"

	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
)

type unitOfWork struct {
	db *gorm.DB

	persons        domainRepo.PersonRepository
	customers      domainRepo.CustomerRepository
	categories     domainRepo.ProductCategoryRepository
	products       domainRepo.ProductRepository
	receipts       domainRepo.ReceiptRepository
	receiptDetails domainRepo.ReceiptDetailRepository
}

// NewUnitOfWork creates a unit of work whose repositories share db
func NewUnitOfWork(db *gorm.DB) domainRepo.UnitOfWork {
	return &unitOfWork{
		db:             db,
		persons:        NewPersonRepository(db),
		customers:      NewCustomerRepository(db),
		categories:     NewProductCategoryRepository(db),
		products:       NewProductRepository(db),
		receipts:       NewReceiptRepository(db),
		receiptDetails: NewReceiptDetailRepository(db),
	}
}

func (u *unitOfWork) Persons() domainRepo.PersonRepository               { return u.persons }
func (u *unitOfWork) Customers() domainRepo.CustomerRepository           { return u.customers }
func (u *unitOfWork) Categories() domainRepo.ProductCategoryRepository   { return u.categories }
func (u *unitOfWork) Products() domainRepo.ProductRepository             { return u.products }
func (u *unitOfWork) Receipts() domainRepo.ReceiptRepository             { return u.receipts }
func (u *unitOfWork) ReceiptDetails() domainRepo.ReceiptDetailRepository { return u.receiptDetails }

// Transaction runs fn inside a GORM transaction. Nested calls reuse the
// outer transaction through savepoints.
func (u *unitOfWork) Transaction(ctx context.Context, fn func(tx domainRepo.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewUnitOfWork(tx))
	})
}
