package repository

import "context"

// UnitOfWork groups the market repositories behind one transaction boundary
type UnitOfWork interface {
	Persons() PersonRepository
	Customers() CustomerRepository
	Categories() ProductCategoryRepository
	Products() ProductRepository
	Receipts() ReceiptRepository
	ReceiptDetails() ReceiptDetailRepository

	// Transaction runs fn against a unit of work bound to a single database
	// transaction. Returning an error from fn rolls every change back.
	Transaction(ctx context.Context, fn func(tx UnitOfWork) error) error
}
