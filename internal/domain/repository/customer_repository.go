package repository

import (
	"context"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// PersonRepository defines the interface for person data operations
type PersonRepository interface {
	Create(ctx context.Context, person *entity.Person) error
	GetByID(ctx context.Context, id uint) (*entity.Person, error)
	Update(ctx context.Context, person *entity.Person) error
	Delete(ctx context.Context, id uint) error
}

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uint) (*entity.Customer, error)
	// GetByIDWithDetails loads the person and the receipts with their line items
	GetByIDWithDetails(ctx context.Context, id uint) (*entity.Customer, error)
	GetAllWithDetails(ctx context.Context) ([]entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uint) error
}
