package service

import (
	"context"

	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	uow repository.UnitOfWork
}

// NewCustomerService creates a new customer service
func NewCustomerService(uow repository.UnitOfWork) *CustomerService {
	return &CustomerService{uow: uow}
}

// GetAll returns every customer with its receipts
func (s *CustomerService) GetAll(ctx context.Context) ([]model.CustomerModel, error) {
	customers, err := s.uow.Customers().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return model.FromCustomers(customers), nil
}

// GetByID returns the customer, or nil when it does not exist
func (s *CustomerService) GetByID(ctx context.Context, id uint) (*model.CustomerModel, error) {
	customer, err := s.uow.Customers().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	m := model.FromCustomer(customer)
	return &m, nil
}

// Add creates the person and the customer and writes the new id into m
func (s *CustomerService) Add(ctx context.Context, m *model.CustomerModel) error {
	if err := validateCustomer(m); err != nil {
		return err
	}

	customer := model.ToCustomer(m)
	customer.ID = 0
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		person := customer.Person
		if err := tx.Persons().Create(ctx, &person); err != nil {
			return err
		}
		customer.PersonID = person.ID
		return tx.Customers().Create(ctx, customer)
	})
	if err != nil {
		return err
	}

	m.ID = customer.ID
	return nil
}

// Update replaces the person details and the discount of an existing customer
func (s *CustomerService) Update(ctx context.Context, m *model.CustomerModel) error {
	if err := validateCustomer(m); err != nil {
		return err
	}

	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		existing, err := tx.Customers().GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewValidationError("customer does not exist")
		}

		person, err := tx.Persons().GetByID(ctx, existing.PersonID)
		if err != nil {
			return err
		}
		if person == nil {
			return apperror.NewValidationError("customer has no person record")
		}

		person.Name = m.Name
		person.Surname = m.Surname
		person.BirthDate = m.BirthDate.Time
		if err := tx.Persons().Update(ctx, person); err != nil {
			return err
		}

		existing.DiscountValue = m.DiscountValue
		return tx.Customers().Update(ctx, existing)
	})
}

// Delete removes the customer together with its person, receipts and their line items
func (s *CustomerService) Delete(ctx context.Context, id uint) error {
	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		customer, err := tx.Customers().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewValidationError("customer does not exist")
		}

		receipts, err := tx.Receipts().GetByCustomerID(ctx, id)
		if err != nil {
			return err
		}
		receiptIDs := make([]uint, 0, len(receipts))
		for _, r := range receipts {
			receiptIDs = append(receiptIDs, r.ID)
		}
		if err := tx.ReceiptDetails().DeleteByReceiptIDs(ctx, receiptIDs); err != nil {
			return err
		}
		for _, receiptID := range receiptIDs {
			if err := tx.Receipts().Delete(ctx, receiptID); err != nil {
				return err
			}
		}
		if err := tx.Customers().Delete(ctx, id); err != nil {
			return err
		}
		return tx.Persons().Delete(ctx, customer.PersonID)
	})
}

// GetCustomersByProductID returns the customers that bought the product at least once
func (s *CustomerService) GetCustomersByProductID(ctx context.Context, productID uint) ([]model.CustomerModel, error) {
	customers, err := s.uow.Customers().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	buyers := make([]entity.Customer, 0)
	for _, c := range customers {
		if c.HasBoughtProduct(productID) {
			buyers = append(buyers, c)
		}
	}
	return model.FromCustomers(buyers), nil
}

func validateCustomer(m *model.CustomerModel) error {
	if m == nil {
		return apperror.NewValidationError("customer is required")
	}
	if isBlank(m.Name) {
		return apperror.NewValidationError("name is required")
	}
	if isBlank(m.Surname) {
		return apperror.NewValidationError("surname is required")
	}
	if m.DiscountValue < 0 {
		return apperror.NewValidationError("discount value must not be negative")
	}
	return validateYear(m.BirthDate.Time, "birth date")
}
