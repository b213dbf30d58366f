package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/sangkips/trademarket-api/pkg/events"
)

// DefaultPublishTimeout bounds how long a request waits on the event publisher
const DefaultPublishTimeout = 2 * time.Second

// ReceiptService handles receipts and their line items
type ReceiptService struct {
	uow            repository.UnitOfWork
	publisher      events.Publisher
	publishTimeout time.Duration
	log            zerolog.Logger
}

// NewReceiptService creates a new receipt service
func NewReceiptService(uow repository.UnitOfWork, publisher events.Publisher, log zerolog.Logger) *ReceiptService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &ReceiptService{uow: uow, publisher: publisher, publishTimeout: DefaultPublishTimeout, log: log}
}

// GetAll returns every receipt
func (s *ReceiptService) GetAll(ctx context.Context) ([]model.ReceiptModel, error) {
	receipts, err := s.uow.Receipts().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}
	return model.FromReceipts(receipts), nil
}

// GetByID returns the receipt, or nil when it does not exist
func (s *ReceiptService) GetByID(ctx context.Context, id uint) (*model.ReceiptModel, error) {
	receipt, err := s.uow.Receipts().GetByIDWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, nil
	}
	m := model.FromReceipt(receipt)
	return &m, nil
}

// Add opens a new receipt for an existing customer and writes the new id into m
func (s *ReceiptService) Add(ctx context.Context, m *model.ReceiptModel) error {
	if m == nil {
		return apperror.NewValidationError("receipt is required")
	}
	if err := validateYear(m.OperationDate.Time, "operation date"); err != nil {
		return err
	}

	receipt := model.ToReceipt(m)
	receipt.ID = 0
	receipt.IsCheckedOut = false
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		customer, err := tx.Customers().GetByID(ctx, receipt.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewValidationError("customer does not exist")
		}
		return tx.Receipts().Create(ctx, receipt)
	})
	if err != nil {
		return err
	}

	m.ID = receipt.ID
	m.IsCheckedOut = false
	s.publish(ctx, events.ReceiptCreated, receipt)
	return nil
}

// Update replaces the customer, operation date and checkout flag of a receipt
func (s *ReceiptService) Update(ctx context.Context, m *model.ReceiptModel) error {
	if m == nil {
		return apperror.NewValidationError("receipt is required")
	}
	if err := validateYear(m.OperationDate.Time, "operation date"); err != nil {
		return err
	}

	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		existing, err := tx.Receipts().GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.NewValidationError("receipt does not exist")
		}

		existing.CustomerID = m.CustomerID
		existing.OperationDate = m.OperationDate.Time
		existing.IsCheckedOut = m.IsCheckedOut
		return tx.Receipts().Update(ctx, existing)
	})
}

// Delete removes the receipt and all of its line items
func (s *ReceiptService) Delete(ctx context.Context, id uint) error {
	var deleted *entity.Receipt
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		receipt, err := tx.Receipts().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewValidationError("receipt does not exist")
		}
		if err := tx.ReceiptDetails().DeleteByReceiptIDs(ctx, []uint{id}); err != nil {
			return err
		}
		deleted = receipt
		return tx.Receipts().Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.ReceiptDeleted, deleted)
	return nil
}

// AddProduct puts quantity units of the product on an open receipt. A product
// already on the receipt has its quantity increased; a new line is priced with
// the customer's discount.
func (s *ReceiptService) AddProduct(ctx context.Context, productID, receiptID uint, quantity int) error {
	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		receipt, err := tx.Receipts().GetByIDWithDetails(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewValidationError("receipt does not exist")
		}
		if quantity <= 0 {
			return apperror.NewValidationError("quantity must be positive")
		}
		if receipt.IsCheckedOut {
			return apperror.NewValidationError("receipt is already checked out")
		}

		if detail := receipt.FindDetail(productID); detail != nil {
			detail.Quantity += quantity
			return tx.ReceiptDetails().Update(ctx, detail)
		}

		product, err := tx.Products().GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewValidationError("product does not exist")
		}

		return tx.ReceiptDetails().Create(ctx, &entity.ReceiptDetail{
			ReceiptID:         receiptID,
			ProductID:         productID,
			UnitPrice:         product.Price,
			DiscountUnitPrice: entity.ApplyDiscount(product.Price, receipt.Customer.DiscountValue),
			Quantity:          quantity,
		})
	})
}

// RemoveProduct takes quantity units of the product off an open receipt. The
// line is deleted once its quantity would drop to zero or below.
func (s *ReceiptService) RemoveProduct(ctx context.Context, productID, receiptID uint, quantity int) error {
	if quantity <= 0 {
		return apperror.NewValidationError("quantity must be positive")
	}

	return s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		receipt, err := tx.Receipts().GetByIDWithDetails(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewValidationError("receipt does not exist")
		}
		if receipt.IsCheckedOut {
			return apperror.NewValidationError("receipt is already checked out")
		}

		detail := receipt.FindDetail(productID)
		if detail == nil {
			return apperror.NewValidationError("product is not on the receipt")
		}
		if detail.Quantity <= quantity {
			return tx.ReceiptDetails().Delete(ctx, detail.ID)
		}
		detail.Quantity -= quantity
		return tx.ReceiptDetails().Update(ctx, detail)
	})
}

// GetReceiptDetails returns the line items of a receipt
func (s *ReceiptService) GetReceiptDetails(ctx context.Context, receiptID uint) ([]model.ReceiptDetailModel, error) {
	receipt, err := s.requireWithDetails(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	return model.FromReceiptDetails(receipt.ReceiptDetails), nil
}

// ToPay returns the amount payable for a receipt
func (s *ReceiptService) ToPay(ctx context.Context, receiptID uint) (float64, error) {
	receipt, err := s.requireWithDetails(ctx, receiptID)
	if err != nil {
		return 0, err
	}
	return entity.MoneyToDecimal(receipt.Total()), nil
}

// CheckOut closes the receipt. Closing a closed receipt is a no-op success.
func (s *ReceiptService) CheckOut(ctx context.Context, receiptID uint) error {
	var closed *entity.Receipt
	err := s.uow.Transaction(ctx, func(tx repository.UnitOfWork) error {
		receipt, err := tx.Receipts().GetByID(ctx, receiptID)
		if err != nil {
			return err
		}
		if receipt == nil {
			return apperror.NewValidationError("receipt does not exist")
		}
		if receipt.IsCheckedOut {
			return nil
		}
		receipt.IsCheckedOut = true
		closed = receipt
		return tx.Receipts().Update(ctx, receipt)
	})
	if err != nil {
		return err
	}

	if closed != nil {
		s.publish(ctx, events.ReceiptCheckedOut, closed)
	}
	return nil
}

// GetReceiptsByPeriod returns the receipts whose operation date is in [start, end]
func (s *ReceiptService) GetReceiptsByPeriod(ctx context.Context, start, end time.Time) ([]model.ReceiptModel, error) {
	receipts, err := s.uow.Receipts().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	inPeriod := make([]entity.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if r.InPeriod(start, end) {
			inPeriod = append(inPeriod, r)
		}
	}
	return model.FromReceipts(inPeriod), nil
}

func (s *ReceiptService) requireWithDetails(ctx context.Context, receiptID uint) (*entity.Receipt, error) {
	receipt, err := s.uow.Receipts().GetByIDWithDetails(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewValidationError("receipt does not exist")
	}
	return receipt, nil
}

// publish runs after commit, so a failure is only logged. The request's
// cancellation is ignored but the wait is capped by publishTimeout.
func (s *ReceiptService) publish(ctx context.Context, eventType string, receipt *entity.Receipt) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	event := events.NewReceiptEvent(eventType, receipt.ID, receipt.CustomerID)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn().Err(err).
			Str("event", eventType).
			Uint("receipt_id", receipt.ID).
			Msg("Failed to publish receipt event")
	}
}
