package service

import (
	"context"
	"sort"
	"time"

	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// StatisticService computes sales statistics
type StatisticService struct {
	uow repository.UnitOfWork
}

// NewStatisticService creates a new statistic service
func NewStatisticService(uow repository.UnitOfWork) *StatisticService {
	return &StatisticService{uow: uow}
}

// tally accumulates a value per id and remembers first appearance
type tally struct {
	order  []uint
	totals map[uint]int64
}

func newTally() *tally {
	return &tally{totals: make(map[uint]int64)}
}

func (t *tally) add(id uint, value int64) {
	if _, seen := t.totals[id]; !seen {
		t.order = append(t.order, id)
	}
	t.totals[id] += value
}

// top returns up to n ids by descending total, ties kept in first-seen order
func (t *tally) top(n int) []uint {
	ids := append([]uint(nil), t.order...)
	sort.SliceStable(ids, func(i, j int) bool {
		return t.totals[ids[i]] > t.totals[ids[j]]
	})
	if n < len(ids) {
		ids = ids[:n]
	}
	return ids
}

// GetMostPopularProducts returns the count products sold in the largest quantities
func (s *StatisticService) GetMostPopularProducts(ctx context.Context, count int) ([]model.ProductModel, error) {
	if count <= 0 {
		return nil, apperror.NewValidationError("product count must be positive")
	}

	details, err := s.uow.ReceiptDetails().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	quantities := newTally()
	for _, d := range details {
		quantities.add(d.ProductID, int64(d.Quantity))
	}
	return s.productsByID(ctx, quantities.top(count))
}

// GetCustomersMostPopularProducts is GetMostPopularProducts restricted to one customer's receipts
func (s *StatisticService) GetCustomersMostPopularProducts(ctx context.Context, count int, customerID uint) ([]model.ProductModel, error) {
	if count <= 0 {
		return nil, apperror.NewValidationError("product count must be positive")
	}

	receipts, err := s.uow.Receipts().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	var details []entity.ReceiptDetail
	for _, r := range receipts {
		if r.CustomerID == customerID {
			details = append(details, r.ReceiptDetails...)
		}
	}
	sort.SliceStable(details, func(i, j int) bool { return details[i].ID < details[j].ID })

	quantities := newTally()
	for _, d := range details {
		quantities.add(d.ProductID, int64(d.Quantity))
	}
	return s.productsByID(ctx, quantities.top(count))
}

// GetMostValuableCustomers returns the count customers who spent most in [start, end]
func (s *StatisticService) GetMostValuableCustomers(ctx context.Context, count int, start, end time.Time) ([]model.CustomerActivityModel, error) {
	result := make([]model.CustomerActivityModel, 0)
	if count <= 0 {
		return result, nil
	}

	receipts, err := s.uow.Receipts().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	sums := newTally()
	names := make(map[uint]string)
	for i := range receipts {
		r := &receipts[i]
		if !r.InPeriod(start, end) {
			continue
		}
		sums.add(r.CustomerID, r.Total())
		names[r.CustomerID] = r.Customer.FullName()
	}

	for _, id := range sums.top(count) {
		result = append(result, model.CustomerActivityModel{
			CustomerID:   id,
			CustomerName: names[id],
			ReceiptSum:   entity.MoneyToDecimal(sums.totals[id]),
		})
	}
	return result, nil
}

// GetIncomeOfCategoryInPeriod sums the discounted line totals of the category's products in [start, end]
func (s *StatisticService) GetIncomeOfCategoryInPeriod(ctx context.Context, categoryID uint, start, end time.Time) (float64, error) {
	receipts, err := s.uow.Receipts().GetAllWithDetails(ctx)
	if err != nil {
		return 0, err
	}

	var income int64
	for i := range receipts {
		r := &receipts[i]
		if !r.InPeriod(start, end) {
			continue
		}
		for _, d := range r.ReceiptDetails {
			if d.Product.ProductCategoryID == categoryID {
				income += d.Total()
			}
		}
	}
	return entity.MoneyToDecimal(income), nil
}

func (s *StatisticService) productsByID(ctx context.Context, ids []uint) ([]model.ProductModel, error) {
	products, err := s.uow.Products().GetAllWithDetails(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	result := make([]model.ProductModel, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result = append(result, model.FromProduct(p))
		}
	}
	return result, nil
}
