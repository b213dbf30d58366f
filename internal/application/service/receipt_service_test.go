package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/application/model"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/testutil"
	"github.com/sangkips/trademarket-api/pkg/events"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func newReceiptService(t *testing.T) (*ReceiptService, *recordingPublisher, *gorm.DB) {
	t.Helper()
	uow, db := newSeededUOW(t)
	pub := &recordingPublisher{}
	return NewReceiptService(uow, pub, zerolog.Nop()), pub, db
}

func detailFor(t *testing.T, db *gorm.DB, receiptID, productID uint) *entity.ReceiptDetail {
	t.Helper()
	var details []entity.ReceiptDetail
	if err := db.Where("receipt_id = ? AND product_id = ?", receiptID, productID).Find(&details).Error; err != nil {
		t.Fatal(err)
	}
	switch len(details) {
	case 0:
		return nil
	case 1:
		return &details[0]
	default:
		t.Fatalf("%d line items for receipt %d product %d", len(details), receiptID, productID)
		return nil
	}
}

func TestReceiptService_GetAllAndGetByID(t *testing.T) {
	svc, _, _ := newReceiptService(t)
	ctx := context.Background()

	all, err := svc.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 3 || !equalIDs(all[2].ReceiptDetailsIDs, []uint{4, 5}) {
		t.Errorf("GetAll() = %+v", all)
	}

	got, err := svc.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.CustomerID != 1 || !got.IsCheckedOut || !equalIDs(got.ReceiptDetailsIDs, []uint{1, 2}) {
		t.Errorf("GetByID(1) = %+v", got)
	}

	missing, err := svc.GetByID(ctx, 10)
	if err != nil || missing != nil {
		t.Errorf("GetByID(10) = %v, %v; want nil, nil", missing, err)
	}
}

func TestReceiptService_Add(t *testing.T) {
	svc, pub, _ := newReceiptService(t)
	ctx := context.Background()

	m := &model.ReceiptModel{CustomerID: 2, OperationDate: model.NewTimestamp(testutil.Date(2022, 3, 1)), IsCheckedOut: true}
	if err := svc.Add(ctx, m); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if m.ID != 4 || m.IsCheckedOut {
		t.Errorf("added receipt = %+v, want id 4 and open", m)
	}
	got, _ := svc.GetByID(ctx, 4)
	if got == nil || got.IsCheckedOut {
		t.Errorf("stored receipt = %+v, want open", got)
	}
	if types := pub.types(); len(types) != 1 || types[0] != events.ReceiptCreated {
		t.Errorf("published %v, want [%s]", types, events.ReceiptCreated)
	}

	tests := []struct {
		name  string
		model *model.ReceiptModel
	}{
		{"nil model", nil},
		{"year before 1900", &model.ReceiptModel{CustomerID: 1, OperationDate: model.NewTimestamp(testutil.Date(1899, 1, 1))}},
		{"future year", &model.ReceiptModel{CustomerID: 1, OperationDate: model.NewTimestamp(testutil.Date(time.Now().Year()+1, 1, 1))}},
		{"unknown customer", &model.ReceiptModel{CustomerID: 77, OperationDate: model.NewTimestamp(testutil.Date(2022, 1, 1))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertValidation(t, svc.Add(ctx, tt.model))
		})
	}
}

func TestReceiptService_Update(t *testing.T) {
	svc, _, _ := newReceiptService(t)
	ctx := context.Background()

	m := &model.ReceiptModel{ID: 3, CustomerID: 1, OperationDate: model.NewTimestamp(testutil.Date(2021, 11, 1)), IsCheckedOut: true}
	if err := svc.Update(ctx, m); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := svc.GetByID(ctx, 3)
	if got.CustomerID != 1 || !got.IsCheckedOut || got.OperationDate.Month() != time.November {
		t.Errorf("updated receipt = %+v", got)
	}

	assertValidation(t, svc.Update(ctx, nil))
	m.ID = 33
	assertValidation(t, svc.Update(ctx, m))
}

func TestReceiptService_Delete(t *testing.T) {
	svc, pub, db := newReceiptService(t)
	ctx := context.Background()

	if err := svc.Delete(ctx, 1); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if n := countRows(t, db, "receipts", "id = ?", 1); n != 0 {
		t.Error("receipt still present")
	}
	if n := countRows(t, db, "receipt_details", "receipt_id = ?", 1); n != 0 {
		t.Errorf("%d line items left for deleted receipt", n)
	}
	if n := countRows(t, db, "receipt_details", "1 = 1"); n != 3 {
		t.Errorf("line item count = %d, want 3", n)
	}
	if types := pub.types(); len(types) != 1 || types[0] != events.ReceiptDeleted {
		t.Errorf("published %v, want [%s]", types, events.ReceiptDeleted)
	}

	assertValidation(t, svc.Delete(ctx, 1))
}

func TestReceiptService_AddProduct(t *testing.T) {
	t.Run("existing line gains quantity", func(t *testing.T) {
		svc, _, db := newReceiptService(t)
		if err := svc.AddProduct(context.Background(), 1, 3, 3); err != nil {
			t.Fatalf("AddProduct() error = %v", err)
		}
		if d := detailFor(t, db, 3, 1); d == nil || d.Quantity != 5 || d.ID != 4 {
			t.Errorf("line item = %+v, want id 4 with quantity 5", d)
		}
	})

	t.Run("new line uses customer discount", func(t *testing.T) {
		svc, _, db := newReceiptService(t)
		kefir := entity.Product{ID: 3, ProductCategoryID: 1, ProductName: "Kefir", Price: 400000}
		if err := db.Omit(clause.Associations).Create(&kefir).Error; err != nil {
			t.Fatal(err)
		}
		if err := svc.AddProduct(context.Background(), 3, 3, 2); err != nil {
			t.Fatalf("AddProduct() error = %v", err)
		}
		d := detailFor(t, db, 3, 3)
		if d == nil || d.UnitPrice != 400000 || d.DiscountUnitPrice != 360000 || d.Quantity != 2 {
			t.Errorf("line item = %+v, want unit 40, discounted 36, quantity 2", d)
		}
	})

	t.Run("discount below one cent", func(t *testing.T) {
		svc, _, db := newReceiptService(t)
		ctx := context.Background()
		if err := db.Exec("UPDATE customers SET discount_value = 99 WHERE id = 2").Error; err != nil {
			t.Fatal(err)
		}
		cheap := entity.Product{ID: 3, ProductCategoryID: 1, ProductName: "Gum", Price: 380000}
		if err := db.Omit(clause.Associations).Create(&cheap).Error; err != nil {
			t.Fatal(err)
		}
		if err := svc.AddProduct(ctx, 3, 3, 1); err != nil {
			t.Fatalf("AddProduct() error = %v", err)
		}
		details, err := svc.GetReceiptDetails(ctx, 3)
		if err != nil {
			t.Fatalf("GetReceiptDetails() error = %v", err)
		}
		last := details[len(details)-1]
		if last.UnitPrice != 38 || last.DiscountUnitPrice != 0.38 {
			t.Errorf("line item = %+v, want unit 38 and discounted 0.38", last)
		}
	})

	t.Run("half cent discount price is kept", func(t *testing.T) {
		svc, _, db := newReceiptService(t)
		ctx := context.Background()
		if err := db.Exec("UPDATE customers SET discount_value = 50 WHERE id = 2").Error; err != nil {
			t.Fatal(err)
		}
		candy := entity.Product{ID: 3, ProductCategoryID: 1, ProductName: "Candy", Price: entity.DecimalToMoney(0.99)}
		fresh := entity.Receipt{ID: 4, CustomerID: 2, OperationDate: testutil.Date(2021, 11, 1)}
		for _, row := range []interface{}{&candy, &fresh} {
			if err := db.Omit(clause.Associations).Create(row).Error; err != nil {
				t.Fatal(err)
			}
		}

		if err := svc.AddProduct(ctx, 3, 4, 2); err != nil {
			t.Fatalf("AddProduct() error = %v", err)
		}
		details, err := svc.GetReceiptDetails(ctx, 4)
		if err != nil {
			t.Fatalf("GetReceiptDetails() error = %v", err)
		}
		if len(details) != 1 || details[0].UnitPrice != 0.99 || details[0].DiscountUnitPrice != 0.495 {
			t.Fatalf("details = %+v, want one line at 0.99 discounted to 0.495", details)
		}
		sum, err := svc.ToPay(ctx, 4)
		if err != nil {
			t.Fatalf("ToPay() error = %v", err)
		}
		if sum != 0.99 {
			t.Errorf("ToPay() = %v, want 0.99", sum)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		svc, _, _ := newReceiptService(t)
		ctx := context.Background()
		assertValidation(t, svc.AddProduct(ctx, 1, 99, 1))
		assertValidation(t, svc.AddProduct(ctx, 1, 3, 0))
		assertValidation(t, svc.AddProduct(ctx, 1, 3, -2))
		assertValidation(t, svc.AddProduct(ctx, 99, 3, 1))
		assertValidation(t, svc.AddProduct(ctx, 1, 1, 1))
	})
}

func TestReceiptService_RemoveProduct(t *testing.T) {
	svc, _, db := newReceiptService(t)
	ctx := context.Background()

	if err := svc.RemoveProduct(ctx, 1, 3, 2); err != nil {
		t.Fatalf("RemoveProduct() error = %v", err)
	}
	if d := detailFor(t, db, 3, 1); d != nil {
		t.Errorf("line item = %+v, want removed", d)
	}

	if err := svc.RemoveProduct(ctx, 2, 3, 2); err != nil {
		t.Fatalf("RemoveProduct() error = %v", err)
	}
	if d := detailFor(t, db, 3, 2); d == nil || d.Quantity != 3 {
		t.Errorf("line item = %+v, want quantity 3", d)
	}

	if err := svc.RemoveProduct(ctx, 2, 3, 10); err != nil {
		t.Fatalf("RemoveProduct() error = %v", err)
	}
	if d := detailFor(t, db, 3, 2); d != nil {
		t.Errorf("line item = %+v, want removed", d)
	}

	assertValidation(t, svc.RemoveProduct(ctx, 2, 3, 1))
	assertValidation(t, svc.RemoveProduct(ctx, 1, 3, 0))
	assertValidation(t, svc.RemoveProduct(ctx, 1, 80, 1))
	assertValidation(t, svc.RemoveProduct(ctx, 1, 1, 1))
}

func TestReceiptService_ToPay(t *testing.T) {
	svc, _, db := newReceiptService(t)
	ctx := context.Background()

	receipt := entity.Receipt{ID: 4, CustomerID: 1, OperationDate: testutil.Date(2021, 12, 1)}
	if err := db.Omit(clause.Associations).Create(&receipt).Error; err != nil {
		t.Fatal(err)
	}
	lines := []entity.ReceiptDetail{
		{ReceiptID: 4, ProductID: 1, UnitPrice: 100000, DiscountUnitPrice: 90000, Quantity: 2},
		{ReceiptID: 4, ProductID: 2, UnitPrice: 200000, DiscountUnitPrice: 190000, Quantity: 3},
		{ReceiptID: 4, ProductID: 2, UnitPrice: 300000, DiscountUnitPrice: 240000, Quantity: 1},
	}
	if err := db.Omit(clause.Associations).Create(&lines).Error; err != nil {
		t.Fatal(err)
	}

	got, err := svc.ToPay(ctx, 4)
	if err != nil {
		t.Fatalf("ToPay() error = %v", err)
	}
	if got != 99 {
		t.Errorf("ToPay() = %v, want 99", got)
	}

	if got, _ := svc.ToPay(ctx, 3); got != 162 {
		t.Errorf("ToPay(3) = %v, want 162", got)
	}

	_, err = svc.ToPay(ctx, 40)
	assertValidation(t, err)
}

func TestReceiptService_GetReceiptDetails(t *testing.T) {
	svc, _, _ := newReceiptService(t)

	details, err := svc.GetReceiptDetails(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetReceiptDetails() error = %v", err)
	}
	if len(details) != 2 || details[0].DiscountUnitPrice != 32 || details[0].Quantity != 3 {
		t.Errorf("details = %+v", details)
	}

	_, err = svc.GetReceiptDetails(context.Background(), 9)
	assertValidation(t, err)
}

func TestReceiptService_CheckOut(t *testing.T) {
	svc, pub, _ := newReceiptService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := svc.CheckOut(ctx, 3); err != nil {
			t.Fatalf("CheckOut() call %d error = %v", i+1, err)
		}
	}
	got, _ := svc.GetByID(ctx, 3)
	if !got.IsCheckedOut {
		t.Error("receipt not checked out")
	}
	if types := pub.types(); len(types) != 1 || types[0] != events.ReceiptCheckedOut {
		t.Errorf("published %v, want one %s", types, events.ReceiptCheckedOut)
	}

	assertValidation(t, svc.CheckOut(ctx, 12))
}

func TestReceiptService_PublishFailureDoesNotFail(t *testing.T) {
	svc, pub, _ := newReceiptService(t)
	pub.err = errors.New("broker down")

	if err := svc.CheckOut(context.Background(), 3); err != nil {
		t.Fatalf("CheckOut() error = %v, want nil", err)
	}
	got, _ := svc.GetByID(context.Background(), 3)
	if !got.IsCheckedOut {
		t.Error("receipt not checked out")
	}
}

func TestReceiptService_GetReceiptsByPeriod(t *testing.T) {
	svc, _, _ := newReceiptService(t)

	tests := []struct {
		name       string
		start, end time.Time
		want       []uint
	}{
		{"inclusive start", testutil.Date(2021, 8, 10), testutil.Date(2021, 12, 31), []uint{2, 3}},
		{"inclusive end", testutil.Date(2021, 1, 1), testutil.Date(2021, 7, 5), []uint{1}},
		{"all", time.Time{}, testutil.Date(2030, 1, 1), []uint{1, 2, 3}},
		{"none", testutil.Date(2022, 1, 1), testutil.Date(2022, 12, 31), []uint{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.GetReceiptsByPeriod(context.Background(), tt.start, tt.end)
			if err != nil {
				t.Fatalf("GetReceiptsByPeriod() error = %v", err)
			}
			gotIDs := ids(got, func(r model.ReceiptModel) uint { return r.ID })
			if !equalIDs(gotIDs, tt.want) {
				t.Errorf("GetReceiptsByPeriod() = %v, want %v", gotIDs, tt.want)
			}
		})
	}
}

type stalledPublisher struct {
	deadline chan bool
}

func (p *stalledPublisher) Publish(ctx context.Context, _ events.Event) error {
	_, ok := ctx.Deadline()
	p.deadline <- ok
	<-ctx.Done()
	return ctx.Err()
}

func (p *stalledPublisher) Close() error { return nil }

func TestReceiptService_PublishTimeout(t *testing.T) {
	uow, _ := newSeededUOW(t)
	pub := &stalledPublisher{deadline: make(chan bool, 1)}
	svc := NewReceiptService(uow, pub, zerolog.Nop())
	svc.publishTimeout = 20 * time.Millisecond

	start := time.Now()
	if err := svc.CheckOut(context.Background(), 3); err != nil {
		t.Fatalf("CheckOut() error = %v, want nil", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("CheckOut() took %v with a stalled publisher", elapsed)
	}
	if !<-pub.deadline {
		t.Error("publish context has no deadline")
	}
	got, _ := svc.GetByID(context.Background(), 3)
	if !got.IsCheckedOut {
		t.Error("receipt not checked out")
	}
}
