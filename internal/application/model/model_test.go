package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2021, 7, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"date only", "2021-07-05", false},
		{"no zone", "2021-07-05T00:00:00", false},
		{"rfc3339", "2021-07-05T00:00:00Z", false},
		{"space separated", "2021-07-05 00:00:00", false},
		{"garbage", "05/07/2021", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseTimestamp(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTimestamp(%q) error = %v", tt.input, err)
			}
			if !got.Equal(want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestReceiptModelJSON(t *testing.T) {
	body := `{"id":3,"customerId":2,"operationDate":"2021-10-15T00:00:00","isCheckedOut":false,"receiptDetailsIds":[4,5]}`

	var m ReceiptModel
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.ID != 3 || m.CustomerID != 2 || m.OperationDate.Day() != 15 || len(m.ReceiptDetailsIDs) != 2 {
		t.Errorf("decoded = %+v", m)
	}

	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"operationDate":"2021-10-15T00:00:00Z"`) {
		t.Errorf("encoded = %s", out)
	}
}

func TestTimestampRejectsInvalid(t *testing.T) {
	var m CustomerModel
	if err := json.Unmarshal([]byte(`{"birthDate":"not a date"}`), &m); err == nil {
		t.Error("expected error for invalid birth date")
	}
}

func TestFromCustomer(t *testing.T) {
	c := &entity.Customer{
		ID:            1,
		DiscountValue: 20,
		Person:        entity.Person{ID: 7, Name: "Han", Surname: "Solo", BirthDate: time.Date(1942, 7, 13, 0, 0, 0, 0, time.UTC)},
		Receipts:      []entity.Receipt{{ID: 1}, {ID: 2}},
	}

	m := FromCustomer(c)
	if m.ID != 1 || m.Name != "Han" || m.Surname != "Solo" || m.DiscountValue != 20 {
		t.Errorf("FromCustomer() = %+v", m)
	}
	if len(m.ReceiptsIDs) != 2 || m.ReceiptsIDs[1] != 2 {
		t.Errorf("receipt ids = %v", m.ReceiptsIDs)
	}

	back := ToCustomer(&m)
	if back.Person.Name != "Han" || !back.Person.BirthDate.Equal(c.Person.BirthDate) {
		t.Errorf("ToCustomer() = %+v", back)
	}
}

func TestProductPriceConversion(t *testing.T) {
	p := &entity.Product{ID: 1, ProductCategoryID: 2, ProductName: "Milk", Price: 405000,
		Category: entity.ProductCategory{ID: 2, CategoryName: "Dairy products"}}

	m := FromProduct(p)
	if m.Price != 40.5 || m.CategoryName != "Dairy products" {
		t.Errorf("FromProduct() = %+v", m)
	}
	if m.ReceiptDetailIDs == nil {
		t.Error("receipt detail ids should encode as an empty list")
	}

	if got := ToProduct(&ProductModel{Price: 0.38}); got.Price != 3800 {
		t.Errorf("ToProduct() price = %d, want 3800", got.Price)
	}
}

func TestFromReceiptDetail(t *testing.T) {
	d := &entity.ReceiptDetail{ID: 1, ReceiptID: 2, ProductID: 3, UnitPrice: 380000, DiscountUnitPrice: 3800, Quantity: 4}

	m := FromReceiptDetail(d)
	if m.UnitPrice != 38 || m.DiscountUnitPrice != 0.38 || m.Quantity != 4 {
		t.Errorf("FromReceiptDetail() = %+v", m)
	}
}

func TestFilterIsEmpty(t *testing.T) {
	var nilFilter *FilterSearchModel
	if !nilFilter.IsEmpty() {
		t.Error("nil filter should be empty")
	}
	limit := 10.0
	if (&FilterSearchModel{MaxPrice: &limit}).IsEmpty() {
		t.Error("filter with max price should not be empty")
	}
}
