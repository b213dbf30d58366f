package model

import (
	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// FromCustomer flattens a customer loaded with its person and receipts
func FromCustomer(c *entity.Customer) CustomerModel {
	ids := make([]uint, 0, len(c.Receipts))
	for _, r := range c.Receipts {
		ids = append(ids, r.ID)
	}
	return CustomerModel{
		ID:            c.ID,
		Name:          c.Person.Name,
		Surname:       c.Person.Surname,
		BirthDate:     NewTimestamp(c.Person.BirthDate),
		DiscountValue: c.DiscountValue,
		ReceiptsIDs:   ids,
	}
}

// FromCustomers maps a slice of customers
func FromCustomers(customers []entity.Customer) []CustomerModel {
	models := make([]CustomerModel, 0, len(customers))
	for i := range customers {
		models = append(models, FromCustomer(&customers[i]))
	}
	return models
}

// ToCustomer builds the customer and person entities. Receipts are not mapped
// back; they are owned by the receipt rules.
func ToCustomer(m *CustomerModel) *entity.Customer {
	return &entity.Customer{
		ID:            m.ID,
		DiscountValue: m.DiscountValue,
		Person: entity.Person{
			Name:      m.Name,
			Surname:   m.Surname,
			BirthDate: m.BirthDate.Time,
		},
	}
}

// FromProduct flattens a product loaded with category and line items
func FromProduct(p *entity.Product) ProductModel {
	ids := make([]uint, 0, len(p.ReceiptDetails))
	for _, d := range p.ReceiptDetails {
		ids = append(ids, d.ID)
	}
	return ProductModel{
		ID:                p.ID,
		ProductCategoryID: p.ProductCategoryID,
		CategoryName:      p.Category.CategoryName,
		ProductName:       p.ProductName,
		Price:             p.GetPriceDecimal(),
		ReceiptDetailIDs:  ids,
	}
}

// FromProducts maps a slice of products
func FromProducts(products []entity.Product) []ProductModel {
	models := make([]ProductModel, 0, len(products))
	for i := range products {
		models = append(models, FromProduct(&products[i]))
	}
	return models
}

// ToProduct builds a product entity. The category name is informational and
// never written back.
func ToProduct(m *ProductModel) *entity.Product {
	product := &entity.Product{
		ID:                m.ID,
		ProductCategoryID: m.ProductCategoryID,
		ProductName:       m.ProductName,
	}
	product.SetPriceFromDecimal(m.Price)
	return product
}

// FromCategory flattens a category loaded with its products
func FromCategory(c *entity.ProductCategory) ProductCategoryModel {
	ids := make([]uint, 0, len(c.Products))
	for _, p := range c.Products {
		ids = append(ids, p.ID)
	}
	return ProductCategoryModel{
		ID:           c.ID,
		CategoryName: c.CategoryName,
		ProductIDs:   ids,
	}
}

// FromCategories maps a slice of categories
func FromCategories(categories []entity.ProductCategory) []ProductCategoryModel {
	models := make([]ProductCategoryModel, 0, len(categories))
	for i := range categories {
		models = append(models, FromCategory(&categories[i]))
	}
	return models
}

// ToCategory builds a category entity
func ToCategory(m *ProductCategoryModel) *entity.ProductCategory {
	return &entity.ProductCategory{
		ID:           m.ID,
		CategoryName: m.CategoryName,
	}
}

// FromReceipt flattens a receipt loaded with its line items
func FromReceipt(r *entity.Receipt) ReceiptModel {
	ids := make([]uint, 0, len(r.ReceiptDetails))
	for _, d := range r.ReceiptDetails {
		ids = append(ids, d.ID)
	}
	return ReceiptModel{
		ID:                r.ID,
		CustomerID:        r.CustomerID,
		OperationDate:     NewTimestamp(r.OperationDate),
		IsCheckedOut:      r.IsCheckedOut,
		ReceiptDetailsIDs: ids,
	}
}

// FromReceipts maps a slice of receipts
func FromReceipts(receipts []entity.Receipt) []ReceiptModel {
	models := make([]ReceiptModel, 0, len(receipts))
	for i := range receipts {
		models = append(models, FromReceipt(&receipts[i]))
	}
	return models
}

// ToReceipt builds a receipt entity
func ToReceipt(m *ReceiptModel) *entity.Receipt {
	return &entity.Receipt{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		OperationDate: m.OperationDate.Time,
		IsCheckedOut:  m.IsCheckedOut,
	}
}

// FromReceiptDetail maps a line item
func FromReceiptDetail(d *entity.ReceiptDetail) ReceiptDetailModel {
	return ReceiptDetailModel{
		ID:                d.ID,
		ReceiptID:         d.ReceiptID,
		ProductID:         d.ProductID,
		DiscountUnitPrice: entity.MoneyToDecimal(d.DiscountUnitPrice),
		UnitPrice:         entity.MoneyToDecimal(d.UnitPrice),
		Quantity:          d.Quantity,
	}
}

// FromReceiptDetails maps a slice of line items
func FromReceiptDetails(details []entity.ReceiptDetail) []ReceiptDetailModel {
	models := make([]ReceiptDetailModel, 0, len(details))
	for i := range details {
		models = append(models, FromReceiptDetail(&details[i]))
	}
	return models
}
