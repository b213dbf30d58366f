package model

// CustomerModel is the transfer shape of a customer. The person's fields are
// flattened in and receipts are reduced to their ids.
type CustomerModel struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Surname       string    `json:"surname"`
	BirthDate     Timestamp `json:"birthDate"`
	DiscountValue int       `json:"discountValue"`
	ReceiptsIDs   []uint    `json:"receiptsIds"`
}

// ProductModel is the transfer shape of a product
type ProductModel struct {
	ID                uint    `json:"id"`
	ProductCategoryID uint    `json:"productCategoryId"`
	CategoryName      string  `json:"categoryName"`
	ProductName       string  `json:"productName"`
	Price             float64 `json:"price"`
	ReceiptDetailIDs  []uint  `json:"receiptDetailIds"`
}

// ProductCategoryModel is the transfer shape of a category
type ProductCategoryModel struct {
	ID           uint   `json:"id"`
	CategoryName string `json:"categoryName"`
	ProductIDs   []uint `json:"productIds"`
}

// ReceiptModel is the transfer shape of a receipt
type ReceiptModel struct {
	ID                uint      `json:"id"`
	CustomerID        uint      `json:"customerId"`
	OperationDate     Timestamp `json:"operationDate"`
	IsCheckedOut      bool      `json:"isCheckedOut"`
	ReceiptDetailsIDs []uint    `json:"receiptDetailsIds"`
}

// ReceiptDetailModel is the transfer shape of a line item
type ReceiptDetailModel struct {
	ID                uint    `json:"id"`
	ReceiptID         uint    `json:"receiptId"`
	ProductID         uint    `json:"productId"`
	DiscountUnitPrice float64 `json:"discountUnitPrice"`
	UnitPrice         float64 `json:"unitPrice"`
	Quantity          int     `json:"quantity"`
}

// CustomerActivityModel reports how much a customer spent
type CustomerActivityModel struct {
	CustomerID   uint    `json:"customerId"`
	CustomerName string  `json:"customerName"`
	ReceiptSum   float64 `json:"receiptSum"`
}

// FilterSearchModel narrows a product listing. Nil bounds are ignored.
type FilterSearchModel struct {
	CategoryID *uint    `form:"categoryId"`
	MinPrice   *float64 `form:"minPrice"`
	MaxPrice   *float64 `form:"maxPrice"`
}

// IsEmpty reports whether no bound is set
func (f *FilterSearchModel) IsEmpty() bool {
	return f == nil || (f.CategoryID == nil && f.MinPrice == nil && f.MaxPrice == nil)
}
