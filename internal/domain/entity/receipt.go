package entity

import "time"

// Receipt represents a customer's purchase
type Receipt struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CustomerID    uint      `gorm:"not null;index" json:"customer_id"`
	OperationDate time.Time `gorm:"not null;index" json:"operation_date"`
	IsCheckedOut  bool      `gorm:"default:false" json:"is_checked_out"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Customer       Customer        `gorm:"foreignKey:CustomerID" json:"customer"`
	ReceiptDetails []ReceiptDetail `gorm:"foreignKey:ReceiptID" json:"details,omitempty"`
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// FindDetail returns the line item for the product, or nil
func (r *Receipt) FindDetail(productID uint) *ReceiptDetail {
	for i := range r.ReceiptDetails {
		if r.ReceiptDetails[i].ProductID == productID {
			return &r.ReceiptDetails[i]
		}
	}
	return nil
}

// Total returns the amount payable in MoneyScale units
func (r *Receipt) Total() int64 {
	var total int64
	for _, detail := range r.ReceiptDetails {
		total += detail.Total()
	}
	return total
}

// InPeriod reports whether the operation date lies in [start, end]
func (r *Receipt) InPeriod(start, end time.Time) bool {
	return !r.OperationDate.Before(start) && !r.OperationDate.After(end)
}

// ReceiptDetail represents a line item on a receipt
type ReceiptDetail struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ReceiptID         uint      `gorm:"not null;index" json:"receipt_id"`
	ProductID         uint      `gorm:"not null;index" json:"product_id"`
	UnitPrice         int64     `gorm:"not null" json:"unit_price"`          // Stored in MoneyScale units
	DiscountUnitPrice int64     `gorm:"not null" json:"discount_unit_price"` // Stored in MoneyScale units
	Quantity          int       `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	Product Product `gorm:"foreignKey:ProductID" json:"product"`
}

// TableName returns the table name for the ReceiptDetail model
func (ReceiptDetail) TableName() string {
	return "receipt_details"
}

// Total returns quantity times the discount unit price
func (d *ReceiptDetail) Total() int64 {
	return int64(d.Quantity) * d.DiscountUnitPrice
}

// ApplyDiscount returns price*(100-discount)/100. The result is exact when
// price is a whole number of cents; otherwise the last unit is rounded half
// away from zero.
func ApplyDiscount(price int64, discount int) int64 {
	n := price * int64(100-discount)
	if n < 0 {
		return (n - 50) / 100
	}
	return (n + 50) / 100
}
