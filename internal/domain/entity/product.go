package entity

import (
	"math"
	"time"
)

// ProductCategory groups products
type ProductCategory struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CategoryName string    `gorm:"size:255;not null" json:"category_name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:ProductCategoryID" json:"-"`
}

// TableName returns the table name for the ProductCategory model
func (ProductCategory) TableName() string {
	return "product_categories"
}

// Product represents a product sold in the market
type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	ProductCategoryID uint      `gorm:"not null;index" json:"product_category_id"`
	ProductName       string    `gorm:"size:255;not null" json:"product_name"`
	Price             int64     `gorm:"default:0" json:"price"` // Stored in MoneyScale units
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationships
	Category       ProductCategory `gorm:"foreignKey:ProductCategoryID" json:"category"`
	ReceiptDetails []ReceiptDetail `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetPriceDecimal returns the price as a decimal (for display)
func (p *Product) GetPriceDecimal() float64 {
	return MoneyToDecimal(p.Price)
}

// SetPriceFromDecimal sets the price from a decimal value
func (p *Product) SetPriceFromDecimal(price float64) {
	p.Price = DecimalToMoney(price)
}

// MoneyScale is the number of stored units per currency unit. A percentage
// discount of a price with up to two decimal places stays exact at this scale.
const MoneyScale = 10000

// MoneyDecimals is the number of decimal places an amount may carry
const MoneyDecimals = 4

// DecimalToMoney converts a decimal amount to stored units, rounding half
// away from zero
func DecimalToMoney(amount float64) int64 {
	return int64(math.Round(amount * MoneyScale))
}

// MoneyToDecimal converts stored units to a decimal amount
func MoneyToDecimal(units int64) float64 {
	return float64(units) / MoneyScale
}

// FitsMoneyScale reports whether amount has at most MoneyDecimals decimal places
func FitsMoneyScale(amount float64) bool {
	scaled := amount * MoneyScale
	return math.Abs(scaled-math.Round(scaled)) < 1e-3
}
