package entity

import (
	"time"
)

// Person holds the personal details owned by a customer
type Person struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Surname   string    `gorm:"size:255;not null" json:"surname"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Person model
func (Person) TableName() string {
	return "persons"
}

// Customer represents a market customer
type Customer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PersonID      uint      `gorm:"not null;index" json:"person_id"`
	DiscountValue int       `gorm:"default:0" json:"discount_value"` // Percent
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Person   Person    `gorm:"foreignKey:PersonID" json:"person"`
	Receipts []Receipt `gorm:"foreignKey:CustomerID" json:"-"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// FullName returns the person's name and surname separated by a space
func (c *Customer) FullName() string {
	return c.Person.Name + " " + c.Person.Surname
}

// HasBoughtProduct reports whether any receipt of the customer holds the product
func (c *Customer) HasBoughtProduct(productID uint) bool {
	for _, receipt := range c.Receipts {
		if receipt.FindDetail(productID) != nil {
			return true
		}
	}
	return false
}
