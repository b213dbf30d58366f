// Package testutil provides an isolated, seeded database for package tests.
package testutil

import (
	"regexp"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/infrastructure/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// NewTestDB opens a migrated in-memory database private to t
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + unsafeName.ReplaceAllString(t.Name(), "_") +
		"?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// keeps the shared in-memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.AutoMigrate(db, zerolog.Nop()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// NewSeededDB is NewTestDB followed by Seed
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewTestDB(t)
	Seed(t, db)
	return db
}

// Date returns midnight UTC of the given day
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Fixture rows written by Seed
var (
	Persons = []entity.Person{
		{ID: 1, Name: "Han", Surname: "Solo", BirthDate: Date(1942, 7, 13)},
		{ID: 2, Name: "Ethan", Surname: "Hunt", BirthDate: Date(1964, 8, 18)},
	}
	Customers = []entity.Customer{
		{ID: 1, PersonID: 1, DiscountValue: 20},
		{ID: 2, PersonID: 2, DiscountValue: 10},
	}
	Categories = []entity.ProductCategory{
		{ID: 1, CategoryName: "Dairy products"},
		{ID: 2, CategoryName: "Fruit juices"},
	}
	Products = []entity.Product{
		{ID: 1, ProductCategoryID: 1, ProductName: "Milk", Price: 400000},
		{ID: 2, ProductCategoryID: 2, ProductName: "Orange juice", Price: 200000},
	}
	Receipts = []entity.Receipt{
		{ID: 1, CustomerID: 1, OperationDate: Date(2021, 7, 5), IsCheckedOut: true},
		{ID: 2, CustomerID: 1, OperationDate: Date(2021, 8, 10), IsCheckedOut: true},
		{ID: 3, CustomerID: 2, OperationDate: Date(2021, 10, 15), IsCheckedOut: false},
	}
	ReceiptDetails = []entity.ReceiptDetail{
		{ID: 1, ReceiptID: 1, ProductID: 1, UnitPrice: 400000, DiscountUnitPrice: 320000, Quantity: 3},
		{ID: 2, ReceiptID: 1, ProductID: 2, UnitPrice: 200000, DiscountUnitPrice: 160000, Quantity: 1},
		{ID: 3, ReceiptID: 2, ProductID: 2, UnitPrice: 200000, DiscountUnitPrice: 320000, Quantity: 2},
		{ID: 4, ReceiptID: 3, ProductID: 1, UnitPrice: 400000, DiscountUnitPrice: 360000, Quantity: 2},
		{ID: 5, ReceiptID: 3, ProductID: 2, UnitPrice: 200000, DiscountUnitPrice: 180000, Quantity: 5},
	}
)

// Seed writes the fixture rows. Slices are copied so tests may mutate the
// package variables' results freely.
func Seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	rows := []interface{}{
		clone(Persons),
		clone(Customers),
		clone(Categories),
		clone(Products),
		clone(Receipts),
		clone(ReceiptDetails),
	}
	for _, r := range rows {
		if err := db.Omit(clause.Associations).Create(r).Error; err != nil {
			t.Fatalf("seed %T: %v", r, err)
		}
	}
}

func clone[T any](items []T) *[]T {
	out := append([]T(nil), items...)
	return &out
}
