package database

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedDefaultData fills an empty store with a small demo catalogue. A store
// that already holds categories is left untouched.
func SeedDefaultData(db *gorm.DB, log zerolog.Logger) error {
	var count int64
	if err := db.Model(&entity.ProductCategory{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int64("categories", count).Msg("Store already populated, skipping seed")
		return nil
	}

	log.Info().Msg("Seeding default data...")

	err := db.Transaction(func(tx *gorm.DB) error {
		categories := []entity.ProductCategory{
			{CategoryName: "Dairy products"},
			{CategoryName: "Fruit juices"},
			{CategoryName: "Bakery"},
		}
		if err := tx.Omit(clause.Associations).Create(&categories).Error; err != nil {
			return err
		}

		products := []entity.Product{
			{ProductCategoryID: categories[0].ID, ProductName: "Milk", Price: 400000},
			{ProductCategoryID: categories[0].ID, ProductName: "Cheese", Price: 1255000},
			{ProductCategoryID: categories[1].ID, ProductName: "Orange juice", Price: 200000},
			{ProductCategoryID: categories[1].ID, ProductName: "Apple juice", Price: 185000},
			{ProductCategoryID: categories[2].ID, ProductName: "Rye bread", Price: 150000},
		}
		if err := tx.Omit(clause.Associations).Create(&products).Error; err != nil {
			return err
		}

		people := []struct {
			name, surname string
			birth         time.Time
			discount      int
		}{
			{"Han", "Solo", time.Date(1942, 7, 13, 0, 0, 0, 0, time.UTC), 20},
			{"Ethan", "Hunt", time.Date(1964, 8, 18, 0, 0, 0, 0, time.UTC), 10},
		}
		for _, p := range people {
			person := entity.Person{Name: p.name, Surname: p.surname, BirthDate: p.birth}
			if err := tx.Create(&person).Error; err != nil {
				return err
			}
			customer := entity.Customer{PersonID: person.ID, DiscountValue: p.discount}
			if err := tx.Omit(clause.Associations).Create(&customer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to seed default data")
		return err
	}

	log.Info().Msg("Default data seeding completed")
	return nil
}
