package migration

import (
	"fmt"
	"log"

	"freshreceipt-backend/entities"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.Household{}); err != nil {
		log.Fatalf("Error migrating household database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.HouseholdMember{}); err != nil {
		log.Fatalf("Error migrating household member database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.HouseholdInvite{}); err != nil {
		log.Fatalf("Error migrating household invite database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Category{}); err != nil {
		log.Fatalf("Error migrating category database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Receipt{}); err != nil {
		log.Fatalf("Error migrating receipt database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Fatalf("Error migrating food item database: %v", err)
		return err
	}

	if err := seedCategories(db); err != nil {
		log.Fatalf("Error seeding categories: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// seedCategories installs the shelf life reference data. "other" carries no
// default so items landing there fall back to the generic expiry window.
func seedCategories(db *gorm.DB) error {
	defaults := map[string]*int{
		"other":   nil,
		"dairy":   intPtr(7),
		"produce": intPtr(5),
		"meat":    intPtr(3),
		"seafood": intPtr(2),
		"bakery":  intPtr(4),
		"frozen":  intPtr(90),
		"pantry":  intPtr(180),
		"drinks":  intPtr(14),
	}

	for name, days := range defaults {
		category := entities.Category{Name: name, DefaultExpiryDays: days}
		if err := db.Where(entities.Category{Name: name}).
			FirstOrCreate(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

func intPtr(v int) *int {
	return &v
}
