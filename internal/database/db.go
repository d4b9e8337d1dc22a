package database

import (
	"log"

	"shf-backend/internal/config"
	"shf-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	// TranslateError turns driver-level unique violations into
	// gorm.ErrDuplicatedKey so handlers can report them as client errors.
	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connection established, migration complete.")
}

// Migrate is separate from Init so tests can run the same schema against an
// in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Program{},
		&models.News{},
		&models.GalleryItem{},
		&models.ContactMessage{},
		&models.DonationCategory{},
		&models.Donation{},
		&models.Settings{},
	)
}
