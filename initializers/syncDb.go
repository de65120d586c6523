package initializers

import (
	"log"

	"github.com/milaanpub/bookhouse-api/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.Category{},
		&models.Order{},
		&models.OrderItem{},
		&models.Event{},
		&models.EventCategory{},
		&models.EventRegistrationForm{},
		&models.EventRegistration{},
		&models.EventLeaderboard{},
	)
	log.Println("Database synced successfully.")
}
