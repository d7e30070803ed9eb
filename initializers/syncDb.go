package initializers

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/tastybites/tastybites-api/models"
)

func SyncDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Category{},
		&models.Food{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return err
	}
	log.Println("Database synced successfully.")
	return nil
}
