package initializers

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// ConnectToDB opens the MySQL connection and returns the handle; callers own
// it and pass it to the controllers. TranslateError lets the order-number
// retry loop detect duplicate-key violations portably.
func ConnectToDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}
