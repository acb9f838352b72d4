package postgres

import (
	"time"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects gorm to the database at dsn. Timestamps created by gorm are
// UTC so they compare with the domain's UTC times.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}
