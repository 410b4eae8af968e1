package db

import (
	"fmt"
	"time"

	"github.com/windoze95/cardapio-api/internal/config"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// New creates a new database connection and migrates the menu schema.
func New(cfg *config.Config) (*gorm.DB, error) {
	database, err := connectToDatabaseWithRetry(cfg.EnvVars.DatabaseUrl, time.Minute, 5*time.Second)
	if err != nil {
		return nil, err
	}
	if err := database.AutoMigrate(&models.MenuItem{}); err != nil {
		return nil, fmt.Errorf("migrate menu items: %w", err)
	}
	return database, nil
}

// connectToDatabaseWithRetry connects to the database and retries if necessary.
func connectToDatabaseWithRetry(databaseURL string, timeout, interval time.Duration) (*gorm.DB, error) {
	logger.Get().Info("connecting to database")
	var database *gorm.DB
	var err error

	start := time.Now()
	for {
		database, err = gorm.Open(postgres.Open(databaseURL), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err == nil {
			break
		}
		if time.Since(start) > timeout {
			return nil, fmt.Errorf("could not connect to database after %s: %w", timeout, err)
		}
		logger.Get().Warn("could not connect to database, retrying...", zap.Error(err))
		time.Sleep(interval)
	}

	return database, nil
}
