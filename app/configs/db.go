package configs

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func OpenConnection() (*gorm.DB, error) {

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		LoadENV.DBUser,
		LoadENV.DBPassword,
		LoadENV.DBHost,
		LoadENV.DBPort,
		LoadENV.DBName,
	)

	maxRetries := 10
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			sqlDB, pingErr := db.DB()
			if pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					zap.L().Info("database connection established",
						zap.String("host", LoadENV.DBHost),
						zap.String("database", LoadENV.DBName))
					return db, nil
				}
			}
			zap.L().Warn("failed to ping database, retrying",
				zap.Error(pingErr),
				zap.Int("attempt", i+1),
				zap.Duration("retry_in", retryDelay))
		} else {
			zap.L().Warn("failed to open database connection, retrying",
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Duration("retry_in", retryDelay))
		}

		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to database %s after %d retries", LoadENV.DBName, maxRetries)
}
