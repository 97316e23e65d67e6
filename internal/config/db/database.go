package db

import (
	"fmt"
	"time"

	"github.com/linskybing/genie-forms/internal/config"
	"github.com/linskybing/genie-forms/pkg/logger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

func DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
		config.DbSSLMode,
	)
}

// Open connects to dsn and tunes the connection pool.
func Open(dsn string) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	return gdb, nil
}

func Init() {
	var err error
	DB, err = Open(DSN())
	if err != nil {
		logger.L().Fatal("failed to connect to database", zap.Error(err))
	}
	logger.L().Info("database connected", zap.String("host", config.DbHost), zap.String("db", config.DbName))
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}
