package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"hotelbooking/repository"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func getDBConfigByEnv(env string) (string, error) {
	var prefix string
	switch env {
	case "dev", "qc", "prod":
		prefix = strings.ToUpper(env) + "_DB_"
	default:
		return "", fmt.Errorf("unknown environment: %s", env)
	}

	user := os.Getenv(prefix + "USER")
	password := os.Getenv(prefix + "PASSWORD")
	host := os.Getenv(prefix + "HOST")
	port := os.Getenv(prefix + "PORT")
	name := os.Getenv(prefix + "NAME")
	if host == "" || name == "" {
		return "", fmt.Errorf("%sHOST and %sNAME are required", prefix, prefix)
	}
	sslmode := os.Getenv(prefix + "SSLMODE")
	if sslmode == "" {
		sslmode = "require"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=Asia/Ho_Chi_Minh",
		host, user, password, name, port, sslmode), nil
}

// ConnectDB mở kết nối postgres và migrate schema
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("fail to connect to db: %w", err)
	}

	if err := repository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Println("Successfully connected to db")
	return db, nil
}
