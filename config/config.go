package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const EnvDemo = "demo"

// Config là cấu hình của dịch vụ, đọc từ biến môi trường
type Config struct {
	Env            string
	Port           string
	DatabaseDSN    string
	RedisAddr      string
	RedisUser      string
	RedisPassword  string
	JWTSecret      string
	AccessTokenTTL time.Duration
	CloudinaryURL  string
	GoogleClientID string
	RangeMode      string
	LogLevel       string
	LogDir         string
	CheckoutCron   string
}

// IsDemo: chạy trên store in-memory, không cần postgres/redis
func (c *Config) IsDemo() bool {
	return c.Env == EnvDemo
}

func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func getEnvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Load đọc cấu hình; .env phải được nạp trước bằng LoadEnv
func Load() (*Config, error) {
	cfg := &Config{
		Env:            strings.ToLower(getEnvDefault("ENV", EnvDemo)),
		Port:           getEnvDefault("PORT", "8083"),
		RedisAddr:      GetEnv("REDIS_ADDR"),
		RedisUser:      GetEnv("REDIS_USER"),
		RedisPassword:  GetEnv("REDIS_PASSWORD"),
		JWTSecret:      GetEnv("SECRET_KEY_ACCESS_TOKEN"),
		CloudinaryURL:  GetEnv("CLOUDINARY_URL"),
		GoogleClientID: GetEnv("GOOGLE_CLIENT_ID"),
		RangeMode:      getEnvDefault("BOOKING_RANGE_MODE", "inclusive"),
		LogLevel:       getEnvDefault("LOG_LEVEL", "info"),
		LogDir:         GetEnv("LOG_DIR"),
		CheckoutCron:   getEnvDefault("CHECKOUT_CRON", "0 0 * * *"),
	}

	minutes, err := strconv.Atoi(getEnvDefault("ACCESS_TOKEN_MINUTES", strconv.Itoa(60*24*3)))
	if err != nil || minutes <= 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_MINUTES must be a positive integer")
	}
	cfg.AccessTokenTTL = time.Duration(minutes) * time.Minute

	if cfg.IsDemo() {
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "demo-secret"
		}
		return cfg, nil
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("SECRET_KEY_ACCESS_TOKEN is required")
	}
	dsn, err := getDBConfigByEnv(cfg.Env)
	if err != nil {
		return nil, err
	}
	cfg.DatabaseDSN = dsn
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDR is required")
	}
	return cfg, nil
}
