package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort       string
	PostgresDSN    string
	RedisURL       string
	JWTSecret      string
	AccessTokenTTL time.Duration
	LogLevel       string
	DBMaxOpenConns int
	DBMaxIdleConns int
	DBConnMaxIdle  time.Duration
	DBConnMaxLife  time.Duration
	RequestTimeout time.Duration
	SMTP           SMTPConfig
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		PostgresDSN:    getEnv("DATABASE_URL", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		AccessTokenTTL: getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBMaxOpenConns: getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:  getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:  getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 10*time.Second),
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "no-reply@scholarhub.local"),
		},
	}
	cfg.SMTP.Enabled = cfg.SMTP.Host != ""

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}
