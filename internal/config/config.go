package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PORT           int
	LOG_LEVEL      string
	DB_DRIVER      string
	DATABASE_URL   string
	CATALOG_URL    string
	JWT_SECRET     string
	REFRESH_SECRET string
	ADMIN_USERNAME string
	KAFKA_ADDRESS  string
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	config := &Config{
		PORT:           EnvIntDefault("PORT", 8080),
		LOG_LEVEL:      EnvDefault("LOG_LEVEL", "info"),
		DB_DRIVER:      EnvDefault("DB_DRIVER", "sqlite"),
		DATABASE_URL:   EnvDefault("DATABASE_URL", "storefront.db"),
		CATALOG_URL:    EnvDefault("CATALOG_URL", "https://dummyjson.com"),
		JWT_SECRET:     os.Getenv("JWT_SECRET"),
		REFRESH_SECRET: os.Getenv("REFRESH_SECRET"),
		ADMIN_USERNAME: EnvDefault("ADMIN_USERNAME", "emilys"),
		KAFKA_ADDRESS:  os.Getenv("KAFKA_ADDRESS"),
	}

	return config, nil
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
