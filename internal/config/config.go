// Package config holds the process-wide configuration. It is built exactly
// once in main and handed to each component explicitly; nothing reads the
// environment after startup.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries every runtime setting of the backend.
type Config struct {
	HTTPAddr  string
	JWTSecret string
	TokenTTL  time.Duration

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	RedisAddr     string
	RedisPassword string

	// UploadDir is the flat directory holding media files.
	UploadDir string
	// MaxUploadBytes caps multipart request bodies.
	MaxUploadBytes int64
	// AggregateCacheTTL bounds staleness of cached heatmap/summary data.
	AggregateCacheTTL time.Duration
}

// Load reads .env if present and builds the configuration from the
// environment, falling back to development defaults.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		JWTSecret:         getenv("JWT_SECRET", "dev_secret_change_me"),
		TokenTTL:          72 * time.Hour,
		DBHost:            getenv("DB_HOST", "localhost"),
		DBPort:            getenv("DB_PORT", "5432"),
		DBUser:            getenv("DB_USER", "user"),
		DBPassword:        getenv("DB_PASSWORD", "password"),
		DBName:            getenv("DB_NAME", "grievancedb"),
		RedisAddr:         getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getenv("REDIS_PASSWORD", ""),
		UploadDir:         getenv("UPLOAD_DIR", "uploads"),
		MaxUploadBytes:    16 << 20,
		AggregateCacheTTL: time.Minute,
	}
}

// DSN renders the postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DepartmentColors assigns each known department a fixed display color for
// the analytics views. Unknown departments fall back to DefaultColor.
var DepartmentColors = map[string]string{
	"Road Maintenance": "#ff6b6b",
	"Sanitation":       "#4ecdc4",
	"Electricity":      "#45b7d1",
	"Water Supply":     "#f9ca24",
	"Public Works":     "#6c5ce7",
}

const DefaultColor = "#a29bfe"

// DepartmentColor returns the display color for a department.
func DepartmentColor(department string) string {
	if c, ok := DepartmentColors[department]; ok {
		return c
	}
	return DefaultColor
}
