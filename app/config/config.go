package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// Config holds everything the app reads from the environment.
type Config struct {
	DB        *sql.DB
	JWTSecret string
	OpenAI    OpenAIConfig
}

// OpenAIConfig configures the feedback generator.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

var AppConfig *Config

// LoadEnv reads .env if present. Real deployments set the environment
// directly, so a missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
}

// InitDB opens the Postgres pool and builds the global config.
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		os.Getenv("DB_PASSWORD"),
		getEnv("DB_NAME", "dlab_dashboard"),
		getEnv("DB_SSLMODE", "disable"),
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Database connection established")

	AppConfig = &Config{
		DB:        db,
		JWTSecret: getEnv("JWT_SECRET", "dlab-dashboard-dev-secret"),
		OpenAI: OpenAIConfig{
			APIKey: os.Getenv("OPENAI_API_KEY"),
			Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
	}
}

// GetDB returns the shared connection pool.
func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetJWTSecret returns the token signing key.
func GetJWTSecret() []byte {
	if AppConfig != nil {
		return []byte(AppConfig.JWTSecret)
	}
	return []byte(getEnv("JWT_SECRET", "dlab-dashboard-dev-secret"))
}

// GetOpenAI returns the feedback generator settings.
func GetOpenAI() OpenAIConfig {
	if AppConfig != nil {
		return AppConfig.OpenAI
	}
	return OpenAIConfig{
		APIKey: os.Getenv("OPENAI_API_KEY"),
		Model:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
