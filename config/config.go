package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"flightnet/loader"
)

// Config is everything the service reads from the environment.
type Config struct {
	Port string

	// DataSource selects where the startup ingestion reads from:
	// "files" (default) or "postgres".
	DataSource string

	AirlinesFile string
	AirportsFile string
	RoutesFile   string

	Postgres loader.PostgresConfig

	StaticDir      string
	AllowedOrigins []string
}

// LoadEnv loads a .env file if one is present. A missing file is not an
// error; deployments set real environment variables instead.
func LoadEnv() {
	for _, path := range []string{".env", "../.env", os.Getenv("FLIGHTNET_ENV")} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			log.Printf("Warning: error loading %s: %v", path, err)
			return
		}
		log.Printf("Loaded environment variables from %s", path)
		return
	}
}

// Load reads the full service configuration from the environment.
func Load() Config {
	return Config{
		Port:       getEnvWithDefault("PORT", "8080"),
		DataSource: getEnvWithDefault("DATA_SOURCE", "files"),

		AirlinesFile: getEnvWithDefault("AIRLINES_FILE", "data/airlines.dat"),
		AirportsFile: getEnvWithDefault("AIRPORTS_FILE", "data/airports.dat"),
		RoutesFile:   getEnvWithDefault("ROUTES_FILE", "data/routes.dat"),

		Postgres: loader.PostgresConfig{
			Host:     getEnvWithDefault("DB_HOST", "localhost"),
			Port:     getEnvWithDefault("DB_PORT", "5432"),
			User:     getEnvWithDefault("DB_USER", "postgres"),
			Password: getEnvWithDefault("DB_PASSWORD", ""),
			DBName:   getEnvWithDefault("DB_NAME", "flightnet"),
			SSLMode:  getEnvWithDefault("DB_SSL_MODE", "disable"),
		},

		StaticDir: getEnvWithDefault("STATIC_DIR", "static"),
		AllowedOrigins: splitList(getEnvWithDefault("ALLOWED_ORIGINS",
			"http://localhost:3000,http://localhost:5173,http://localhost:8080")),
	}
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Helper functions
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
