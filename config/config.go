package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string

	// RabbitURL enables allocation event publishing when set.
	RabbitURL string

	// DatabaseDSN enables the Postgres audit trail when set.
	DatabaseDSN string

	// StateFile is the flat file used for save/load of the entity set.
	StateFile string

	// SeedDemo loads the sample campus dataset at startup.
	SeedDemo bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] no .env file found, relying on environment")
	}

	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		RabbitURL:   os.Getenv("RABBITMQ_URL"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		StateFile:   getEnv("STATE_FILE", "campus_state.json"),
		SeedDemo:    getEnvBool("SEED_DEMO", false),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("[Config] invalid boolean for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
