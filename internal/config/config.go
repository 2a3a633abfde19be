package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/leasingsys/leasing-service/internal/utils"
)

const AppName = "leasing-service"

const (
	StoreBackendMemory   = "memory"
	StoreBackendPostgres = "postgres"
)

type Config struct {
	AppName      string
	AppPort      string
	AppUrl       string
	StoreBackend string
	DBUrl        string
}

func LoadConfig() *Config {
	// Optional .env for local runs; the deployed environment injects real vars.
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug("No .env file found; using process environment")
	}

	utils.Logger.Info("Loading config for app: ", AppName)

	backend := getEnv("STORE_BACKEND", StoreBackendMemory)
	if backend != StoreBackendMemory && backend != StoreBackendPostgres {
		utils.Logger.Fatalf("STORE_BACKEND must be %q or %q, got %q",
			StoreBackendMemory, StoreBackendPostgres, backend)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if backend == StoreBackendPostgres && dbURL == "" {
		utils.Logger.Fatal("DATABASE_URL env var is missing")
	}

	cfg := &Config{
		AppName:      AppName,
		AppPort:      getEnv("APP_PORT", "8080"),
		AppUrl:       getEnv("APP_URL", "*"),
		StoreBackend: backend,
		DBUrl:        dbURL,
	}

	utils.Logger.Infof("Loaded config for %s (store backend: %s)", AppName, backend)
	return cfg
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
