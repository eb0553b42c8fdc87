package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/langpal/langpal-api/internal/kvstore"
	"github.com/langpal/langpal-api/internal/log"
	"github.com/langpal/langpal-api/pkg/utils"
)

const AppEnvKey = "APP_ENV"

// Environment is the normalized APP_ENV value. The empty value is treated as development.
type Environment string

func ParseEnvironment(raw string) Environment {
	return Environment(strings.ToLower(strings.TrimSpace(raw)))
}

func CurrentEnvironment() Environment {
	return ParseEnvironment(os.Getenv(AppEnvKey))
}

func (e Environment) IsDevelopment() bool {
	switch e {
	case "", "dev", "development", "local", "test", "testing":
		return true
	}
	return false
}

func (e Environment) IsProduction() bool {
	return e == "prod" || e == "production"
}

// InitializeEnvFile loads .env from the working directory unless SKIP_DOTENV is set.
// Variables already present in the process environment win. It reports whether a file was loaded.
func InitializeEnvFile(logger *log.Logger) bool {
	if utils.GetEnvBool("SKIP_DOTENV", false) {
		logger.Info("Skipping .env file load", "reason", "SKIP_DOTENV")
		return false
	}

	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No .env file present")
		} else {
			logger.Warn("Failed to load .env file", "error", err.Error())
		}
		return false
	}

	logger.Info("Environment variables loaded from .env file")
	return true
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func ValidateAutoMigrateAllowed(env Environment) error {
	if env.IsDevelopment() {
		return nil
	}
	return fmt.Errorf("--auto-migrate is not allowed when %s=%q (allowed: \"\", dev, development, local, test, testing)", AppEnvKey, string(env))
}

// ValidateStoreDriverAllowed keeps the file-backed sqlite store out of production.
func ValidateStoreDriverAllowed(env Environment, driver string) error {
	if driver == kvstore.DriverSQLite && env.IsProduction() {
		return fmt.Errorf("KV_STORE_DRIVER=sqlite is not allowed when %s=%q", AppEnvKey, string(env))
	}
	return nil
}
