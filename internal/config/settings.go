package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/rpgo/swp-projector/internal/domain"
)

// Settings are process-level options read from the environment
type Settings struct {
	Addr     string
	LogLevel string
	Currency domain.Currency
}

// LoadSettings reads the given .env files (".env" when none are named) and
// then the SWP_* environment variables. Missing .env files are ignored;
// variables already set in the environment win.
func LoadSettings(files ...string) (Settings, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Settings{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	def := domain.DefaultCurrency()
	return Settings{
		Addr:     getEnv("SWP_ADDR", ":8080"),
		LogLevel: getEnv("SWP_LOG_LEVEL", "info"),
		Currency: domain.Currency{
			Symbol: getEnv("SWP_CURRENCY_SYMBOL", def.Symbol),
			Code:   getEnv("SWP_CURRENCY_CODE", def.Code),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
