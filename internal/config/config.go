package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/text/currency"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr    string
	DatabaseURL string
	Currency    currency.Unit

	Display Display
}

// Display holds presentation values. The stores never read them.
type Display struct {
	AccentColor      string  `json:"accentColor"`
	CardCornerRadius float64 `json:"cardCornerRadius"`
	DebugMode        bool    `json:"debugMode"`
}

func Load() (Config, error) {
	code := getEnv("CURRENCY", "USD")
	unit, err := currency.ParseISO(code)
	if err != nil {
		return Config{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Currency:    unit,
		Display: Display{
			AccentColor:      getEnv("ACCENT_COLOR", "orange"),
			CardCornerRadius: getEnvFloat("CARD_CORNER_RADIUS", 16),
			DebugMode:        getEnvBool("DEBUG_MODE", true),
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < 0 {
		return def
	}

	return f
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}

	return b
}
