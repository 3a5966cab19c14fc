package config

import (
	"log"
	"os"
)

const (
	defaultDBPath       = "./kuyum.db"
	defaultPort         = "8080"
	defaultEnv          = "dev"
	defaultDefaultsPath = "pricing_defaults.yaml"
)

// Config holds service configuration sourced from environment variables.
type Config struct {
	Port          string
	DBPath        string
	Env           string
	AllowedOrigin string
	DefaultsPath  string

	// Upstream rate source keys. A missing key disables that source; the
	// rates client skips it instead of failing.
	ExchangeRateAPIKey string
	MetalPriceAPIKey   string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		Port:               os.Getenv("PORT"),
		DBPath:             os.Getenv("DB_PATH"),
		Env:                os.Getenv("APP_ENV"),
		AllowedOrigin:      os.Getenv("ALLOWED_ORIGIN"),
		DefaultsPath:       os.Getenv("DEFAULTS_PATH"),
		ExchangeRateAPIKey: os.Getenv("EXCHANGERATE_API_KEY"),
		MetalPriceAPIKey:   os.Getenv("METALPRICE_API_KEY"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Env == "" {
		cfg.Env = defaultEnv
	}
	if cfg.DefaultsPath == "" {
		cfg.DefaultsPath = defaultDefaultsPath
	}

	if cfg.ExchangeRateAPIKey == "" {
		log.Print("warning: EXCHANGERATE_API_KEY is not set; USD/TRY fetching is disabled")
	}
	if cfg.MetalPriceAPIKey == "" {
		log.Print("warning: METALPRICE_API_KEY is not set; using public XAU/USD sources only")
	}

	return cfg
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}
