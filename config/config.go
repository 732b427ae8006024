// Package config loads service configuration from config.json with
// environment variable overrides. Environment values take precedence.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is the root configuration.
type Config struct {
	Binance  BinanceConfig  `json:"binance"`
	Scanner  ScannerConfig  `json:"scanner"`
	Redis    RedisConfig    `json:"redis"`
	Database DatabaseConfig `json:"database"`
	Server   ServerConfig   `json:"server"`
	Logging  LoggingConfig  `json:"logging"`
}

// BinanceConfig holds exchange client settings. Keys are optional; the
// service only reads public market data.
type BinanceConfig struct {
	APIKey    string `json:"api_key"`
	SecretKey string `json:"secret_key"`
}

// ScannerConfig holds the background scan loop settings.
type ScannerConfig struct {
	Enabled      bool     `json:"enabled"`
	Symbols      []string `json:"symbols"`
	Timeframe    string   `json:"timeframe"`
	CandleLimit  int      `json:"candle_limit"`
	IntervalSecs int      `json:"interval_seconds"`
	WorkerCount  int      `json:"worker_count"`
}

// RedisConfig holds analysis cache settings.
type RedisConfig struct {
	Address  string `json:"address"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	TTLSecs  int    `json:"ttl_seconds"`
}

// DatabaseConfig holds PostgreSQL settings. Empty host disables persistence.
type DatabaseConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	SSLMode  string `json:"ssl_mode"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string   `json:"host"`
	Port           int      `json:"port"`
	ProductionMode bool     `json:"production_mode"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

// Load reads config.json if present, applies env overrides, and fills in
// defaults. A missing file is not an error.
func Load() (*Config, error) {
	cfg := &Config{}

	if data, err := os.ReadFile("config.json"); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config.json: %w", err)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Binance.APIKey = getEnvOrDefault("BINANCE_API_KEY", cfg.Binance.APIKey)
	cfg.Binance.SecretKey = getEnvOrDefault("BINANCE_SECRET_KEY", cfg.Binance.SecretKey)

	if v := os.Getenv("SCANNER_ENABLED"); v != "" {
		cfg.Scanner.Enabled = v == "true"
	}
	if v := os.Getenv("SCANNER_SYMBOLS"); v != "" {
		cfg.Scanner.Symbols = splitList(v)
	}
	cfg.Scanner.Timeframe = getEnvOrDefault("SCANNER_TIMEFRAME", cfg.Scanner.Timeframe)
	cfg.Scanner.CandleLimit = getEnvIntOrDefault("SCANNER_CANDLE_LIMIT", cfg.Scanner.CandleLimit)
	cfg.Scanner.IntervalSecs = getEnvIntOrDefault("SCANNER_INTERVAL_SECONDS", cfg.Scanner.IntervalSecs)
	cfg.Scanner.WorkerCount = getEnvIntOrDefault("SCANNER_WORKER_COUNT", cfg.Scanner.WorkerCount)

	cfg.Redis.Address = getEnvOrDefault("REDIS_ADDRESS", cfg.Redis.Address)
	cfg.Redis.Password = getEnvOrDefault("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvIntOrDefault("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.TTLSecs = getEnvIntOrDefault("REDIS_TTL_SECONDS", cfg.Redis.TTLSecs)

	cfg.Database.Host = getEnvOrDefault("DB_HOST", cfg.Database.Host)
	cfg.Database.Port = getEnvIntOrDefault("DB_PORT", cfg.Database.Port)
	cfg.Database.User = getEnvOrDefault("DB_USER", cfg.Database.User)
	cfg.Database.Password = getEnvOrDefault("DB_PASSWORD", cfg.Database.Password)
	cfg.Database.Database = getEnvOrDefault("DB_NAME", cfg.Database.Database)
	cfg.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", cfg.Database.SSLMode)

	cfg.Server.Host = getEnvOrDefault("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvIntOrDefault("SERVER_PORT", cfg.Server.Port)
	if v := os.Getenv("SERVER_PRODUCTION"); v != "" {
		cfg.Server.ProductionMode = v == "true"
	}
	if v := os.Getenv("SERVER_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	cfg.Logging.Level = getEnvOrDefault("LOG_LEVEL", cfg.Logging.Level)
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		cfg.Logging.Pretty = v == "true"
	}
}

func applyDefaults(cfg *Config) {
	if len(cfg.Scanner.Symbols) == 0 {
		cfg.Scanner.Symbols = []string{"BTCUSDT", "ETHUSDT", "BNBUSDT", "SOLUSDT"}
	}
	if cfg.Scanner.Timeframe == "" {
		cfg.Scanner.Timeframe = "1h"
	}
	if cfg.Scanner.CandleLimit <= 0 {
		cfg.Scanner.CandleLimit = 100
	}
	if cfg.Scanner.IntervalSecs <= 0 {
		cfg.Scanner.IntervalSecs = 300
	}
	if cfg.Scanner.WorkerCount <= 0 {
		cfg.Scanner.WorkerCount = 4
	}

	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Redis.TTLSecs <= 0 {
		cfg.Redis.TTLSecs = 300
	}

	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
