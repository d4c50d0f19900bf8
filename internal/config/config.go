package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server    ServerConfig
	Worker    WorkerConfig
	Providers ProvidersConfig
	Collector CollectorConfig
	DB        DatabaseConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	RateLimitRPS int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

// ProviderMode selects between simulated providers and real upstream APIs.
type ProviderMode string

const (
	ProviderModeMock ProviderMode = "mock"
	ProviderModeReal ProviderMode = "real"
)

type ProvidersConfig struct {
	Mode              ProviderMode
	NWSURL            string
	OpenWeatherURL    string
	OpenWeatherAPIKey string
	USGSURL           string
	RequestTimeout    time.Duration
}

type CollectorConfig struct {
	CollectInterval time.Duration
	MonitorInterval time.Duration
	AlertDedupe     time.Duration
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "localhost"),
			Port:         getEnvInt("SERVER_PORT", 8080),
			RateLimitRPS: getEnvInt("RATE_LIMIT_RPS", 10),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Providers: ProvidersConfig{
			Mode:              ProviderMode(getEnv("PROVIDERS_MODE", "mock")),
			NWSURL:            getEnv("NWS_URL", "https://api.weather.gov"),
			OpenWeatherURL:    getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5"),
			OpenWeatherAPIKey: getEnv("OPENWEATHER_API_KEY", ""),
			USGSURL:           getEnv("USGS_URL", "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_day.geojson"),
			RequestTimeout:    getEnvDuration("PROVIDER_TIMEOUT", 10*time.Second),
		},
		Collector: CollectorConfig{
			CollectInterval: getEnvDuration("COLLECT_INTERVAL", time.Minute),
			MonitorInterval: getEnvDuration("MONITOR_INTERVAL", 5*time.Minute),
			AlertDedupe:     getEnvDuration("ALERT_DEDUPE_WINDOW", time.Hour),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/logistics.db"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Providers.Mode != ProviderModeMock && c.Providers.Mode != ProviderModeReal {
		return fmt.Errorf("invalid providers mode: %s", c.Providers.Mode)
	}
	if c.Providers.Mode == ProviderModeReal && c.Providers.OpenWeatherAPIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY required when PROVIDERS_MODE=real")
	}

	if c.Collector.CollectInterval < 10*time.Second {
		return fmt.Errorf("collect interval must be at least 10 seconds")
	}
	if c.Collector.MonitorInterval < time.Minute {
		return fmt.Errorf("monitor interval must be at least 1 minute")
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("worker count must be at least 1")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}
