package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Worker  WorkerConfig
	Sources SourcesConfig
	Engine  EngineConfig
	DB      DatabaseConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type WorkerConfig struct {
	Count      int
	BufferSize int
}

type SourcesConfig struct {
	NEOEnabled      bool
	NEOFeedURL      string
	NEOAPIKey       string
	NEOPollInterval time.Duration
}

// EngineConfig carries the configuration-time options of the assessment
// engine: which deflection strategies are offered, the default lead time
// assumed when a request does not supply one, and the reference location
// used for hypothetical NEO assessments.
type EngineConfig struct {
	GravityTractorEnabled    bool
	DefaultTimeToImpactHours float64
	ReferenceLatitude        float64
	ReferenceLongitude       float64
}

type DatabaseConfig struct {
	Path string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		Worker: WorkerConfig{
			Count:      getEnvInt("WORKER_COUNT", 2),
			BufferSize: getEnvInt("WORKER_BUFFER_SIZE", 20),
		},
		Sources: SourcesConfig{
			NEOEnabled:      getEnvBool("NEO_ENABLED", false),
			NEOFeedURL:      getEnv("NEO_FEED_URL", "https://api.nasa.gov/neo/rest/v1/feed"),
			NEOAPIKey:       getEnv("NEO_API_KEY", "DEMO_KEY"),
			NEOPollInterval: getEnvDuration("NEO_POLL_INTERVAL", 30*time.Minute),
		},
		Engine: EngineConfig{
			GravityTractorEnabled:    getEnvBool("GRAVITY_TRACTOR_ENABLED", true),
			DefaultTimeToImpactHours: getEnvFloat("DEFAULT_TIME_TO_IMPACT_HOURS", 720),
			ReferenceLatitude:        getEnvFloat("REFERENCE_LATITUDE", -10),
			ReferenceLongitude:       getEnvFloat("REFERENCE_LONGITUDE", -30),
		},
		DB: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/asteroid-watch.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
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
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.Sources.NEOEnabled && c.Sources.NEOPollInterval < time.Minute {
		return fmt.Errorf("NEO poll interval must be at least 1 minute")
	}
	if c.Engine.DefaultTimeToImpactHours < 0 {
		return fmt.Errorf("default time to impact must not be negative")
	}
	if c.Engine.ReferenceLatitude < -90 || c.Engine.ReferenceLatitude > 90 {
		return fmt.Errorf("invalid reference latitude: %g", c.Engine.ReferenceLatitude)
	}
	if c.Engine.ReferenceLongitude < -180 || c.Engine.ReferenceLongitude > 180 {
		return fmt.Errorf("invalid reference longitude: %g", c.Engine.ReferenceLongitude)
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

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
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
