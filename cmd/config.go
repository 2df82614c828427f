package cmd

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"foodloop/internal/adapters/out/geocoding"
	"foodloop/internal/adapters/out/notify"
	"foodloop/internal/adapters/out/postgres"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/jobs"

	"github.com/joho/godotenv"
)

const StoreDriverBadger = "badger"

type Config struct {
	HTTPPort string

	StoreDriver string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSslMode   string
	SQLitePath  string
	BadgerPath  string

	GeocoderURL           string
	GeocoderCountryCodes  string
	GeocoderUserAgent     string
	GeocoderRatePerSecond float64
	GeocoderTimeout       time.Duration
	GeocoderNegativeTTL   time.Duration

	ServiceArea kernel.BoundingBox

	SimulationInterval time.Duration
	ReconcileSchedule  string
	ReconcileBatchSize int

	NotifyWorkers   int
	NotifyQueueSize int
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	VAPID           notify.VAPIDConfig

	LogLevel slog.Level
}

// LoadConfig reads the environment, after merging a .env file from the
// working directory when one exists. Variables already set win over the file.
func LoadConfig() Config {
	_ = godotenv.Load(".env")

	area := kernel.DefaultServiceArea
	return Config{
		HTTPPort: envString("HTTP_PORT", "8080"),

		StoreDriver: strings.ToLower(envString("STORE_DRIVER", postgres.DriverPostgres)),
		DBHost:      envString("DB_HOST", "localhost"),
		DBPort:      envString("DB_PORT", "5432"),
		DBUser:      envString("DB_USER", "postgres"),
		DBPassword:  envString("DB_PASSWORD", ""),
		DBName:      envString("DB_NAME", "foodloop"),
		DBSslMode:   envString("DB_SSLMODE", "disable"),
		SQLitePath:  envString("SQLITE_PATH", "foodloop.db"),
		BadgerPath:  envString("BADGER_PATH", "data/badger"),

		GeocoderURL:           envString("GEOCODER_URL", geocoding.DefaultBaseURL),
		GeocoderCountryCodes:  envString("GEOCODER_COUNTRY_CODES", "lk"),
		GeocoderUserAgent:     envString("GEOCODER_USER_AGENT", geocoding.DefaultUserAgent),
		GeocoderRatePerSecond: envFloat("GEOCODER_RATE_PER_SECOND", 1),
		GeocoderTimeout:       envDuration("GEOCODER_TIMEOUT", 5*time.Second),
		GeocoderNegativeTTL:   envDuration("GEOCODER_NEGATIVE_TTL", geocoding.DefaultNegativeTTL),

		ServiceArea: kernel.BoundingBox{
			MinLat: envFloat("SERVICE_AREA_MIN_LAT", area.MinLat),
			MaxLat: envFloat("SERVICE_AREA_MAX_LAT", area.MaxLat),
			MinLng: envFloat("SERVICE_AREA_MIN_LNG", area.MinLng),
			MaxLng: envFloat("SERVICE_AREA_MAX_LNG", area.MaxLng),
		},

		SimulationInterval: envDuration("SIMULATION_INTERVAL", jobs.DefaultSimulationInterval),
		ReconcileSchedule:  envString("RECONCILE_SCHEDULE", jobs.DefaultReconcileSchedule),
		ReconcileBatchSize: envInt("RECONCILE_BATCH_SIZE", jobs.DefaultReconcileBatchSize),

		NotifyWorkers:   envInt("NOTIFY_WORKERS", notify.DefaultWorkers),
		NotifyQueueSize: envInt("NOTIFY_QUEUE_SIZE", notify.DefaultQueueSize),
		RedisAddr:       envString("REDIS_ADDR", ""),
		RedisPassword:   envString("REDIS_PASSWORD", ""),
		RedisDB:         envInt("REDIS_DB", 0),
		VAPID: notify.VAPIDConfig{
			PublicKey:  envString("VAPID_PUBLIC_KEY", ""),
			PrivateKey: envString("VAPID_PRIVATE_KEY", ""),
			Subject:    envString("VAPID_SUBJECT", "mailto:admin@foodloop.local"),
		},

		LogLevel: envLevel("LOG_LEVEL", slog.LevelInfo),
	}
}

// DSN returns the connection string for the configured relational driver.
func (c Config) DSN() string {
	if c.StoreDriver == postgres.DriverSQLite {
		return c.SQLitePath
	}
	return postgres.PostgresDSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(envString(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(envString(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(envString(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func envLevel(key string, fallback slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(envString(key, ""))); err != nil {
		return fallback
	}
	return level
}
