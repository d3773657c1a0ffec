package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	minJWTSecretLen = 32
)

type Config struct {
	AppEnv          string `envconfig:"APP_ENV" default:"development"`
	Port            string `envconfig:"PORT" default:"8080"`
	DefaultTimezone string `envconfig:"DEFAULT_TIMEZONE" default:"UTC"`
	Storage         string `envconfig:"STORAGE" default:"postgres"`

	Server struct {
		ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
		WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
		IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"120s"`
		ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"5s"`
	} `envconfig:""`

	DB struct {
		Host            string        `envconfig:"DB_HOST" default:"localhost"`
		Port            string        `envconfig:"DB_PORT" default:"5432"`
		User            string        `envconfig:"DB_USER" default:"kanso_user"`
		Password        string        `envconfig:"DB_PASSWORD"`
		Name            string        `envconfig:"DB_NAME" default:"kanso_db"`
		SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
		MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
		ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
		AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	} `envconfig:""`

	Redis struct {
		Enabled  bool          `envconfig:"REDIS_ENABLED" default:"true"`
		Host     string        `envconfig:"REDIS_HOST" default:"localhost"`
		Port     string        `envconfig:"REDIS_PORT" default:"6379"`
		Password string        `envconfig:"REDIS_PASSWORD"`
		DB       int           `envconfig:"REDIS_DB" default:"0"`
		ListTTL  time.Duration `envconfig:"REDIS_LIST_TTL" default:"30m"`
		StatsTTL time.Duration `envconfig:"REDIS_STATS_TTL" default:"24h"`
	} `envconfig:""`

	Auth struct {
		JWTSecret     string        `envconfig:"JWT_SECRET"`
		JWTIssuer     string        `envconfig:"JWT_ISSUER" default:"kanso-timetable"`
		TokenDuration time.Duration `envconfig:"JWT_TOKEN_DURATION" default:"72h"`
	} `envconfig:""`

	RateLimit struct {
		Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
		Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
	} `envconfig:""`

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"json"`
	} `envconfig:""`

	StatsQueueSize int `envconfig:"STATS_QUEUE_SIZE" default:"100"`
}

// Load reads envFiles (missing files are ignored) and then the environment.
// Variables already set in the environment win over the files.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, c.Storage))
	}

	if len(c.Auth.JWTSecret) < minJWTSecretLen {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minJWTSecretLen))
	}

	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		errs = append(errs, fmt.Errorf("DEFAULT_TIMEZONE %q: %w", c.DefaultTimezone, err))
	}

	if c.RateLimit.Requests <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DB.User, c.DB.Password),
		Host:     c.DB.Host + ":" + c.DB.Port,
		Path:     "/" + c.DB.Name,
		RawQuery: url.Values{"sslmode": []string{c.DB.SSLMode}}.Encode(),
	}
	return u.String()
}
