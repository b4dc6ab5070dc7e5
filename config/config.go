// Package config provides configuration management and environment variable handling for the application
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds all configuration of the admin backend
type Config struct {
	Database   DatabaseConfig   `json:"database" envPrefix:"DB_"`
	Server     ServerConfig     `json:"server" envPrefix:"SERVER_"`
	Security   SecurityConfig   `json:"security"`
	JWT        JWTConfig        `json:"jwt" envPrefix:"JWT_"`
	Email      EmailConfig      `json:"email" envPrefix:"EMAIL_"`
	Logging    LoggingConfig    `json:"logging" envPrefix:"LOG_"`
	Metrics    MetricsConfig    `json:"metrics" envPrefix:"METRICS_"`
	Cache      CacheConfig      `json:"cache" envPrefix:"CACHE_"`
	Scheduler  SchedulerConfig  `json:"scheduler" envPrefix:"SCHEDULER_"`
	Admin      AdminConfig      `json:"admin" envPrefix:"ADMIN_"`
	Deployment DeploymentConfig `json:"deployment" envPrefix:"APP_"`
}

type DatabaseConfig struct {
	Driver          string        `json:"driver" env:"DRIVER" envDefault:"postgres"` // postgres, sqlite
	Host            string        `json:"host" env:"HOST" envDefault:"localhost"`
	Port            int           `json:"port" env:"PORT" envDefault:"5432"`
	Name            string        `json:"name" env:"NAME" envDefault:"omoikane"`
	User            string        `json:"user" env:"USER" envDefault:"postgres"`
	Password        string        `json:"-" env:"PASSWORD"`
	SSLMode         string        `json:"ssl_mode" env:"SSL_MODE" envDefault:"disable"`
	SQLitePath      string        `json:"sqlite_path" env:"SQLITE_PATH" envDefault:"omoikane.db"`
	MaxOpenConns    int           `json:"max_open_conns" env:"MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `json:"max_idle_conns" env:"MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime" env:"CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `json:"conn_max_idle_time" env:"CONN_MAX_IDLE_TIME" envDefault:"15m"`
	SlowQueryTime   time.Duration `json:"slow_query_time" env:"SLOW_QUERY_TIME" envDefault:"1s"`
	AutoMigrate     bool          `json:"auto_migrate" env:"AUTO_MIGRATE" envDefault:"true"`
}

// PostgresDSN returns the keyword/value connection string for the configured database
func (c DatabaseConfig) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type ServerConfig struct {
	Host              string        `json:"host" env:"HOST" envDefault:"0.0.0.0"`
	Port              int           `json:"port" env:"PORT" envDefault:"8080"`
	ReadTimeout       time.Duration `json:"read_timeout" env:"READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout      time.Duration `json:"write_timeout" env:"WRITE_TIMEOUT" envDefault:"30s"`
	IdleTimeout       time.Duration `json:"idle_timeout" env:"IDLE_TIMEOUT" envDefault:"120s"`
	ShutdownTimeout   time.Duration `json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
	BodyLimit         int           `json:"body_limit" env:"BODY_LIMIT" envDefault:"4194304"`
	TrustedProxies    []string      `json:"trusted_proxies" env:"TRUSTED_PROXIES" envSeparator:"," envDefault:"127.0.0.1"`
	ProxyHeader       string        `json:"proxy_header" env:"PROXY_HEADER" envDefault:"X-Real-IP"`
	EnableCompression bool          `json:"enable_compression" env:"ENABLE_COMPRESSION" envDefault:"true"`
}

type SecurityConfig struct {
	// CORS
	AllowedOrigins   []string `json:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	AllowedMethods   []string `json:"allowed_methods" env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `json:"allowed_headers" env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Origin,Content-Type,Accept,Authorization,X-Requested-With,HX-Request,HX-Target"`
	AllowCredentials bool     `json:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" envDefault:"true"`
	CORSMaxAge       int      `json:"cors_max_age" env:"CORS_MAX_AGE" envDefault:"86400"`

	// Rate Limiting
	AuthRateLimit   int           `json:"auth_rate_limit" env:"AUTH_RATE_LIMIT" envDefault:"20"`       // requests per window
	GlobalRateLimit int           `json:"global_rate_limit" env:"GLOBAL_RATE_LIMIT" envDefault:"2000"` // requests per window
	RateLimitWindow time.Duration `json:"rate_limit_window" env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	// Admin authentication
	BcryptCost         int           `json:"bcrypt_cost" env:"BCRYPT_COST" envDefault:"12"`
	CaptchaEnabled     bool          `json:"captcha_enabled" env:"ADMIN_CAPTCHA_ENABLED" envDefault:"true"`
	CaptchaTTL         time.Duration `json:"captcha_ttl" env:"ADMIN_CAPTCHA_TTL" envDefault:"2m"`
	ResetTokenTTL      time.Duration `json:"reset_token_ttl" env:"RESET_TOKEN_TTL" envDefault:"1h"`
	ActivationTokenTTL time.Duration `json:"activation_token_ttl" env:"ACTIVATION_TOKEN_TTL" envDefault:"168h"`
}

type JWTConfig struct {
	SecretKey       string        `json:"-" env:"SECRET_KEY"`
	PrivateKey      string        `json:"-" env:"PRIVATE_KEY"`                                // RSA private key in PEM format
	PublicKey       string        `json:"public_key" env:"PUBLIC_KEY"`                        // RSA public key in PEM format
	UseRSAKeys      bool          `json:"use_rsa_keys" env:"USE_RSA_KEYS" envDefault:"false"` // Whether to use RSA keys instead of secret key
	AccessTokenTTL  time.Duration `json:"access_token_ttl" env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	RefreshTokenTTL time.Duration `json:"refresh_token_ttl" env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	Issuer          string        `json:"issuer" env:"ISSUER" envDefault:"omoikane"`
	Audience        string        `json:"audience" env:"AUDIENCE" envDefault:"omoikane-admin"`
}

type EmailConfig struct {
	Provider  string `json:"provider" env:"PROVIDER" envDefault:"mock"` // mock, smtp
	Host      string `json:"host" env:"HOST"`
	Port      int    `json:"port" env:"PORT" envDefault:"587"`
	Username  string `json:"username" env:"USERNAME"`
	Password  string `json:"-" env:"PASSWORD"`
	FromEmail string `json:"from_email" env:"FROM_EMAIL"`
}

type LoggingConfig struct {
	Level      string `json:"level" env:"LEVEL" envDefault:"info"`     // debug, info, warn, error
	Output     string `json:"output" env:"OUTPUT" envDefault:"stdout"` // stdout, file, both
	FilePath   string `json:"file_path" env:"FILE_PATH" envDefault:"logs/omoikane.log"`
	MaxSize    int    `json:"max_size" env:"MAX_SIZE" envDefault:"100"` // MB
	MaxBackups int    `json:"max_backups" env:"MAX_BACKUPS" envDefault:"5"`
	MaxAge     int    `json:"max_age" env:"MAX_AGE" envDefault:"30"` // days
	Compress   bool   `json:"compress" env:"COMPRESS" envDefault:"true"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled" env:"ENABLED" envDefault:"true"`
	Path    string `json:"path" env:"PATH" envDefault:"/metrics"`
}

type CacheConfig struct {
	Enabled     bool   `json:"enabled" env:"ENABLED" envDefault:"false"`
	RedisURL    string `json:"-" env:"REDIS_URL"`
	RedisDB     int    `json:"redis_db" env:"REDIS_DB" envDefault:"0"`
	RedisPrefix string `json:"redis_prefix" env:"REDIS_PREFIX" envDefault:"omoikane:revoked:"`
}

type SchedulerConfig struct {
	Enabled bool `json:"enabled" env:"ENABLED" envDefault:"true"`
	// Cron specs; descriptors such as @hourly and @every are accepted
	ResetTokenPurgeSpec  string `json:"reset_token_purge_spec" env:"RESET_TOKEN_PURGE_SPEC" envDefault:"@every 15m"`
	ActivationExpirySpec string `json:"activation_expiry_spec" env:"ACTIVATION_EXPIRY_SPEC" envDefault:"@hourly"`
}

type AdminConfig struct {
	BootstrapUsername string `json:"bootstrap_username" env:"BOOTSTRAP_USERNAME"`
	BootstrapEmail    string `json:"bootstrap_email" env:"BOOTSTRAP_EMAIL"`
	// PublicBaseURL prefixes links sent in activation and reset emails
	PublicBaseURL string `json:"public_base_url" env:"PUBLIC_BASE_URL" envDefault:"http://localhost:3000"`
}

type DeploymentConfig struct {
	Environment string `json:"environment" env:"ENV" envDefault:"development"`
	Version     string `json:"version" env:"VERSION" envDefault:"dev"`
	CommitHash  string `json:"commit_hash" env:"COMMIT_HASH"`
}

// IsDevelopment reports whether the app runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Deployment.Environment != "production"
}

// Load reads the optional .env file (or ENV_FILE) and parses the environment into a Config.
// Variables already present in the environment win over the file.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// ValidateConfig reports every configuration problem at once
func ValidateConfig(cfg *Config) error {
	var problems []string

	// Validate database configuration
	switch cfg.Database.Driver {
	case "postgres":
		if cfg.Database.Host == "" {
			problems = append(problems, "DB_HOST is required")
		}
		if cfg.Database.Port <= 0 || cfg.Database.Port > 65535 {
			problems = append(problems, "DB_PORT must be between 1 and 65535")
		}
		if cfg.Database.Name == "" {
			problems = append(problems, "DB_NAME is required")
		}
		if cfg.Database.User == "" {
			problems = append(problems, "DB_USER is required")
		}
	case "sqlite":
		if cfg.Database.SQLitePath == "" {
			problems = append(problems, "DB_SQLITE_PATH is required for the sqlite driver")
		}
	default:
		problems = append(problems, "DB_DRIVER must be one of: postgres, sqlite")
	}

	// Validate JWT configuration
	if cfg.JWT.UseRSAKeys {
		if cfg.JWT.PrivateKey == "" || cfg.JWT.PublicKey == "" {
			problems = append(problems, "JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required when JWT_USE_RSA_KEYS is set")
		}
	} else if len(cfg.JWT.SecretKey) < 32 {
		problems = append(problems, "JWT_SECRET_KEY must be at least 32 characters long")
	}
	if cfg.JWT.AccessTokenTTL <= 0 {
		problems = append(problems, "JWT_ACCESS_TOKEN_TTL must be positive")
	}
	if cfg.JWT.RefreshTokenTTL <= 0 {
		problems = append(problems, "JWT_REFRESH_TOKEN_TTL must be positive")
	}
	if cfg.JWT.Issuer == "" {
		problems = append(problems, "JWT_ISSUER is required")
	}
	if cfg.JWT.Audience == "" {
		problems = append(problems, "JWT_AUDIENCE is required")
	}

	// Validate server configuration
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		problems = append(problems, "SERVER_PORT must be between 1 and 65535")
	}
	if cfg.Server.ReadTimeout <= 0 {
		problems = append(problems, "SERVER_READ_TIMEOUT must be positive")
	}
	if cfg.Server.WriteTimeout <= 0 {
		problems = append(problems, "SERVER_WRITE_TIMEOUT must be positive")
	}

	// Validate security configuration
	if cfg.Security.BcryptCost < 10 || cfg.Security.BcryptCost > 14 {
		problems = append(problems, "BCRYPT_COST must be between 10 and 14")
	}
	if cfg.Security.ResetTokenTTL <= 0 {
		problems = append(problems, "RESET_TOKEN_TTL must be positive")
	}
	if cfg.Security.ActivationTokenTTL <= 0 {
		problems = append(problems, "ACTIVATION_TOKEN_TTL must be positive")
	}

	// Validate email configuration
	switch cfg.Email.Provider {
	case "mock":
	case "smtp":
		if cfg.Email.Host == "" {
			problems = append(problems, "EMAIL_HOST is required for the smtp provider")
		}
		if cfg.Email.FromEmail == "" {
			problems = append(problems, "EMAIL_FROM_EMAIL is required for the smtp provider")
		}
	default:
		problems = append(problems, "EMAIL_PROVIDER must be one of: mock, smtp")
	}

	// Validate logging configuration
	if !oneOf(cfg.Logging.Level, "debug", "info", "warn", "error") {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	if !oneOf(cfg.Logging.Output, "stdout", "file", "both") {
		problems = append(problems, "LOG_OUTPUT must be one of: stdout, file, both")
	} else if cfg.Logging.Output != "stdout" && cfg.Logging.FilePath == "" {
		problems = append(problems, "LOG_FILE_PATH is required when logging to a file")
	}

	// Validate cache configuration if enabled
	if cfg.Cache.Enabled && cfg.Cache.RedisURL == "" {
		problems = append(problems, "CACHE_REDIS_URL is required when cache is enabled")
	}

	// Validate scheduler configuration if enabled
	if cfg.Scheduler.Enabled {
		if _, err := cron.ParseStandard(cfg.Scheduler.ResetTokenPurgeSpec); err != nil {
			problems = append(problems, fmt.Sprintf("SCHEDULER_RESET_TOKEN_PURGE_SPEC is invalid: %v", err))
		}
		if _, err := cron.ParseStandard(cfg.Scheduler.ActivationExpirySpec); err != nil {
			problems = append(problems, fmt.Sprintf("SCHEDULER_ACTIVATION_EXPIRY_SPEC is invalid: %v", err))
		}
	}

	// Bootstrap needs both values or neither
	if (cfg.Admin.BootstrapUsername == "") != (cfg.Admin.BootstrapEmail == "") {
		problems = append(problems, "ADMIN_BOOTSTRAP_USERNAME and ADMIN_BOOTSTRAP_EMAIL must be set together")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
