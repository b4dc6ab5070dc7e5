package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"
)

func validConfig() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", SQLitePath: "test.db"},
		Server:   ServerConfig{Port: 8080, ReadTimeout: time.Second, WriteTimeout: time.Second},
		Security: SecurityConfig{BcryptCost: 12, ResetTokenTTL: time.Hour, ActivationTokenTTL: time.Hour},
		JWT: JWTConfig{
			SecretKey:       "test-secret-key-for-jwt-signing-32-chars",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: time.Hour,
			Issuer:          "omoikane",
			Audience:        "omoikane-admin",
		},
		Email:     EmailConfig{Provider: "mock"},
		Logging:   LoggingConfig{Level: "info", Output: "stdout"},
		Scheduler: SchedulerConfig{Enabled: true, ResetTokenPurgeSpec: "@every 15m", ActivationExpirySpec: "0 * * * *"},
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("JWT_SECRET_KEY", "test-secret-key-for-jwt-signing-32-chars")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"127.0.0.1"}, cfg.Server.TrustedProxies)
	assert.Equal(t, 12, cfg.Security.BcryptCost)
	assert.Equal(t, 168*time.Hour, cfg.Security.ActivationTokenTTL)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "@every 15m", cfg.Scheduler.ResetTokenPurgeSpec)
	assert.True(t, cfg.IsDevelopment())
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "DB_DRIVER=sqlite\nDB_SQLITE_PATH=/tmp/omoikane.db\nCORS_ALLOWED_ORIGINS=https://a.example,https://b.example\nAPP_ENV=production\nSERVER_PORT=9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Cleanup(func() {
		for _, key := range []string{"DB_DRIVER", "DB_SQLITE_PATH", "CORS_ALLOWED_ORIGINS", "APP_ENV"} {
			_ = os.Unsetenv(key)
		}
	})
	// the real environment wins over the file
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/omoikane.db", cfg.Database.SQLitePath)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SERVER_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, ValidateConfig(validConfig()))
	})

	t.Run("AggregatesProblems", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Driver = "mysql"
		cfg.JWT.SecretKey = "short"
		cfg.Security.BcryptCost = 4

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DRIVER must be one of")
		assert.Contains(t, err.Error(), "JWT_SECRET_KEY must be at least 32 characters long")
		assert.Contains(t, err.Error(), "BCRYPT_COST must be between 10 and 14")
	})

	t.Run("PostgresNeedsConnectionDetails", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database = DatabaseConfig{Driver: "postgres"}

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_HOST is required")
		assert.Contains(t, err.Error(), "DB_PORT must be between 1 and 65535")
	})

	t.Run("RSAKeysRequired", func(t *testing.T) {
		cfg := validConfig()
		cfg.JWT.UseRSAKeys = true
		cfg.JWT.SecretKey = ""

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "JWT_PRIVATE_KEY and JWT_PUBLIC_KEY are required")
	})

	t.Run("SMTPNeedsHost", func(t *testing.T) {
		cfg := validConfig()
		cfg.Email.Provider = "smtp"

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "EMAIL_HOST is required")
	})

	t.Run("InvalidCronSpec", func(t *testing.T) {
		cfg := validConfig()
		cfg.Scheduler.ActivationExpirySpec = "every now and then"

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SCHEDULER_ACTIVATION_EXPIRY_SPEC is invalid")

		cfg.Scheduler.Enabled = false
		assert.NoError(t, ValidateConfig(cfg))
	})

	t.Run("BootstrapNeedsBothValues", func(t *testing.T) {
		cfg := validConfig()
		cfg.Admin.BootstrapUsername = "root"

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ADMIN_BOOTSTRAP_USERNAME and ADMIN_BOOTSTRAP_EMAIL")
	})

	t.Run("FileLoggingNeedsPath", func(t *testing.T) {
		cfg := validConfig()
		cfg.Logging.Output = "file"

		err := ValidateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "LOG_FILE_PATH is required")
	})
}

func TestSetupLogging(t *testing.T) {
	t.Run("RotatingFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "app.log")
		w, closeLog, err := SetupLogging(LoggingConfig{Output: "file", FilePath: path, MaxSize: 1})
		require.NoError(t, err)

		_, err = w.Write([]byte("hello\n"))
		require.NoError(t, err)
		require.NoError(t, closeLog())

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", string(data))
	})

	t.Run("UnknownOutput", func(t *testing.T) {
		_, _, err := SetupLogging(LoggingConfig{Output: "syslog"})
		assert.Error(t, err)
	})

	t.Cleanup(func() {
		_, _, _ = SetupLogging(LoggingConfig{Output: "stdout"})
	})
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, gormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, gormLogLevel("info"))
	assert.Equal(t, gormlogger.Error, gormLogLevel("error"))
}
