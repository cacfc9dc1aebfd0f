package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Webhook   WebhookConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Secure    SecureConfig
	CORS      CORSConfig
}

type SecureConfig struct {
	// IsDevelopment relaxes the security headers for local runs.
	IsDevelopment bool
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	// URL is the Postgres DSN. Leave empty to run against the in-memory
	// store, which is intended for local development only.
	URL string
}

type RedisConfig struct {
	// Addr enables the asynq-backed event queue when set.
	Addr     string
	Password string
	DB       int
}

type WebhookConfig struct {
	// URL receives lifecycle event POSTs. Empty disables delivery.
	URL            string
	TimeoutSeconds int64
}

type AdminConfig struct {
	// Secret guards mutating endpoints via the X-Tuagenda-Admin-Secret header.
	Secret string
}

type RateLimitConfig struct {
	// Rate uses the limiter format, e.g. "100-M" for 100 requests per minute.
	Rate string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		_ = viper.ReadInConfig()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Webhook: WebhookConfig{
			URL:            os.Getenv("WEBHOOK_URL"),
			TimeoutSeconds: viper.GetInt64("WEBHOOK_TIMEOUT_SECONDS"),
		},
		Admin: AdminConfig{
			Secret: os.Getenv("ADMIN_SECRET"),
		},
		RateLimit: RateLimitConfig{
			Rate: getEnvOrDefault("RATE_LIMIT", "100-M"),
		},
		Secure: SecureConfig{
			IsDevelopment: viper.GetBool("DEV_MODE"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
		},
	}
	if cfg.Webhook.TimeoutSeconds <= 0 {
		cfg.Webhook.TimeoutSeconds = 10
	}
	return cfg, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
