package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	RedisURL        string
	ProfileCacheTTL time.Duration

	// Rate limiting for profile updates
	RateLimitWindow time.Duration
	RateLimitMax    int

	// JWT configuration
	JWTSecret     string
	TokenLifespan time.Duration

	// Kafka configuration
	KafkaBrokers []string
	ProfileTopic string

	// S3 configuration for resource downloads
	S3BucketName string
	AWSRegion    string
}

// keys maps viper keys to the environment variables they are read from
var keys = map[string]string{
	"server.port":             "SERVER_PORT",
	"server.host":             "SERVER_HOST",
	"server.cors_origins":     "CORS_ORIGINS",
	"db.driver":               "DB_DRIVER",
	"db.host":                 "DB_HOST",
	"db.port":                 "DB_PORT",
	"db.user":                 "DB_USER",
	"db.password":             "DB_PASSWORD",
	"db.name":                 "DB_NAME",
	"db.ssl_mode":             "DB_SSL_MODE",
	"db.sqlite_path":          "SQLITE_PATH",
	"db.migrations_dir":       "MIGRATIONS_DIR",
	"redis.host":              "REDIS_HOST",
	"redis.port":              "REDIS_PORT",
	"redis.password":          "REDIS_PASSWORD",
	"redis.db":                "REDIS_DB",
	"redis.url":               "REDIS_URL",
	"redis.profile_cache_ttl": "PROFILE_CACHE_TTL",
	"rate_limit.window":       "RATE_LIMIT_WINDOW",
	"rate_limit.max":          "RATE_LIMIT_MAX",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.token_lifespan":     "TOKEN_LIFESPAN",
	"kafka.brokers":           "KAFKA_BROKERS",
	"kafka.profile_topic":     "KAFKA_PROFILE_TOPIC",
	"s3.bucket":               "S3_BUCKET_NAME",
	"s3.region":               "AWS_REGION",
}

// secretKeys are sensitive values that fall back to Docker secrets files when unset
var secretKeys = map[string]string{
	"db.password":     "db_password",
	"auth.jwt_secret": "jwt_secret",
	"redis.password":  "redis_password",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.cors_origins", "http://localhost:3000")
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.name", "designhub")
	v.SetDefault("db.ssl_mode", "disable")
	v.SetDefault("db.sqlite_path", "designhub.db")
	v.SetDefault("db.migrations_dir", "migrations")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.profile_cache_ttl", "10m")
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.max", 30)
	v.SetDefault("auth.token_lifespan", "24h")
	v.SetDefault("kafka.profile_topic", "profile.updated")
}

// LoadConfig creates a new Config instance with values from .env, environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	// A missing .env file is normal outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	for key, envVar := range keys {
		if err := v.BindEnv(key, envVar); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", envVar, err)
		}
	}

	// Sensitive values come from Docker secrets unless set directly (CI uses env vars only)
	if env != CI {
		for key, secret := range secretKeys {
			if v.GetString(key) == "" {
				if value := readSecret(secret); value != "" {
					v.Set(key, value)
				}
			}
		}
	}

	cfg := &Config{
		Environment:     env,
		ServerPort:      v.GetString("server.port"),
		ServerHost:      v.GetString("server.host"),
		CORSOrigins:     splitList(v.GetString("server.cors_origins")),
		DBDriver:        strings.ToLower(v.GetString("db.driver")),
		DBHost:          v.GetString("db.host"),
		DBPort:          v.GetString("db.port"),
		DBUser:          v.GetString("db.user"),
		DBPassword:      v.GetString("db.password"),
		DBName:          v.GetString("db.name"),
		DBSSLMode:       v.GetString("db.ssl_mode"),
		SQLitePath:      v.GetString("db.sqlite_path"),
		MigrationsDir:   v.GetString("db.migrations_dir"),
		RedisHost:       v.GetString("redis.host"),
		RedisPort:       v.GetString("redis.port"),
		RedisPassword:   v.GetString("redis.password"),
		RedisDB:         v.GetInt("redis.db"),
		RedisURL:        v.GetString("redis.url"),
		ProfileCacheTTL: v.GetDuration("redis.profile_cache_ttl"),
		RateLimitWindow: v.GetDuration("rate_limit.window"),
		RateLimitMax:    v.GetInt("rate_limit.max"),
		JWTSecret:       v.GetString("auth.jwt_secret"),
		TokenLifespan:   v.GetDuration("auth.token_lifespan"),
		KafkaBrokers:    splitList(v.GetString("kafka.brokers")),
		ProfileTopic:    v.GetString("kafka.profile_topic"),
		S3BucketName:    v.GetString("s3.bucket"),
		AWSRegion:       v.GetString("s3.region"),
	}

	// Validate the configuration
	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// RedisEnabled reports whether any Redis endpoint is configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
