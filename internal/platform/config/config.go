// Package config はプロセス起動時に一度だけ構築される不変のアプリケーション設定を提供します。
package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// TransportHeader は Authorization ヘッダーでトークンを受け渡すモードです。
	TransportHeader = "header"
	// TransportCookie は Cookie でトークンを受け渡すモードです。
	TransportCookie = "cookie"

	// devJWTSecret は APP_ENV=dev を明示し、かつ JWT_SECRET が未設定の場合にのみ使われます。
	devJWTSecret = "dev-secret-change-me"
)

// ErrMissingJWTSecret is returned by Validate when no signing secret is configured outside dev.
var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set")

// Config holds every setting read at startup. It is passed by value and never mutated afterwards.
type Config struct {
	Env  string
	Port string

	// Database
	DatabaseURL   string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	DBCert        string
	RunMigrations bool

	// Tokens
	JWTSecret       string
	TokenTTL        time.Duration
	TokenTransport  string
	TokenCookieName string

	// Password hashing
	PasswordSafeLimit int
	BcryptCost        int

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	CacheTTL      time.Duration

	// Avatars
	AvatarDir string
	AvatarExt string

	// HTTP
	CORSOrigins        []string
	RateLimitAuthRPS   float64
	RateLimitAuthBurst int

	// Task levels (priority / category)
	LevelMin int
	LevelMax int

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads .env (if any) and the process environment into a Config.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables or defaults")
	}

	return Config{
		Env:  getEnv("APP_ENV", "production"),
		Port: getEnv("PORT", "8080"),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", ""),
		DBPassword:    getEnv("DB_PASSWORD", ""),
		DBName:        getEnv("DB_NAME", ""),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		DBCert:        getEnv("DB_CERT", ""),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", false),

		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTL:        getEnvDuration("JWT_TTL", 90*24*time.Hour),
		TokenTransport:  strings.ToLower(getEnv("TOKEN_TRANSPORT", TransportHeader)),
		TokenCookieName: getEnv("TOKEN_COOKIE_NAME", "auth"),

		PasswordSafeLimit: getEnvInt("PASSWORD_SAFE_LIMIT", 32),
		BcryptCost:        getEnvInt("BCRYPT_COST", 10),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 5*time.Minute),

		AvatarDir: getEnv("IMG_PROFILES", "./imagens/perfis"),
		AvatarExt: getEnv("IMG_EXT", "png"),

		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://127.0.0.1:3000"}),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 5),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 10),

		LevelMin: getEnvInt("LEVEL_MIN", 0),
		LevelMax: getEnvInt("LEVEL_MAX", 3),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}
}

// Validate checks the settings that must not fall back silently and fills dev-only defaults.
// It returns the (possibly adjusted) copy.
func (c Config) Validate() (Config, error) {
	if c.JWTSecret == "" {
		if c.Env != "dev" {
			return c, ErrMissingJWTSecret
		}
		slog.Warn("JWT_SECRET is not set; using development secret. Set a strong secret in production.")
		c.JWTSecret = devJWTSecret
	}
	if c.TokenTransport != TransportHeader && c.TokenTransport != TransportCookie {
		slog.Warn("unknown TOKEN_TRANSPORT, falling back to header", "value", c.TokenTransport)
		c.TokenTransport = TransportHeader
	}
	if c.LevelMax < c.LevelMin {
		c.LevelMin, c.LevelMax = c.LevelMax, c.LevelMin
	}
	return c, nil
}

// RedisAddr returns host:port, or "" when Redis is not configured.
func (c Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		slog.Warn("invalid number in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
