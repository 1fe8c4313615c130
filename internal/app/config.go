package app

import (
	"strings"
	"time"

	"github.com/fitbridge/fitbridge-backend/internal/platform/envutil"
)

type Config struct {
	ListenAddr     string
	AllowedOrigins []string

	TokenIssuer   string
	TokenAudience string
	JWKSURL       string
	TokenCacheTTL time.Duration
	KeySetTTL     time.Duration

	RedisAddr     string
	RedisUsername string
	RedisPassword string
	RedisDB       int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	BucketName            string
	BucketCredentialsFile string
}

func LoadConfig() Config {
	var origins []string
	if raw := envutil.Str("ALLOWED_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return Config{
		ListenAddr:     envutil.Str("LISTEN_ADDR", ":8080"),
		AllowedOrigins: origins,

		TokenIssuer:   envutil.Str("TOKEN_ISSUER", ""),
		TokenAudience: envutil.Str("TOKEN_AUDIENCE", ""),
		JWKSURL:       envutil.Str("JWKS_URL", ""),
		TokenCacheTTL: envutil.Dur("TOKEN_CACHE_TTL", 5*time.Minute),
		KeySetTTL:     envutil.Dur("KEYSET_TTL", 15*time.Minute),

		RedisAddr:     envutil.Str("REDIS_ADDR", "localhost:6379"),
		RedisUsername: envutil.Str("REDIS_USERNAME", ""),
		RedisPassword: envutil.Str("REDIS_PASSWORD", ""),
		RedisDB:       envutil.Int("REDIS_DB", 0),

		PostgresHost:     envutil.Str("POSTGRES_HOST", "localhost"),
		PostgresPort:     envutil.Str("POSTGRES_PORT", "5432"),
		PostgresUser:     envutil.Str("POSTGRES_USER", "postgres"),
		PostgresPassword: envutil.Str("POSTGRES_PASSWORD", ""),
		PostgresName:     envutil.Str("POSTGRES_DB", "fitbridge"),

		BucketName:            envutil.Str("GCS_BUCKET_NAME", ""),
		BucketCredentialsFile: envutil.Str("GOOGLE_APPLICATION_CREDENTIALS", ""),
	}
}
