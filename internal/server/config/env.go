package config

import (
	"fmt"
	"os"
)

// parseEnv overlays configuration from environment variables.
//
// Database connection: DATABASE_URL (or POSTGRES_URL) wins when present;
// otherwise a DSN is composed from the discrete DB_HOST / DB_USER /
// DB_PASSWORD / DB_NAME / DB_PORT variables when any of them is set.
//
// Other variables: PORT (listen port), JWT_SECRET (token signing secret),
// UPLOAD_DIR (disk blob directory), BLOB_BACKEND ("disk" or "s3").
func parseEnv(config *Config) {
	if dsn := firstEnv("DATABASE_URL", "POSTGRES_URL"); dsn != "" {
		config.DatabaseDSN = dsn
	} else if anyEnvSet("DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT") {
		config.DatabaseDSN = composeDSN()
	}

	if port := os.Getenv("PORT"); port != "" {
		config.EndpointAddr = ":" + port
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		config.SecretKey = secret
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		config.UploadDir = dir
	}
	if backend := os.Getenv("BLOB_BACKEND"); backend != "" {
		config.BlobBackend = backend
	}
}

func composeDSN() string {
	host := envOr("DB_HOST", "postgres")
	user := envOr("DB_USER", "fileapp")
	password := envOr("DB_PASSWORD", "password123")
	name := envOr("DB_NAME", "fileapp")
	port := envOr("DB_PORT", "5432")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func anyEnvSet(keys ...string) bool {
	for _, k := range keys {
		if os.Getenv(k) != "" {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
