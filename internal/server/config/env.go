package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file in
// the working directory is loaded first if present; real environment
// variables win over the file.
//
// Recognized variables:
//
//	SESSIONKEEPER_HTTP_ADDR        bind address
//	SESSIONKEEPER_DATABASE_DSN     PostgreSQL DSN
//	SESSIONKEEPER_TOKEN_VALIDITY   token lifetime (Go duration, e.g. "720h")
//	SESSIONKEEPER_TOKEN_LENGTH     token value length
//	SESSIONKEEPER_BCRYPT_COST      bcrypt work factor
//
// Malformed values are ignored and the previous value is kept.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SESSIONKEEPER_HTTP_ADDR"); v != "" {
		config.EndpointAddrHTTP = v
	}
	if v := os.Getenv("SESSIONKEEPER_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("SESSIONKEEPER_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			config.TokenValidityDuration = d
		}
	}
	if v := os.Getenv("SESSIONKEEPER_TOKEN_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.TokenLength = n
		}
	}
	if v := os.Getenv("SESSIONKEEPER_BCRYPT_COST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			config.BcryptCost = n
		}
	}
}
