package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by parseEnv.
const (
	EnvGRPCAddr        = "FUEL_GRPC_ADDR"
	EnvHTTPAddr        = "FUEL_HTTP_ADDR"
	EnvDatabaseDSN     = "FUEL_DATABASE_DSN"
	EnvSecretKey       = "FUEL_SECRET_KEY"
	EnvAccessTokenTTL  = "FUEL_ACCESS_TOKEN_TTL"
	EnvRefreshTokenTTL = "FUEL_REFRESH_TOKEN_TTL"
	EnvLogLevel        = "FUEL_LOG_LEVEL"
)

// envFile is loaded when present; variables already set in the process
// environment win over it.
var envFile = ".env"

func parseEnv(cfg *Config) {
	_ = godotenv.Load(envFile)

	setString(&cfg.EndpointAddrGRPC, EnvGRPCAddr)
	setString(&cfg.EndpointAddrHTTP, EnvHTTPAddr)
	setString(&cfg.DatabaseDSN, EnvDatabaseDSN)
	setString(&cfg.SecretKey, EnvSecretKey)
	setDuration(&cfg.AccessTokenValidityDuration, EnvAccessTokenTTL)
	setDuration(&cfg.RefreshTokenValidityDuration, EnvRefreshTokenTTL)
	setString(&cfg.LogLevel, EnvLogLevel)
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

// setDuration ignores values that do not parse; defaults stay in effect.
func setDuration(dst *time.Duration, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}
