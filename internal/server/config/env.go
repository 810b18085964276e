package config

import (
	"os"
	"strings"
	"time"
)

// parseEnv overlays settings from the process environment:
//
//	PORT            listen port (":PORT") or full address
//	DATABASE_DSN    store DSN
//	JWT_SECRET      token signing secret
//	TOKEN_VALIDITY  token lifetime, Go duration ("0" disables expiry)
//	AUTH_SCHEME     authorization header scheme
//	STORE_TIMEOUT   store round-trip timeout, Go duration
//	LOG_BACKEND     slog or zap
//
// Malformed durations panic, like malformed config files.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		if !strings.Contains(v, ":") {
			v = ":" + v
		}
		config.EndpointAddrHTTP = v
	}
	lookupString("DATABASE_DSN", &config.DatabaseDSN)
	lookupString("JWT_SECRET", &config.SecretKey)
	lookupString("AUTH_SCHEME", &config.AuthScheme)
	lookupString("LOG_BACKEND", &config.LogBackend)
	lookupDuration("TOKEN_VALIDITY", &config.TokenValidityDuration)
	lookupDuration("STORE_TIMEOUT", &config.StoreTimeout)
}

func lookupString(name string, dst *string) {
	if v, ok := os.LookupEnv(name); ok && v != "" {
		*dst = v
	}
}

func lookupDuration(name string, dst *time.Duration) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(err)
	}
	*dst = d
}
