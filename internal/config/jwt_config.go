package config

import "time"

// JwtConfig holds the HMAC secret shared with the service that issues
// caller tokens. Leeway absorbs clock skew between the two.
type JwtConfig struct {
	Secret   string
	TokenTTL time.Duration
	Leeway   time.Duration
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:   stringEnv("JWT_SECRET", ""),
		TokenTTL: secondsEnv("JWT_TOKEN_TTL_SEC", 3600),
		Leeway:   secondsEnv("JWT_LEEWAY_SEC", 0),
	}
}
