package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	DebugMode        bool
	HTTPPort         int
	RedisConfig      *RedisConfig
	PostgresConfig   *PostgresConfig
	JwtConfig        *JwtConfig
	JudgeConfig      *JudgeConfig
	EvaluationConfig *EvaluationConfig
	RateLimitConfig  *RateLimitConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:        os.Getenv("DEBUG_MODE") == "true",
		HTTPPort:         intEnv("HTTP_PORT", 8082),
		RedisConfig:      NewRedisConfig(),
		PostgresConfig:   NewPostgresConfig(),
		JwtConfig:        NewJwtConfig(),
		JudgeConfig:      NewJudgeConfig(),
		EvaluationConfig: NewEvaluationConfig(),
		RateLimitConfig:  NewRateLimitConfig(),
	}
}

func intEnv(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func secondsEnv(key string, fallback int) time.Duration {
	return time.Duration(intEnv(key, fallback)) * time.Second
}

func boolEnv(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func stringEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
