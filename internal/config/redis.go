package config

import "time"

type RedisConfig struct {
	DB       int
	Url      string
	Password string
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:       intEnv("REDIS_DB", 0),
		Url:      stringEnv("REDIS_ADDR", "localhost:6379"),
		Password: stringEnv("REDIS_PASSWORD", ""),
	}
}

type RateLimitConfig struct {
	Max    int
	Window time.Duration
}

func NewRateLimitConfig() *RateLimitConfig {
	return &RateLimitConfig{
		Max:    intEnv("RATE_LIMIT_MAX", 20),
		Window: secondsEnv("RATE_LIMIT_WINDOW_SEC", 60),
	}
}
