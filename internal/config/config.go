package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	JWTSecret   string
	TokenTTL    time.Duration
	CacheTTL    time.Duration
	SwaggerHost string
}

// Load builds Config from environment. JWT_SECRET and JWT_TTL have no
// default and must be set before the process starts.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("MYSQL_DSN", "user:password@tcp(localhost:3306)/taskhub?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.AutomaticEnv()

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl := v.GetDuration("JWT_TTL")
	if ttl <= 0 {
		return nil, fmt.Errorf("JWT_TTL is required, e.g. 24h")
	}

	return &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		MySQLDSN:    v.GetString("MYSQL_DSN"),
		RedisAddr:   v.GetString("REDIS_ADDR"),
		RedisDB:     v.GetInt("REDIS_DB"),
		RedisPass:   v.GetString("REDIS_PASSWORD"),
		JWTSecret:   secret,
		TokenTTL:    ttl,
		CacheTTL:    v.GetDuration("CACHE_TTL"),
		SwaggerHost: v.GetString("SWAGGER_HOST"),
	}, nil
}
