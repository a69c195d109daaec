// Package config handles configuration for the server. All settings come
// from the process environment; every backend credential is required and
// missing values are a fatal startup error.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds runtime settings for the rustblog server.
type Config struct {
	Addr string `env:"ADDR" env-default:":8080"`

	PostgresDSN string `env:"POSTGRES_DSN" env-required:"true"`

	RedisAddr     string `env:"REDIS_ADDR" env-required:"true"`
	RedisPassword string `env:"REDIS_PASSWORD" env-required:"true"`

	MinioAddr       string `env:"MINIO_ADDR" env-required:"true"`
	MinioPublicAddr string `env:"MINIO_PUBLIC_ADDR" env-required:"true"`
	MinioAccessKey  string `env:"MINIO_ACCESS_KEY" env-required:"true"`
	MinioSecretKey  string `env:"MINIO_SECRET_KEY" env-required:"true"`
	MinioBucketName string `env:"MINIO_BUCKET_NAME" env-required:"true"`

	AccessSecret  string `env:"ACCESS_SECRET" env-required:"true"`
	RefreshSecret string `env:"REFRESH_SECRET" env-required:"true"`

	AccessTokenValidityDuration  time.Duration `env:"ACCESS_TOKEN_VALIDITY" env-default:"1h"`
	RefreshTokenValidityDuration time.Duration `env:"REFRESH_TOKEN_VALIDITY" env-default:"168h"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	return cfg, nil
}
