package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr   string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath     string     `env:"DB_PATH" envDefault:"data/athlete.db"`
	LogLevel   slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	RedisURL   string     `env:"REDIS_URL"`
	PlayersDir string     `env:"PLAYERS_DIR" envDefault:"data/players"`
	SPADir     string     `env:"SPA_DIR" envDefault:"../web/dist"`

	// Admin account seeded at startup. Seeding is skipped without a password.
	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@athleteunknown.com"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
