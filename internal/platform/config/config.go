package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is centralized process configuration, parsed from the environment.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"warden"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	PostgresDSN string `env:"POSTGRES_DSN"`

	// SnowflakeNode must be unique per process sharing a database.
	SnowflakeNode int64 `env:"SNOWFLAKE_NODE" envDefault:"1"`

	RemindersEnabled  bool          `env:"REMINDERS_ENABLED" envDefault:"true"`
	ReminderAfterDays int           `env:"REMINDER_AFTER_DAYS" envDefault:"3"`
	ReminderInterval  time.Duration `env:"REMINDER_INTERVAL" envDefault:"1h"`

	LogChannel        string   `env:"LOG_CHANNEL"`
	ShopChannel       string   `env:"SHOP_CHANNEL"`
	ManualRewardRoles []string `env:"MANUAL_REWARD_ROLES" envSeparator:","`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}
