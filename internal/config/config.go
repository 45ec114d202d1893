package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"./data/tracker.db"`
	Timezone    string `env:"TZ_NAME" envDefault:"UTC"` // Zone that decides what "today" is
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`

	BotEnabled      bool   `env:"BOT_ENABLED" envDefault:"false"`
	GroupID         string `env:"GROUP_ID"`
	BotPhone        string `env:"BOT_PHONE"`
	ReplyDelayMinMs int    `env:"REPLY_DELAY_MIN_MS" envDefault:"0"` // Minimum delay before reply (milliseconds)
	ReplyDelayMaxMs int    `env:"REPLY_DELAY_MAX_MS" envDefault:"0"` // Maximum delay before reply (milliseconds), 0 = use min as fixed
	ShowTyping      bool   `env:"SHOW_TYPING" envDefault:"false"`    // Show typing indicator during delay
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults/environment variables")
	}

	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}
	if cfg.ReplyDelayMaxMs != 0 && cfg.ReplyDelayMaxMs < cfg.ReplyDelayMinMs {
		return Config{}, fmt.Errorf("REPLY_DELAY_MAX_MS (%d) is below REPLY_DELAY_MIN_MS (%d)", cfg.ReplyDelayMaxMs, cfg.ReplyDelayMinMs)
	}

	return cfg, nil
}

// Location resolves the configured calendar zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(strings.TrimSpace(c.Timezone))
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
