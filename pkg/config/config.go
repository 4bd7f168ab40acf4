// Package config loads jeffbot settings from a YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrMissingConfig is returned by Validate when required keys are unset.
var ErrMissingConfig = errors.New("missing required configuration")

type Config struct {
	Marvel     MarvelConfig     `yaml:"marvel"`
	Discord    DiscordConfig    `yaml:"discord"`
	Schedule   ScheduleConfig   `yaml:"schedule"`
	Pagination PaginationConfig `yaml:"pagination"`
	Store      StoreConfig      `yaml:"store"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type MarvelConfig struct {
	PublicKey  string `yaml:"public_key"`
	PrivateKey string `yaml:"private_key"`
	BaseURL    string `yaml:"base_url"`
}

type DiscordConfig struct {
	Token     string `yaml:"token"`
	GuildID   string `yaml:"guild_id"`
	ChannelID string `yaml:"channel_id"`
}

type ScheduleConfig struct {
	// Cron is a five-field cron expression evaluated in Timezone.
	Cron     string `yaml:"cron"`
	Timezone string `yaml:"timezone"` // IANA name; empty means host local
}

type PaginationConfig struct {
	IdleTimeout string `yaml:"idle_timeout"`
}

type StoreConfig struct {
	Driver string `yaml:"driver"` // json, duckdb
	Path   string `yaml:"path"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the settings used when nothing else is provided.
func DefaultConfig() *Config {
	return &Config{
		Marvel: MarvelConfig{
			BaseURL: "https://gateway.marvel.com",
		},
		Schedule: ScheduleConfig{
			Cron: "0 7 * * *",
		},
		Pagination: PaginationConfig{
			IdleTimeout: "120s",
		},
		Store: StoreConfig{
			Driver: "json",
			Path:   "series.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path (if it exists) over the defaults and applies environment
// overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(content, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	override := func(dst *string, key string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}

	override(&c.Marvel.PublicKey, "MARVEL_PUB_KEY")
	override(&c.Marvel.PrivateKey, "MARVEL_PRIV_KEY")
	override(&c.Marvel.BaseURL, "MARVEL_BASE_URL")
	override(&c.Discord.Token, "JEFFBOT_DISCORD_TOKEN")
	override(&c.Discord.GuildID, "GUILD_ID")
	override(&c.Discord.ChannelID, "CHANNEL_ID")
	override(&c.Schedule.Cron, "JEFFBOT_SCHEDULE")
	override(&c.Schedule.Timezone, "JEFFBOT_TIMEZONE")
	override(&c.Pagination.IdleTimeout, "JEFFBOT_IDLE_TIMEOUT")
	override(&c.Store.Driver, "JEFFBOT_STORE_DRIVER")
	override(&c.Store.Path, "JEFFBOT_STORE_PATH")
	override(&c.Metrics.Addr, "JEFFBOT_METRICS_ADDR")
	override(&c.Logging.Level, "JEFFBOT_LOG_LEVEL")
}

// Validate checks required keys. Discord settings are only required when
// the bot is going to connect.
func (c *Config) Validate(requireBot bool) error {
	var missing []string
	if c.Marvel.PublicKey == "" {
		missing = append(missing, "MARVEL_PUB_KEY")
	}
	if c.Marvel.PrivateKey == "" {
		missing = append(missing, "MARVEL_PRIV_KEY")
	}
	if requireBot {
		if c.Discord.Token == "" {
			missing = append(missing, "JEFFBOT_DISCORD_TOKEN")
		}
		if c.Discord.GuildID == "" {
			missing = append(missing, "GUILD_ID")
		}
		if c.Discord.ChannelID == "" {
			missing = append(missing, "CHANNEL_ID")
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.IdleTimeout(); err != nil {
		return err
	}
	return nil
}

// Location resolves Schedule.Timezone, defaulting to time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Schedule.Timezone, err)
	}
	return loc, nil
}

func (c *Config) IdleTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Pagination.IdleTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid idle timeout %q: %w", c.Pagination.IdleTimeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("idle timeout must be positive, got %s", d)
	}
	return d, nil
}
