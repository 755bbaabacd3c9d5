package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"legtracker/internal/legislature"
)

const (
	defaultTimezone   = "America/Denver"
	configPathEnv     = "LEGTRACKER_CONFIG"
	repsURLEnv        = "REPS_URL"
	billsURLEnv       = "BILLS_URL"
	officeEnv         = "OFFICE"
	databaseDSNEnv    = "DATABASE_DSN"
	telegramTokenEnv  = "TELEGRAM_BOT_TOKEN"
	telegramChatIDEnv = "TELEGRAM_CHAT_ID"
	logLevelEnv       = "LOG_LEVEL"
	httpAddrEnv       = "HTTP_ADDR"
	linkThresholdEnv  = "LINK_THRESHOLD"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging       LoggingConfig      `yaml:"logging"`
	Datasets      DatasetsConfig     `yaml:"datasets"`
	Pipeline      PipelineConfig     `yaml:"pipeline"`
	Page          PageConfig         `yaml:"page"`
	Server        ServerConfig       `yaml:"server"`
	Scheduler     SchedulerConfig    `yaml:"scheduler"`
	Database      DatabaseConfig     `yaml:"database"`
	Notifications NotificationConfig `yaml:"notifications"`
	Linker        LinkerConfig       `yaml:"linker"`
	Sites         []SiteConfig       `yaml:"sites"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatasetsConfig points at the representatives and bills JSON documents.
type DatasetsConfig struct {
	Representatives SourceConfig  `yaml:"representatives"`
	Bills           SourceConfig  `yaml:"bills"`
	Timeout         time.Duration `yaml:"timeout"`
	UserAgent       string        `yaml:"userAgent"`
}

// SourceConfig locates one document; File wins over URL when both are set.
type SourceConfig struct {
	URL  string `yaml:"url"`
	File string `yaml:"file"`
}

// PipelineConfig overrides the legislative stage order.
type PipelineConfig struct {
	Stages []string `yaml:"stages"`
}

// PageConfig carries the page-level office filter.
type PageConfig struct {
	Office string `yaml:"office"`
	Title  string `yaml:"title"`
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// SchedulerConfig defines when the dashboard is rebuilt.
type SchedulerConfig struct {
	CronExpression string         `yaml:"cronExpression"`
	Timezone       string         `yaml:"timezone"`
	location       *time.Location `yaml:"-"`
}

// Location resolves the scheduler timezone string to a time.Location.
func (s SchedulerConfig) Location() *time.Location {
	if s.location != nil {
		return s.location
	}
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DatabaseConfig describes the stage snapshot store. An empty DSN disables it.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// NotificationConfig encapsulates outbound channels (Telegram, etc.).
type NotificationConfig struct {
	Telegram TelegramConfig `yaml:"telegram"`
}

// TelegramConfig wires all data required to send messages.
type TelegramConfig struct {
	BotToken string `yaml:"botToken"`
	ChatID   string `yaml:"chatId"`
}

// Enabled reports whether both credentials are present.
func (t TelegramConfig) Enabled() bool {
	return t.BotToken != "" && t.ChatID != ""
}

// LinkerConfig tunes sponsor to representative name matching.
type LinkerConfig struct {
	Threshold float64 `yaml:"threshold"`
}

// SiteConfig describes a bill list site with its scanner strategy.
type SiteConfig struct {
	Name     string            `yaml:"name"`
	Scanner  string            `yaml:"scanner"`
	Sessions []SessionConfig   `yaml:"sessions"`
	Options  map[string]string `yaml:"options"`
}

// SessionConfig holds a concrete bill list endpoint for one session.
type SessionConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if fileCfg, err := ReadFile(path); err != nil {
			log.Printf("config: %v (falling back to defaults)", err)
		} else {
			cfg = mergeConfig(cfg, fileCfg)
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = defaultConfig().Sites
	}

	return cfg
}

// ReadFile parses a YAML config file without merging defaults.
func ReadFile(path string) (Config, error) {
	var fileCfg Config
	raw, err := os.ReadFile(path)
	if err != nil {
		return fileCfg, err
	}
	if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
		return fileCfg, err
	}
	return fileCfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(repsURLEnv); v != "" {
		c.Datasets.Representatives = SourceConfig{URL: v}
	}
	if v := os.Getenv(billsURLEnv); v != "" {
		c.Datasets.Bills = SourceConfig{URL: v}
	}
	if v := os.Getenv(officeEnv); v != "" {
		c.Page.Office = v
	}
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv(telegramTokenEnv); v != "" {
		c.Notifications.Telegram.BotToken = v
	}
	if v := os.Getenv(telegramChatIDEnv); v != "" {
		c.Notifications.Telegram.ChatID = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(httpAddrEnv); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(linkThresholdEnv); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Linker.Threshold = f
		}
	}
}

func (c *Config) bindTimezone() {
	tz := c.Scheduler.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to UTC", tz)
		loc = time.UTC
	}
	c.Scheduler.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Datasets.Representatives != (SourceConfig{}) {
		base.Datasets.Representatives = override.Datasets.Representatives
	}
	if override.Datasets.Bills != (SourceConfig{}) {
		base.Datasets.Bills = override.Datasets.Bills
	}
	if override.Datasets.Timeout > 0 {
		base.Datasets.Timeout = override.Datasets.Timeout
	}
	if override.Datasets.UserAgent != "" {
		base.Datasets.UserAgent = override.Datasets.UserAgent
	}

	if len(override.Pipeline.Stages) > 0 {
		base.Pipeline.Stages = override.Pipeline.Stages
	}

	if override.Page.Office != "" {
		base.Page.Office = override.Page.Office
	}
	if override.Page.Title != "" {
		base.Page.Title = override.Page.Title
	}

	if override.Server.Addr != "" {
		base.Server.Addr = override.Server.Addr
	}
	if override.Server.ShutdownTimeout > 0 {
		base.Server.ShutdownTimeout = override.Server.ShutdownTimeout
	}

	if override.Scheduler.CronExpression != "" {
		base.Scheduler.CronExpression = override.Scheduler.CronExpression
	}
	if override.Scheduler.Timezone != "" {
		base.Scheduler.Timezone = override.Scheduler.Timezone
	}

	if override.Database.DSN != "" {
		base.Database = override.Database
	}

	if override.Notifications.Telegram.BotToken != "" {
		base.Notifications.Telegram.BotToken = override.Notifications.Telegram.BotToken
	}
	if override.Notifications.Telegram.ChatID != "" {
		base.Notifications.Telegram.ChatID = override.Notifications.Telegram.ChatID
	}

	if override.Linker.Threshold > 0 {
		base.Linker.Threshold = override.Linker.Threshold
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Datasets: DatasetsConfig{
			Representatives: SourceConfig{
				URL: "https://raw.githubusercontent.com/CristylePGarrard/ElectionTime/refs/heads/gh-pages/assets/reps_bills_combined.json",
			},
			Bills: SourceConfig{
				URL: "https://raw.githubusercontent.com/CristylePGarrard/ElectionTime/refs/heads/gh-pages/assets/bad_bills_combined.json",
			},
			Timeout:   20 * time.Second,
			UserAgent: "legtracker/1.0",
		},
		Pipeline:  PipelineConfig{Stages: append([]string(nil), legislature.DefaultStages...)},
		Page:      PageConfig{Office: "House", Title: "Legislation Tracker"},
		Server:    ServerConfig{Addr: ":8080", ShutdownTimeout: 10 * time.Second},
		Scheduler: SchedulerConfig{CronExpression: "0 * * * *", Timezone: defaultTimezone},
		Database:  DatabaseConfig{DSN: ""},
		Linker:    LinkerConfig{Threshold: legislature.DefaultLinkThreshold},
		Sites: []SiteConfig{
			{
				Name:    "utah-legislature",
				Scanner: "utah-le",
				Sessions: []SessionConfig{
					{Name: "2025GS", URL: "https://le.utah.gov/billlist.jsp?session=2025GS"},
				},
			},
		},
	}
}
