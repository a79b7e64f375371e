package config

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

const appName = "deskclock"

// Config is the bootstrap configuration read before the UI starts.
// Interactive preferences live in fyne Preferences instead.
type Config struct {
	AlarmsFile      string `mapstructure:"alarms_file"`
	SoundFile       string `mapstructure:"sound_file"`
	HistoryDB       string `mapstructure:"history_db"`
	TickIntervalMS  int    `mapstructure:"tick_interval_ms"`
	HonorRepeatDays bool   `mapstructure:"honor_repeat_days"`
	AudioEnabled    bool   `mapstructure:"audio_enabled"`
	SnoozeHotkey    bool   `mapstructure:"snooze_hotkey"`
}

// TickInterval returns the alarm evaluation interval
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMS) * time.Millisecond
}

// Load reads configuration from configPath, or from config.yaml in the
// working directory and the XDG config directory when configPath is empty.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, appName))
	}

	v.SetEnvPrefix("DESKCLOCK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("alarms_file", filepath.Join(xdg.DataHome, appName, "alarms.json"))
	v.SetDefault("sound_file", filepath.Join(xdg.DataHome, appName, "alarm.wav"))
	v.SetDefault("history_db", filepath.Join(xdg.StateHome, appName, "history.db"))
	v.SetDefault("tick_interval_ms", 1000)
	v.SetDefault("honor_repeat_days", false)
	v.SetDefault("audio_enabled", true)
	v.SetDefault("snooze_hotkey", true)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		log.Println("Config file not found, using defaults.")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if cfg.TickIntervalMS < 100 {
		log.Printf("Warning: tick_interval_ms %d too low, setting to 1000", cfg.TickIntervalMS)
		cfg.TickIntervalMS = 1000
	}
	if cfg.AlarmsFile == "" {
		return nil, fmt.Errorf("alarms_file must not be empty")
	}

	log.Printf("Configuration loaded: %+v", cfg)
	return &cfg, nil
}
