// Package config loads the coach runtime configuration from defaults, an
// optional YAML file, and COACH_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sweatcue/coach/internal/session"
)

// Config is the full runtime configuration for the coach binary.
type Config struct {
	Session SessionConfig `mapstructure:"session"`
	Voice   VoiceConfig   `mapstructure:"voice"`
	Music   MusicConfig   `mapstructure:"music"`
	History HistoryConfig `mapstructure:"history"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SessionConfig tunes the session runtime itself.
type SessionConfig struct {
	// TickIntervalMs is the countdown tick period in milliseconds.
	// Wall-clock sessions run at 1000; simulations can run much faster.
	TickIntervalMs int `mapstructure:"tick_interval_ms"`
	// DescribeTimeoutSeconds bounds the workout intro narration.
	DescribeTimeoutSeconds int `mapstructure:"describe_timeout_seconds"`
	// InitialIntensity is the display name of the starting level,
	// matched case-insensitively (e.g. "Moderate", "max effort").
	InitialIntensity string `mapstructure:"initial_intensity"`
}

// VoiceConfig tunes the simulated speech engine.
type VoiceConfig struct {
	// Enabled turns coaching voice on. Off, the session still runs on
	// the describe timeout and silent cues.
	Enabled bool `mapstructure:"enabled"`
	// RateCharsPerSec is the simulated speaking speed.
	RateCharsPerSec int `mapstructure:"rate_chars_per_sec"`
	// DuckLevel is the music volume fraction while a cue speaks.
	// Must be greater than 0 and less than 1.
	DuckLevel float64 `mapstructure:"duck_level"`
}

// MusicConfig tunes background playback.
type MusicConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Playlist string `mapstructure:"playlist"`
	Shuffle  bool   `mapstructure:"shuffle"`
}

// HistoryConfig locates the session history store.
type HistoryConfig struct {
	// Dir is the directory holding the summary database.
	// Empty means DataDir().
	Dir string `mapstructure:"dir"`
}

// LoggingConfig controls the rotating log writer.
type LoggingConfig struct {
	// File is the log destination. Empty means DataDir()/coach.log.
	File string `mapstructure:"file"`
	// MaxSizeMB is the rotation threshold per log file.
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is how many rotated files to keep.
	MaxBackups int `mapstructure:"max_backups"`
	// Stderr mirrors log lines to stderr in addition to the file.
	Stderr bool `mapstructure:"stderr"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Session: SessionConfig{
			TickIntervalMs:         1000,
			DescribeTimeoutSeconds: session.DefaultDescribeTimeoutSeconds,
			InitialIntensity:       session.DefaultIntensity.String(),
		},
		Voice: VoiceConfig{
			Enabled:         true,
			RateCharsPerSec: 14,
			DuckLevel:       session.DefaultDuckLevel,
		},
		Music: MusicConfig{
			Enabled:  true,
			Playlist: "power-mix",
			Shuffle:  true,
		},
		History: HistoryConfig{
			Dir: "", // Empty means use DataDir()
		},
		Logging: LoggingConfig{
			File:       "", // Empty means use DataDir()/coach.log
			MaxSizeMB:  10,
			MaxBackups: 3,
			Stderr:     false,
		},
	}
}

// TickInterval returns the tick period as a time.Duration.
func (c *SessionConfig) TickInterval() time.Duration {
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

// InitialIntensityLevel resolves the configured level name, falling back
// to the session default when the name is unknown.
func (c *SessionConfig) InitialIntensityLevel() session.IntensityLevel {
	if level, ok := lookupIntensity(c.InitialIntensity); ok {
		return level
	}
	return session.DefaultIntensity
}

// Track returns the playback selection sessions start music with.
func (c *MusicConfig) Track() session.TrackSelection {
	return session.TrackSelection{Playlist: c.Playlist, Shuffle: c.Shuffle}
}

// HistoryDir returns the summary database directory, resolved.
func (c *Config) HistoryDir() string {
	if c.History.Dir != "" {
		return c.History.Dir
	}
	return DataDir()
}

// LogFile returns the log destination, resolved.
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(DataDir(), "coach.log")
}

// SetDefaults registers default values with viper.
func SetDefaults() {
	defaults := Default()

	// Session defaults
	viper.SetDefault("session.tick_interval_ms", defaults.Session.TickIntervalMs)
	viper.SetDefault("session.describe_timeout_seconds", defaults.Session.DescribeTimeoutSeconds)
	viper.SetDefault("session.initial_intensity", defaults.Session.InitialIntensity)

	// Voice defaults
	viper.SetDefault("voice.enabled", defaults.Voice.Enabled)
	viper.SetDefault("voice.rate_chars_per_sec", defaults.Voice.RateCharsPerSec)
	viper.SetDefault("voice.duck_level", defaults.Voice.DuckLevel)

	// Music defaults
	viper.SetDefault("music.enabled", defaults.Music.Enabled)
	viper.SetDefault("music.playlist", defaults.Music.Playlist)
	viper.SetDefault("music.shuffle", defaults.Music.Shuffle)

	// History defaults
	viper.SetDefault("history.dir", defaults.History.Dir)

	// Logging defaults
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	viper.SetDefault("logging.stderr", defaults.Logging.Stderr)
}

// Load builds the configuration in layers: defaults, then the config file,
// then COACH_* environment variables. With an explicit path the file must
// exist and parse; with an empty path the standard locations are searched
// and a missing file is fine.
func Load(path string) (*Config, error) {
	SetDefaults()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
		viper.AddConfigPath(".")
		// No file found in the search path means defaults carry.
		_ = viper.ReadInConfig()
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COACH")
	// COACH_SESSION_TICK_INTERVAL_MS overrides session.tick_interval_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the configuration for unusable values. The first
// problem found is returned as a *session.ConfigError naming the key.
func (c *Config) Validate() error {
	if c.Session.TickIntervalMs < 1 {
		return &session.ConfigError{Field: "session.tick_interval_ms", Reason: "must be at least 1"}
	}
	if c.Session.DescribeTimeoutSeconds < 1 {
		return &session.ConfigError{Field: "session.describe_timeout_seconds", Reason: "must be at least 1"}
	}
	if _, ok := lookupIntensity(c.Session.InitialIntensity); !ok {
		return &session.ConfigError{
			Field:  "session.initial_intensity",
			Reason: fmt.Sprintf("unknown level %q, valid: %s", c.Session.InitialIntensity, intensityNames()),
		}
	}
	if c.Voice.RateCharsPerSec < 1 {
		return &session.ConfigError{Field: "voice.rate_chars_per_sec", Reason: "must be at least 1"}
	}
	if c.Voice.DuckLevel <= 0 || c.Voice.DuckLevel >= 1 {
		return &session.ConfigError{Field: "voice.duck_level", Reason: "must be greater than 0 and less than 1"}
	}
	if c.Logging.MaxSizeMB < 1 {
		return &session.ConfigError{Field: "logging.max_size_mb", Reason: "must be at least 1"}
	}
	if c.Logging.MaxBackups < 0 {
		return &session.ConfigError{Field: "logging.max_backups", Reason: "must be non-negative"}
	}
	return nil
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "coach")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coach"
	}
	return filepath.Join(home, ".config", "coach")
}

// DataDir returns where coach keeps its history database and logs.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "coach")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".coach"
	}
	return filepath.Join(home, ".local", "share", "coach")
}

// lookupIntensity matches a display name to a scale level, ignoring case.
func lookupIntensity(name string) (session.IntensityLevel, bool) {
	for _, info := range session.AllIntensities {
		if strings.EqualFold(info.DisplayName, name) {
			return info.Level, true
		}
	}
	return 0, false
}

func intensityNames() string {
	names := make([]string, 0, len(session.AllIntensities))
	for _, info := range session.AllIntensities {
		names = append(names, info.DisplayName)
	}
	return strings.Join(names, ", ")
}
