// Package config holds the kanban settings (config.yaml via viper) and the
// workspace state file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Modes select the storage backend.
const (
	ModeLocal = "local"
	ModeCloud = "cloud"
)

// Settings is the full kanban configuration.
type Settings struct {
	Mode     string         `mapstructure:"mode"`
	User     UserConfig     `mapstructure:"user"`
	Database DatabaseConfig `mapstructure:"database"`
	Server   ServerConfig   `mapstructure:"server"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Weather  WeatherConfig  `mapstructure:"weather"`
	Media    MediaConfig    `mapstructure:"media"`
	Log      LogConfig      `mapstructure:"log"`
}

// UserConfig identifies the acting user when no request header says otherwise.
type UserConfig struct {
	ID string `mapstructure:"id"`
}

// DatabaseConfig locates the SQLite file (local) or Postgres DSN (cloud).
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
	DSN  string `mapstructure:"dsn"`
}

// ServerConfig configures `kanban serve`.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// LLMConfig configures the board assistant.
type LLMConfig struct {
	Provider       string `mapstructure:"provider"`
	BaseURL        string `mapstructure:"base_url"`
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	SystemPrompt   string `mapstructure:"system_prompt"`
	History        int    `mapstructure:"history"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// WeatherConfig points at the Open-Meteo endpoints.
type WeatherConfig struct {
	GeocodeURL  string `mapstructure:"geocode_url"`
	ForecastURL string `mapstructure:"forecast_url"`
}

// MediaConfig configures image uploads.
type MediaConfig struct {
	Dir           string `mapstructure:"dir"`
	PublicBaseURL string `mapstructure:"public_base_url"`
	MaxSizeMB     int    `mapstructure:"max_size_mb"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultSystemPrompt is the assistant persona used when none is configured.
const DefaultSystemPrompt = "You are a helpful assistant with access to the user's kanban board. " +
	"Use the board state to answer questions about tasks, deadlines and progress. Be direct and concise."

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		Mode: ModeLocal,
		User: UserConfig{ID: "local"},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		LLM: LLMConfig{
			Provider:       "openai",
			SystemPrompt:   DefaultSystemPrompt,
			History:        5,
			TimeoutSeconds: 60,
		},
		Media: MediaConfig{
			MaxSizeMB: 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("mode", defaults.Mode)
	v.SetDefault("user.id", defaults.User.ID)

	v.SetDefault("database.path", defaults.Database.Path)
	v.SetDefault("database.dsn", defaults.Database.DSN)

	v.SetDefault("server.addr", defaults.Server.Addr)

	v.SetDefault("llm.provider", defaults.LLM.Provider)
	v.SetDefault("llm.base_url", defaults.LLM.BaseURL)
	v.SetDefault("llm.api_key", defaults.LLM.APIKey)
	v.SetDefault("llm.model", defaults.LLM.Model)
	v.SetDefault("llm.system_prompt", defaults.LLM.SystemPrompt)
	v.SetDefault("llm.history", defaults.LLM.History)
	v.SetDefault("llm.timeout_seconds", defaults.LLM.TimeoutSeconds)

	v.SetDefault("weather.geocode_url", defaults.Weather.GeocodeURL)
	v.SetDefault("weather.forecast_url", defaults.Weather.ForecastURL)

	v.SetDefault("media.dir", defaults.Media.Dir)
	v.SetDefault("media.public_base_url", defaults.Media.PublicBaseURL)
	v.SetDefault("media.max_size_mb", defaults.Media.MaxSizeMB)

	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.format", defaults.Log.Format)
}

// ConfigDir returns the directory holding config.yaml.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "kanban")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kanban"
	}
	return filepath.Join(home, ".kanban")
}

// ConfigFile returns the path to config.yaml.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// NewViper builds a viper instance with defaults, KANBAN_ environment
// overrides and, when it exists, the config file at path (ConfigFile() when
// path is empty).
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("KANBAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = ConfigFile()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isMissingConfig(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return v, nil
}

func isMissingConfig(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Load unmarshals v into Settings and validates the result.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if errs := s.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &s, nil
}

// ValidationError is one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every invalid setting.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the settings and returns every problem found.
func (s *Settings) Validate() []ValidationError {
	var errs []ValidationError

	switch s.Mode {
	case ModeLocal:
	case ModeCloud:
		if s.Database.DSN == "" {
			errs = append(errs, ValidationError{"database.dsn", "required in cloud mode"})
		}
	default:
		errs = append(errs, ValidationError{"mode", fmt.Sprintf("must be %s or %s, got %q", ModeLocal, ModeCloud, s.Mode)})
	}

	if strings.TrimSpace(s.User.ID) == "" {
		errs = append(errs, ValidationError{"user.id", "cannot be empty"})
	}

	switch s.LLM.Provider {
	case "openai", "gemini":
	default:
		errs = append(errs, ValidationError{"llm.provider", fmt.Sprintf("must be openai or gemini, got %q", s.LLM.Provider)})
	}
	if s.LLM.History < 0 {
		errs = append(errs, ValidationError{"llm.history", "must not be negative"})
	}
	if s.LLM.TimeoutSeconds <= 0 {
		errs = append(errs, ValidationError{"llm.timeout_seconds", "must be positive"})
	}

	if s.Media.MaxSizeMB <= 0 {
		errs = append(errs, ValidationError{"media.max_size_mb", "must be positive"})
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, ValidationError{"log.level", fmt.Sprintf("unknown level %q", s.Log.Level)})
	}
	switch s.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, ValidationError{"log.format", fmt.Sprintf("must be console or json, got %q", s.Log.Format)})
	}

	return errs
}

// DatabasePath returns the configured SQLite path or the default location.
func (s *Settings) DatabasePath() string {
	if s.Database.Path != "" {
		return s.Database.Path
	}
	return filepath.Join(ConfigDir(), "kanban.db")
}

// MaxImageBytes converts the media size limit to bytes.
func (s *Settings) MaxImageBytes() int {
	return s.Media.MaxSizeMB << 20
}
