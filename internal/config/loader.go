package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"

	"github.com/example/agenda/internal/calendar"
	"github.com/example/agenda/internal/logging"
)

// Environment variables read by Load.
const (
	EnvConfigFile    = "AGENDA_CONFIG"
	EnvHTTPAddr      = "AGENDA_HTTP_ADDR"
	EnvWeekStart     = "AGENDA_WEEK_START"
	EnvTimezone      = "AGENDA_TIMEZONE"
	EnvLogLevel      = "AGENDA_LOG_LEVEL"
	EnvLogFormat     = "AGENDA_LOG_FORMAT"
	EnvEventDuration = "AGENDA_EVENT_DURATION"
)

// Config captures the runtime settings of the agenda process.
type Config struct {
	HTTPAddr      string
	WeekStart     time.Weekday
	Location      *time.Location
	LogLevel      slog.Level
	LogFormat     string
	EventDuration time.Duration
	// TypeColors maps an event type to a display color name.
	TypeColors map[string]string
}

// fileConfig mirrors the optional YAML document.
type fileConfig struct {
	Listen        string            `yaml:"listen"`
	WeekStart     string            `yaml:"week_start"`
	Timezone      string            `yaml:"timezone"`
	LogLevel      string            `yaml:"log_level"`
	LogFormat     string            `yaml:"log_format"`
	EventDuration string            `yaml:"event_duration"`
	TypeColors    map[string]string `yaml:"type_colors"`
}

// DefaultTypeColors returns the palette used when none is configured.
func DefaultTypeColors() map[string]string {
	return map[string]string{
		"personal":    "blue",
		"trabajo":     "green",
		"clase":       "orange",
		"experimento": "pink",
	}
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	settings := calendar.DefaultSettings()
	return Config{
		HTTPAddr:      "127.0.0.1:8080",
		WeekStart:     settings.WeekStart,
		Location:      settings.Location,
		LogLevel:      slog.LevelInfo,
		LogFormat:     logging.FormatJSON,
		EventDuration: time.Hour,
		TypeColors:    DefaultTypeColors(),
	}
}

// Calendar returns the settings consumed by the week and day projections.
func (c Config) Calendar() calendar.Settings {
	return calendar.Settings{WeekStart: c.WeekStart, Location: c.Location}
}

// Load builds the configuration from defaults, the optional YAML file named
// by AGENDA_CONFIG, and environment overrides, in that order.
//
// Every invalid value is collected so a single error names all offending keys.
func Load() (Config, error) {
	cfg := Default()
	invalid := make([]string, 0, 2)

	if path := strings.TrimSpace(os.Getenv(EnvConfigFile)); path != "" {
		file, err := readFile(path)
		if err != nil {
			return Config{}, err
		}
		invalid = append(invalid, file.apply(&cfg)...)
	}

	env := fileConfig{
		Listen:        os.Getenv(EnvHTTPAddr),
		WeekStart:     os.Getenv(EnvWeekStart),
		Timezone:      os.Getenv(EnvTimezone),
		LogLevel:      os.Getenv(EnvLogLevel),
		LogFormat:     os.Getenv(EnvLogFormat),
		EventDuration: os.Getenv(EnvEventDuration),
	}
	for _, key := range env.apply(&cfg) {
		invalid = append(invalid, envName(key))
	}

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return Config{}, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", "))
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("expand config path %q: %w", path, err)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", expanded, err)
	}
	return file, nil
}

// apply overlays non-empty values onto cfg and returns the YAML keys whose
// values could not be parsed.
func (f fileConfig) apply(cfg *Config) []string {
	var invalid []string

	if v := strings.TrimSpace(f.Listen); v != "" {
		cfg.HTTPAddr = v
	}
	if v := strings.TrimSpace(f.WeekStart); v != "" {
		day, err := calendar.ParseWeekday(v)
		if err != nil {
			invalid = append(invalid, "week_start")
		} else {
			cfg.WeekStart = day
		}
	}
	if v := strings.TrimSpace(f.Timezone); v != "" {
		loc, err := loadLocation(v)
		if err != nil {
			invalid = append(invalid, "timezone")
		} else {
			cfg.Location = loc
		}
	}
	if v := strings.TrimSpace(f.LogLevel); v != "" {
		level, err := logging.ParseLevel(v)
		if err != nil {
			invalid = append(invalid, "log_level")
		} else {
			cfg.LogLevel = level
		}
	}
	if v := strings.ToLower(strings.TrimSpace(f.LogFormat)); v != "" {
		if v != logging.FormatJSON && v != logging.FormatText {
			invalid = append(invalid, "log_format")
		} else {
			cfg.LogFormat = v
		}
	}
	if v := strings.TrimSpace(f.EventDuration); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			invalid = append(invalid, "event_duration")
		} else {
			cfg.EventDuration = d
		}
	}
	for eventType, color := range f.TypeColors {
		eventType = strings.TrimSpace(eventType)
		color = strings.ToLower(strings.TrimSpace(color))
		if eventType == "" || color == "" {
			invalid = append(invalid, "type_colors")
			continue
		}
		cfg.TypeColors[eventType] = color
	}

	return invalid
}

func loadLocation(name string) (*time.Location, error) {
	if strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("unknown timezone %q", name), err)
	}
	return loc, nil
}

func envName(key string) string {
	switch key {
	case "listen":
		return EnvHTTPAddr
	case "week_start":
		return EnvWeekStart
	case "timezone":
		return EnvTimezone
	case "log_level":
		return EnvLogLevel
	case "log_format":
		return EnvLogFormat
	case "event_duration":
		return EnvEventDuration
	}
	return key
}
