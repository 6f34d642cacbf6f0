package api

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/svaldes/structhealth/pkg/guard"
	"github.com/svaldes/structhealth/pkg/scenario"
	"github.com/svaldes/structhealth/pkg/validation"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// GuardSettings is the YAML-facing view of the guard configuration.
type GuardSettings struct {
	MinNetworkSize    int      `yaml:"min_network_size"`
	MaxNetworkSize    int      `yaml:"max_network_size"`
	MaxGameMoves      int      `yaml:"max_game_moves"`
	MinSteps          int      `yaml:"min_steps"`
	MaxSteps          int      `yaml:"max_steps"`
	WallClockBudget   Duration `yaml:"wall_clock_budget"`
	RateLimitMaxCalls int      `yaml:"rate_limit_max_calls"`
	RateLimitWindow   Duration `yaml:"rate_limit_window"`
}

// ServerConfig configures the HTTP server, the guard behind it and the
// classifier thresholds applied when a request omits its own.
type ServerConfig struct {
	Port         int      `yaml:"port"`
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`
	IdleTimeout  Duration `yaml:"idle_timeout"`
	LogLevel     string   `yaml:"log_level"`

	Guard      GuardSettings       `yaml:"guard"`
	Thresholds scenario.Thresholds `yaml:"thresholds"`
}

// DefaultServerConfig returns the stock server configuration.
func DefaultServerConfig() ServerConfig {
	gc := guard.DefaultConfig()
	return ServerConfig{
		Port:         8080,
		ReadTimeout:  Duration(15 * time.Second),
		WriteTimeout: Duration(30 * time.Second),
		IdleTimeout:  Duration(60 * time.Second),
		LogLevel:     "info",
		Guard: GuardSettings{
			MinNetworkSize:    gc.MinNetworkSize,
			MaxNetworkSize:    gc.MaxNetworkSize,
			MaxGameMoves:      gc.MaxGameMoves,
			MinSteps:          gc.MinSteps,
			MaxSteps:          gc.MaxSteps,
			WallClockBudget:   Duration(gc.WallClockBudget),
			RateLimitMaxCalls: gc.RateLimit.MaxCalls,
			RateLimitWindow:   Duration(gc.RateLimit.Window),
		},
		Thresholds: scenario.DefaultThresholds(),
	}
}

// LoadConfig reads a YAML configuration file over the defaults. A
// missing path returns the defaults unchanged.
func LoadConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the configuration for internal consistency.
func (c ServerConfig) Validate() error {
	cv := validation.NewConfigValidator("api.ServerConfig")
	cv.RangeInt("Port", c.Port, 1, 65535).
		RequiredDuration("ReadTimeout", time.Duration(c.ReadTimeout)).
		RequiredDuration("WriteTimeout", time.Duration(c.WriteTimeout)).
		RequiredDuration("IdleTimeout", time.Duration(c.IdleTimeout))
	if cv.HasErrors() {
		return cv.Error()
	}
	if err := c.GuardConfig().Validate(); err != nil {
		return err
	}
	return c.Thresholds.Validate()
}

// GuardConfig converts the YAML-facing settings to a guard.Config.
func (c ServerConfig) GuardConfig() guard.Config {
	rl := guard.DefaultRateLimitConfig()
	if c.Guard.RateLimitMaxCalls > 0 {
		rl.MaxCalls = c.Guard.RateLimitMaxCalls
	}
	if c.Guard.RateLimitWindow > 0 {
		rl.Window = time.Duration(c.Guard.RateLimitWindow)
	}
	return guard.Config{
		MinNetworkSize:  c.Guard.MinNetworkSize,
		MaxNetworkSize:  c.Guard.MaxNetworkSize,
		MaxGameMoves:    c.Guard.MaxGameMoves,
		MinSteps:        c.Guard.MinSteps,
		MaxSteps:        c.Guard.MaxSteps,
		WallClockBudget: time.Duration(c.Guard.WallClockBudget),
		RateLimit:       rl,
	}
}
