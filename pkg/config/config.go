package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // a missing .env file is not an error

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	return nil
}

// LoadYAML reads a YAML file into cfg.
func LoadYAML(path string, cfg any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return nil
}

// Config holds the runtime configuration for the simulator process.
type Config struct {
	App     AppConfig     `envPrefix:"APP_"`
	History HistoryConfig `envPrefix:"HISTORY_"`
}

// AppConfig holds process-level settings.
type AppConfig struct {
	Name         string `env:"NAME" envDefault:"lob-simulator"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile      string `env:"LOG_FILE" envDefault:""`
	ScenarioPath string `env:"SCENARIO" envDefault:"scenario.yaml"`
}

// HistoryConfig controls the optional Kafka stream of book snapshots.
type HistoryConfig struct {
	PublishEnabled bool     `env:"PUBLISH_ENABLED" envDefault:"false"`
	Brokers        []string `env:"BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	Topic          string   `env:"TOPIC" envDefault:"lob-history"`
}

// Scenario describes one simulation run: the market being simulated, the
// synthetic flow parameters and the set of participating agents.
type Scenario struct {
	Symbol             string  `yaml:"symbol"`
	TickSize           float64 `yaml:"tick_size"`
	Levels             int     `yaml:"levels"`
	InitialMid         float64 `yaml:"initial_mid"`
	InitialSpreadTicks int64   `yaml:"initial_spread_ticks"`
	OrdersPerLevel     int     `yaml:"orders_per_level"`
	Seed               int64   `yaml:"seed"`
	MaxEvents          int64   `yaml:"max_events"`

	Flow   FlowScenario    `yaml:"flow"`
	Agents []AgentScenario `yaml:"agents"`
}

// FlowScenario parameterises the synthetic arrival source.
type FlowScenario struct {
	Rate     float64 `yaml:"rate"`      // mean arrivals per second
	MeanSize int64   `yaml:"mean_size"` // mean synthetic order size
}

// AgentScenario describes one named participant.
type AgentScenario struct {
	ID      string  `yaml:"id"`
	Cash    float64 `yaml:"cash"`
	OnTrade bool    `yaml:"on_trade"` // subscribe to trade notifications
}

// Validate checks scenario fields the exchange cannot default.
func (s *Scenario) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("scenario: symbol is required")
	}
	if s.TickSize <= 0 {
		return fmt.Errorf("scenario: tick_size must be positive")
	}
	if s.Levels <= 0 {
		return fmt.Errorf("scenario: levels must be positive")
	}
	if s.InitialSpreadTicks < 2 {
		return fmt.Errorf("scenario: initial_spread_ticks must be at least 2")
	}
	if s.OrdersPerLevel <= 0 {
		return fmt.Errorf("scenario: orders_per_level must be positive")
	}
	return nil
}
