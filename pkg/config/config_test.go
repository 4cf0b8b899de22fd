package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScenario() Scenario {
	return Scenario{
		Symbol:             "INTC",
		TickSize:           0.01,
		Levels:             10,
		InitialMid:         100.00,
		InitialSpreadTicks: 2,
		OrdersPerLevel:     5,
		Seed:               42,
	}
}

// Test 1: Environment defaults
func TestLoad_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "lob-simulator", cfg.App.Name)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "scenario.yaml", cfg.App.ScenarioPath)
	assert.False(t, cfg.History.PublishEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.History.Brokers)
	assert.Equal(t, "lob-history", cfg.History.Topic)
}

// Test 2: Environment overrides
func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("HISTORY_BROKERS", "k1:9092,k2:9092")

	cfg := &Config{}
	require.NoError(t, Load(cfg))

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.History.Brokers)
}

// Test 3: A scenario round-trips through YAML
func TestLoadYAML_Scenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	body := `
symbol: INTC
tick_size: 0.01
levels: 10
initial_mid: 100.0
initial_spread_ticks: 2
orders_per_level: 5
seed: 42
max_events: 1000
flow:
  rate: 50.0
  mean_size: 5
agents:
  - id: mm-1
    cash: 100000.0
    on_trade: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	scenario := &Scenario{}
	require.NoError(t, LoadYAML(path, scenario))
	require.NoError(t, scenario.Validate())

	assert.Equal(t, "INTC", scenario.Symbol)
	assert.Equal(t, 10, scenario.Levels)
	assert.Equal(t, int64(1000), scenario.MaxEvents)
	assert.Equal(t, 50.0, scenario.Flow.Rate)
	require.Len(t, scenario.Agents, 1)
	assert.Equal(t, "mm-1", scenario.Agents[0].ID)
	assert.True(t, scenario.Agents[0].OnTrade)
}

// Test 4: Missing scenario file
func TestLoadYAML_MissingFile(t *testing.T) {
	err := LoadYAML(filepath.Join(t.TempDir(), "absent.yaml"), &Scenario{})
	assert.Error(t, err)
}

// Test 5: Validation rejects impossible books
func TestScenario_Validate(t *testing.T) {
	require.NoError(t, func() error { s := validScenario(); return s.Validate() }())

	s := validScenario()
	s.Symbol = ""
	assert.Error(t, s.Validate())

	s = validScenario()
	s.TickSize = 0
	assert.Error(t, s.Validate())

	s = validScenario()
	s.Levels = 0
	assert.Error(t, s.Validate())

	s = validScenario()
	s.InitialSpreadTicks = 1
	assert.Error(t, s.Validate())

	s = validScenario()
	s.OrdersPerLevel = -1
	assert.Error(t, s.Validate())
}
