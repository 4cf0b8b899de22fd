package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/swturbo14/lobSimulations/internal/app/engine"
	agentv1 "github.com/swturbo14/lobSimulations/internal/domain/agent/v1"
	historyv1 "github.com/swturbo14/lobSimulations/internal/domain/history/v1"
	"github.com/swturbo14/lobSimulations/internal/usecase/agent"
	"github.com/swturbo14/lobSimulations/internal/usecase/arrival"
	"github.com/swturbo14/lobSimulations/internal/usecase/dispatch"
	"github.com/swturbo14/lobSimulations/internal/usecase/exchange"
	"github.com/swturbo14/lobSimulations/internal/usecase/history"
	"github.com/swturbo14/lobSimulations/pkg/config"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	opts := []logger.Options{
		logger.WithLoggingLevel(logger.Level(cfg.App.LogLevel)),
	}
	if cfg.App.LogFile != "" {
		opts = append(opts, logger.WithRotatingFile(cfg.App.LogFile))
	}

	l, err := logger.NewLogger(opts...)
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	scenario := &config.Scenario{}
	if err := config.LoadYAML(cfg.App.ScenarioPath, scenario); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "load_scenario",
		})
		return
	}
	if err := scenario.Validate(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "validate_scenario",
		})
		return
	}

	// Initialize components
	agents := make([]agentv1.Agent, 0, len(scenario.Agents))
	for _, a := range scenario.Agents {
		agents = append(agents, agent.NewTradingAgent(a.ID, a.Cash, a.OnTrade, log))
	}
	dispatcher := dispatch.New(log, agents)

	flow := arrival.NewSource(arrival.Config{
		Seed:      scenario.Seed,
		Depth:     scenario.Levels,
		Rate:      scenario.Flow.Rate,
		MeanSize:  scenario.Flow.MeanSize,
		MaxEvents: scenario.MaxEvents,
	})

	var recorder historyv1.Recorder = history.NewMemoryRecorder()
	var sink historyv1.Sink
	if cfg.History.PublishEnabled {
		publisher := history.NewKafkaPublisher(cfg.History, log)
		sink = publisher
		recorder = history.NewPublishingRecorder(ctx, recorder, publisher, log)
	}

	ex := exchange.New(exchange.Config{
		Symbol:             scenario.Symbol,
		TickSize:           scenario.TickSize,
		Levels:             scenario.Levels,
		InitialMid:         scenario.InitialMid,
		InitialSpreadTicks: scenario.InitialSpreadTicks,
		OrdersPerLevel:     scenario.OrdersPerLevel,
		Seed:               scenario.Seed,
	}, log, flow, dispatcher, recorder)

	engine := app.NewEngineWithOptions(ex, log, &app.Options{
		MaxArrivals:   scenario.MaxEvents,
		ProgressEvery: 1000,
	})

	// Start the engine
	if err := engine.Start(ctx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "start_engine",
		})
		return
	}

	log.Info("Simulator started successfully",
		logger.Field{Key: "symbol", Value: scenario.Symbol},
		logger.Field{Key: "runID", Value: engine.RunID()},
	)

	// Wait for shutdown signal or natural end of the run
	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.Field{
			Key:   "signal",
			Value: sig.String(),
		})
	case <-engine.Done():
		log.Info("Run finished")
	}

	// Cancel the main context to signal shutdown
	cancel()

	// Create a timeout context for graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the engine gracefully
	if err := engine.Stop(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "stop_engine",
		})
	}

	if sink != nil {
		if err := sink.Close(); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "close_history_sink",
			})
		}
	}

	if err := engine.Err(); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "run_result",
		})
	}

	log.Info("Simulator shutdown complete",
		logger.Field{Key: "arrivals", Value: engine.GetArrivals()},
		logger.Field{Key: "trades", Value: ex.Trades()},
		logger.Field{Key: "snapshots", Value: recorder.Len()},
		logger.Field{Key: "finalSpread", Value: ex.Spread()},
	)
}
