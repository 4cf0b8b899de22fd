package engine

import (
	"context"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/swturbo14/lobSimulations/internal/usecase/exchange"
	"github.com/swturbo14/lobSimulations/pkg/logger"
)

// Engine drives one simulation run: it initializes the book and then pumps
// the exchange's synthetic arrival loop until the flow is exhausted, the
// arrival cap is reached, an error halts the run or the context is
// cancelled.
type Engine struct {
	exchange *exchange.Exchange
	logger   *logger.Logger

	runID string

	// Simple state management with mutex instead of atomics
	mu       sync.RWMutex
	arrivals int64
	runErr   error

	// Simple shutdown coordination
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}

	// Configuration
	maxArrivals   int64
	progressEvery int64
}

// NewEngine creates an engine with default options.
func NewEngine(ex *exchange.Exchange, log *logger.Logger) *Engine {
	return NewEngineWithOptions(ex, log, DefaultEngineOptions())
}

// NewEngineWithOptions creates an engine with custom options.
func NewEngineWithOptions(ex *exchange.Exchange, log *logger.Logger, options *Options) *Engine {
	return &Engine{
		exchange:      ex,
		logger:        log,
		done:          make(chan struct{}),
		maxArrivals:   options.MaxArrivals,
		progressEvery: options.ProgressEvery,
	}
}

// Start seeds the book and launches the arrival loop.
func (e *Engine) Start(ctx context.Context) error {
	e.runID = ulid.Make().String()
	e.ctx, e.cancel = context.WithCancel(logger.ContextWithRunID(ctx, e.runID))

	if err := e.exchange.InitializeBook(); err != nil {
		return err
	}

	e.wg.Add(1)
	go e.runArrivalLoop()

	e.logger.InfoContext(e.ctx, "Simulation engine started", logger.Field{
		Key:   "maxArrivals",
		Value: e.maxArrivals,
	})
	return nil
}

// Stop gracefully shuts down the engine.
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for the loop to finish with timeout
	finished := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		e.logger.Info("Simulation engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// Done is closed when the run ends on its own: flow exhaustion, arrival cap
// or a processing error.
func (e *Engine) Done() <-chan struct{} {
	return e.done
}

// runArrivalLoop pumps arrivals through the exchange one at a time.
func (e *Engine) runArrivalLoop() {
	defer e.wg.Done()
	defer close(e.done)

	e.logger.InfoContext(e.ctx, "Starting arrival loop")

	for {
		select {
		case <-e.ctx.Done():
			e.logger.InfoContext(e.ctx, "Arrival loop shutting down")
			return
		default:
			more, err := e.exchange.NextArrival()
			if err != nil {
				// processing errors leave the book unusable; halt the run
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "process_arrival",
				})
				e.setRunErr(err)
				return
			}
			if !more {
				e.logger.InfoContext(e.ctx, "Order flow exhausted", logger.Field{
					Key:   "arrivals",
					Value: e.GetArrivals(),
				})
				return
			}

			count := e.incrementArrivals()
			if e.progressEvery > 0 && count%e.progressEvery == 0 {
				e.logger.InfoContext(e.ctx, "Simulation progress",
					logger.Field{Key: "arrivals", Value: count},
					logger.Field{Key: "trades", Value: e.exchange.Trades()},
					logger.Field{Key: "clock", Value: e.exchange.Clock()},
				)
			}
			if e.maxArrivals > 0 && count >= e.maxArrivals {
				e.logger.InfoContext(e.ctx, "Arrival cap reached", logger.Field{
					Key:   "arrivals",
					Value: count,
				})
				return
			}
		}
	}
}

func (e *Engine) incrementArrivals() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.arrivals++
	return e.arrivals
}

func (e *Engine) setRunErr(err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.runErr = err
}

// GetArrivals returns the number of processed arrivals.
func (e *Engine) GetArrivals() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.arrivals
}

// Err returns the error that halted the run, if any.
func (e *Engine) Err() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.runErr
}

// RunID returns the ULID assigned to this run at Start.
func (e *Engine) RunID() string {
	return e.runID
}
