package engine

import (
	"context"
	"testing"
	"time"

	agentv1 "github.com/swturbo14/lobSimulations/internal/domain/agent/v1"
	arrivalv1 "github.com/swturbo14/lobSimulations/internal/domain/arrival/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
	"github.com/swturbo14/lobSimulations/internal/usecase/arrival"
	"github.com/swturbo14/lobSimulations/internal/usecase/dispatch"
	"github.com/swturbo14/lobSimulations/internal/usecase/exchange"
	"github.com/swturbo14/lobSimulations/internal/usecase/history"
	"github.com/swturbo14/lobSimulations/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExchange(t *testing.T, flow arrivalv1.Model) (*exchange.Exchange, *history.MemoryRecorder) {
	t.Helper()

	log, err := logger.NewLogger()
	require.NoError(t, err)

	recorder := history.NewMemoryRecorder()
	ex := exchange.New(exchange.Config{
		Symbol:             "INTC",
		TickSize:           0.01,
		Levels:             5,
		InitialMid:         100.00,
		InitialSpreadTicks: 2,
		OrdersPerLevel:     3,
		Seed:               7,
	}, log, flow, dispatch.New(log, []agentv1.Agent{}), recorder)
	return ex, recorder
}

func waitDone(t *testing.T, e *Engine) {
	t.Helper()
	select {
	case <-e.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not finish in time")
	}
}

// Test 1: A scripted run processes every arrival and stops on exhaustion
func TestEngine_ScriptedRun(t *testing.T) {
	flow := arrival.NewScripted(4,
		arrivalv1.Arrival{Time: 1, Side: orderv1.SideBid, Kind: arrivalv1.KindLimit, Level: orderv1.Label{Side: orderv1.SideBid, Index: 2}, Size: 3},
		arrivalv1.Arrival{Time: 2, Side: orderv1.SideAsk, Kind: arrivalv1.KindMarket, Size: 2},
		arrivalv1.Arrival{Time: 3, Side: orderv1.SideAsk, Kind: arrivalv1.KindCancel, Level: orderv1.Label{Side: orderv1.SideAsk, Index: 1}, Size: 1},
	)
	ex, recorder := newTestExchange(t, flow)

	log, err := logger.NewLogger()
	require.NoError(t, err)
	e := NewEngine(ex, log)

	require.NoError(t, e.Start(context.Background()))
	waitDone(t, e)
	require.NoError(t, e.Stop(context.Background()))

	// 1. Every scripted arrival went through the exchange
	assert.Equal(t, int64(3), e.GetArrivals())
	assert.NoError(t, e.Err())
	assert.NotEmpty(t, e.RunID())

	// 2. One snapshot per order plus the initial state
	assert.Equal(t, 4, recorder.Len())
	assert.NoError(t, ex.Validate())
}

// Test 2: The arrival cap stops the run early
func TestEngine_MaxArrivals(t *testing.T) {
	flow := arrival.NewSource(arrival.Config{Seed: 11, Depth: 5, Rate: 50, MeanSize: 3})
	ex, _ := newTestExchange(t, flow)

	log, err := logger.NewLogger()
	require.NoError(t, err)
	e := NewEngineWithOptions(ex, log, &Options{MaxArrivals: 25})

	require.NoError(t, e.Start(context.Background()))
	waitDone(t, e)
	require.NoError(t, e.Stop(context.Background()))

	assert.Equal(t, int64(25), e.GetArrivals())
	assert.NoError(t, e.Err())
	assert.NoError(t, ex.Validate())
}

// Test 3: A seeded random run keeps the book invariants end to end
func TestEngine_SeededRun_Invariants(t *testing.T) {
	flow := arrival.NewSource(arrival.Config{Seed: 42, Depth: 5, Rate: 50, MeanSize: 3, MaxEvents: 500})
	ex, recorder := newTestExchange(t, flow)

	log, err := logger.NewLogger()
	require.NoError(t, err)
	e := NewEngine(ex, log)

	require.NoError(t, e.Start(context.Background()))
	waitDone(t, e)
	require.NoError(t, e.Stop(context.Background()))

	if err := e.Err(); err != nil {
		t.Fatalf("run halted: %v", err)
	}

	// 1. The flow ran to exhaustion with the book intact
	assert.Equal(t, int64(500), e.GetArrivals())
	assert.NoError(t, ex.Validate())
	assert.Positive(t, ex.Spread())

	// 2. History grew by one entry per processed order
	assert.Equal(t, int(ex.Processed())+1, recorder.Len())

	// 3. Snapshot sequence numbers are strictly increasing
	entries := recorder.Entries()
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Seq, entries[i-1].Seq)
	}
}

// Test 4: Stop cancels a run that is still producing arrivals
func TestEngine_StopCancelsRun(t *testing.T) {
	// unbounded flow; only Stop can end it
	flow := arrival.NewSource(arrival.Config{Seed: 3, Depth: 5, Rate: 50, MeanSize: 3})
	ex, _ := newTestExchange(t, flow)

	log, err := logger.NewLogger()
	require.NoError(t, err)
	e := NewEngineWithOptions(ex, log, &Options{})

	require.NoError(t, e.Start(context.Background()))

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, e.Stop(stopCtx))
	assert.NoError(t, e.Err())
}
