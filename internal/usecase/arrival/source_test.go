package arrival

import (
	"testing"

	arrivalv1 "github.com/swturbo14/lobSimulations/internal/domain/arrival/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	return Config{Seed: 42, Depth: 10, Rate: 50, MeanSize: 5, MaxEvents: 200}
}

// Test 1: The same seed reproduces the same flow
func TestSource_Deterministic(t *testing.T) {
	a := NewSource(testConfig())
	b := NewSource(testConfig())

	for i := 0; i < 200; i++ {
		arrA, okA := a.NextArrival()
		arrB, okB := b.NextArrival()
		require.Equal(t, okA, okB)
		assert.Equal(t, arrA, arrB)
	}
}

// Test 2: MaxEvents exhausts the flow
func TestSource_Exhaustion(t *testing.T) {
	s := NewSource(Config{Seed: 1, Depth: 5, Rate: 10, MeanSize: 5, MaxEvents: 3})

	for i := 0; i < 3; i++ {
		_, ok := s.NextArrival()
		require.True(t, ok)
	}
	_, ok := s.NextArrival()
	assert.False(t, ok)
}

// Test 3: Arrival times are strictly increasing
func TestSource_ClockAdvances(t *testing.T) {
	s := NewSource(testConfig())

	var prev float64
	for i := 0; i < 100; i++ {
		arr, ok := s.NextArrival()
		require.True(t, ok)
		assert.Greater(t, arr.Time, prev)
		prev = arr.Time
	}
}

// Test 4: Arrivals stay within the configured depth
func TestSource_LevelsWithinDepth(t *testing.T) {
	s := NewSource(testConfig())

	for i := 0; i < 200; i++ {
		arr, ok := s.NextArrival()
		require.True(t, ok)
		require.Positive(t, arr.Size)
		if arr.Kind == arrivalv1.KindMarket || arr.InSpread {
			continue
		}
		assert.GreaterOrEqual(t, arr.Level.Index, 1)
		assert.LessOrEqual(t, arr.Level.Index, 10)
		assert.Equal(t, arr.Side, arr.Level.Side)
	}
}

// Test 5: Queue generation draws positive sizes
func TestSource_GenerateLevelQueue(t *testing.T) {
	s := NewSource(testConfig())

	sizes := s.GenerateLevelQueue(orderv1.Label{Side: orderv1.SideAsk, Index: 1}, 5)
	require.Len(t, sizes, 5)
	for _, size := range sizes {
		assert.Positive(t, size)
	}
}

// Test 6: RecordEvent feedback is tallied by kind
func TestSource_RecordEvent(t *testing.T) {
	s := NewSource(testConfig())

	s.RecordEvent(arrivalv1.Event{Kind: arrivalv1.KindLimit})
	s.RecordEvent(arrivalv1.Event{Kind: arrivalv1.KindLimit})
	s.RecordEvent(arrivalv1.Event{Kind: arrivalv1.KindMarket})

	assert.Equal(t, int64(2), s.Observed(arrivalv1.KindLimit))
	assert.Equal(t, int64(1), s.Observed(arrivalv1.KindMarket))
	assert.Zero(t, s.Observed(arrivalv1.KindCancel))
}

// Test 7: Scripted source replays its arrivals exactly once
func TestScripted_Replay(t *testing.T) {
	arrivals := []arrivalv1.Arrival{
		{Time: 1, Side: orderv1.SideAsk, Kind: arrivalv1.KindLimit, Level: orderv1.Label{Side: orderv1.SideAsk, Index: 1}, Size: 5},
		{Time: 2, Side: orderv1.SideBid, Kind: arrivalv1.KindMarket, Size: 3},
	}
	s := NewScripted(5, arrivals...)

	first, ok := s.NextArrival()
	require.True(t, ok)
	assert.Equal(t, arrivals[0], first)

	second, ok := s.NextArrival()
	require.True(t, ok)
	assert.Equal(t, arrivals[1], second)

	_, ok = s.NextArrival()
	assert.False(t, ok)
}
