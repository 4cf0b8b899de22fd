package agent

import (
	"testing"

	exchangev1 "github.com/swturbo14/lobSimulations/internal/domain/exchange/v1"
	orderv1 "github.com/swturbo14/lobSimulations/internal/domain/order/v1"
	"github.com/swturbo14/lobSimulations/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent(t *testing.T) *TradingAgent {
	t.Helper()
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewTradingAgent("mm-1", 10_000, true, log)
}

// Test 1: BeginTrading and WakeAgent move the agent clock
func TestTradingAgent_Clock(t *testing.T) {
	a := newTestAgent(t)

	require.NoError(t, a.ReceiveMessage(1.0, exchangev1.BeginTrading{Time: 1.0}))
	assert.Equal(t, 1.0, a.Clock())

	require.NoError(t, a.ReceiveMessage(4.5, exchangev1.WakeAgent{Time: 4.5}))
	assert.Equal(t, 4.5, a.Clock())
}

// Test 2: A filled market buy moves cash out and inventory in
func TestTradingAgent_MarketBuyExecuted(t *testing.T) {
	a := newTestAgent(t)

	o := orderv1.NewMarket(1.0, orderv1.SideBid, 10, "INTC", "mm-1")
	o.ID = 7
	a.Track(o)

	md, _ := o.MarketDetail()
	md.Notional = 10 * 100.01

	require.NoError(t, a.ReceiveMessage(2.0, exchangev1.OrderExecuted{OrderID: 7, FillPrice: 100.01, FillTime: 2.0}))

	assert.InDelta(t, 10_000-1_000.1, a.Cash, 1e-9)
	assert.Equal(t, int64(10), a.Inventory["INTC"])
	assert.Zero(t, a.OpenPositions())
}

// Test 3: A filled market sell moves inventory out and cash in
func TestTradingAgent_MarketSellExecuted(t *testing.T) {
	a := newTestAgent(t)

	o := orderv1.NewMarket(1.0, orderv1.SideAsk, 4, "INTC", "mm-1")
	o.ID = 3
	a.Track(o)

	md, _ := o.MarketDetail()
	md.Notional = 4 * 99.99

	require.NoError(t, a.ReceiveMessage(2.0, exchangev1.OrderExecuted{OrderID: 3, FillPrice: 99.99, FillTime: 2.0}))

	assert.InDelta(t, 10_000+4*99.99, a.Cash, 1e-9)
	assert.Equal(t, int64(-4), a.Inventory["INTC"])
}

// Test 4: Partial fills update books by the consumed delta
func TestTradingAgent_PartialThenFull(t *testing.T) {
	a := newTestAgent(t)

	o := orderv1.NewLimit(1.0, orderv1.SideAsk, 10, "INTC", "mm-1", 10_001, orderv1.Label{Side: orderv1.SideAsk, Index: 1})
	o.ID = 5
	a.Track(o)

	// 1. Partial: 4 of 10 traded at the limit price
	require.NoError(t, a.ReceiveMessage(2.0, exchangev1.PartialFill{OrderID: 5, Remaining: 6, FillPrice: 100.01}))
	assert.InDelta(t, 10_000+4*100.01, a.Cash, 1e-9)
	assert.Equal(t, int64(-4), a.Inventory["INTC"])
	assert.Equal(t, 1, a.OpenPositions())

	// 2. Full execution of the remaining 6
	require.NoError(t, a.ReceiveMessage(3.0, exchangev1.OrderExecuted{OrderID: 5, FillPrice: 100.01, FillTime: 3.0}))
	assert.InDelta(t, 10_000+10*100.01, a.Cash, 1e-9)
	assert.Equal(t, int64(-10), a.Inventory["INTC"])
	assert.Zero(t, a.OpenPositions())
}

// Test 5: An auto-cancel clears the position without touching the books
func TestTradingAgent_AutoCancelled(t *testing.T) {
	a := newTestAgent(t)

	o := orderv1.NewLimit(1.0, orderv1.SideBid, 5, "INTC", "mm-1", 9_999, orderv1.Label{Side: orderv1.SideBid, Index: 1})
	o.ID = 9
	a.Track(o)

	require.NoError(t, a.ReceiveMessage(2.0, exchangev1.OrderAutoCancelled{OrderID: 9}))

	assert.Equal(t, float64(10_000), a.Cash)
	assert.Zero(t, a.Inventory["INTC"])
	assert.Zero(t, a.OpenPositions())
}

// Test 6: A cancel acknowledgement clears both the target and the cancel
func TestTradingAgent_CancelAck(t *testing.T) {
	a := newTestAgent(t)

	target := orderv1.NewLimit(1.0, orderv1.SideBid, 5, "INTC", "mm-1", 9_999, orderv1.Label{Side: orderv1.SideBid, Index: 1})
	target.ID = 11
	a.Track(target)

	cancel := orderv1.NewCancel(2.0, orderv1.SideBid, "INTC", "mm-1", 11)
	cancel.ID = 12
	a.Track(cancel)
	assert.Equal(t, 2, a.OpenPositions())

	require.NoError(t, a.ReceiveMessage(3.0, exchangev1.OrderExecuted{OrderID: 12, FillTime: 3.0}))

	assert.Equal(t, float64(10_000), a.Cash)
	assert.Zero(t, a.OpenPositions())
}

// Test 7: Spread broadcasts are retained, trade broadcasts are ignored
func TestTradingAgent_Broadcasts(t *testing.T) {
	a := newTestAgent(t)

	require.NoError(t, a.ReceiveMessage(1.0, exchangev1.SpreadChanged{Spread: 0.03}))
	assert.Equal(t, 0.03, a.Spread())

	require.NoError(t, a.ReceiveMessage(1.5, exchangev1.TradeOccurred{}))
	assert.Equal(t, 0.03, a.Spread())
}

// Test 8: Notices for untracked orders are protocol violations
func TestTradingAgent_UntrackedOrder(t *testing.T) {
	a := newTestAgent(t)

	err := a.ReceiveMessage(1.0, exchangev1.OrderExecuted{OrderID: 42})
	assert.ErrorIs(t, err, exchangev1.ErrUnexpectedMessage)

	err = a.ReceiveMessage(1.0, exchangev1.PartialFill{OrderID: 42, Remaining: 1})
	assert.ErrorIs(t, err, exchangev1.ErrUnexpectedMessage)
}
