package matching

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimit(id string, side Side, price float64, qty int64) *Order {
	return NewOrder(id, "CL-"+id, "TEST", side, qty, LIMIT, decimal.NewFromFloat(price), time.Now())
}

func newMarket(id string, side Side, qty int64) *Order {
	return NewOrder(id, "CL-"+id, "TEST", side, qty, MARKET, decimal.Decimal{}, time.Now())
}

func TestSimpleMatch(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 100.0, 10)
	s1 := newLimit("S1", SELL, 100.0, 10)
	ob.AddOrder(b1)
	ob.AddOrder(s1)

	matches := ob.MatchOrders()
	require.Len(t, matches, 1)
	assert.Equal(t, "B1", matches[0].BuyOrderID)
	assert.Equal(t, "S1", matches[0].SellOrderID)
	assert.Equal(t, int64(10), matches[0].Qty)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(100)))

	assert.True(t, b1.IsComplete())
	assert.True(t, s1.IsComplete())
	assert.Equal(t, StatusFilled, b1.Status)
	assert.Equal(t, StatusFilled, s1.Status)
}

func TestAddOrderDoesNotMatch(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 102.0, 10)
	s1 := newLimit("S1", SELL, 101.0, 10)
	ob.AddOrder(b1)
	ob.AddOrder(s1)

	// crossed quote rests until the caller runs a match pass
	spread, ok := ob.Spread()
	require.True(t, ok)
	assert.True(t, spread.Equal(decimal.NewFromInt(-1)))
	assert.Equal(t, int64(0), b1.FilledQty)
	assert.Equal(t, int64(0), s1.FilledQty)

	matches := ob.MatchOrders()
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(101)))
}

func TestNoMatchDueToPrice(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 98.0, 10)
	s1 := newLimit("S1", SELL, 100.0, 10)
	ob.AddOrder(b1)
	ob.AddOrder(s1)

	matches := ob.MatchOrders()
	assert.Empty(t, matches)
	assert.Equal(t, int64(0), b1.FilledQty)
	assert.Equal(t, int64(0), s1.FilledQty)
	assert.Equal(t, StatusNew, b1.Status)
	assert.Equal(t, StatusNew, s1.Status)
}

func TestPartialFillFIFO(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 101.0, 10)
	s1 := newLimit("S1", SELL, 100.0, 6)
	s2 := newLimit("S2", SELL, 100.0, 10)
	ob.AddOrder(b1)
	ob.AddOrder(s1)
	ob.AddOrder(s2)

	matches := ob.MatchOrders()
	require.Len(t, matches, 2)

	assert.Equal(t, "S1", matches[0].SellOrderID)
	assert.Equal(t, int64(6), matches[0].Qty)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(100)))

	assert.Equal(t, "S2", matches[1].SellOrderID)
	assert.Equal(t, int64(4), matches[1].Qty)
	assert.True(t, matches[1].Price.Equal(decimal.NewFromInt(100)))

	assert.True(t, b1.IsComplete())
	assert.True(t, s1.IsComplete())
	assert.Equal(t, int64(4), s2.FilledQty)
	assert.Equal(t, StatusPartiallyFilled, s2.Status)

	// S2 keeps resting with its remainder
	depth := ob.SellDepth()
	require.Len(t, depth, 1)
	assert.Equal(t, 1, depth[0].Count)
}

func TestEmptySellSide(t *testing.T) {
	ob := NewOrderBook("TEST")
	ob.AddOrder(newLimit("B1", BUY, 100.0, 10))

	assert.Empty(t, ob.MatchOrders())

	_, ok := ob.BestAsk()
	assert.False(t, ok)
	_, ok = ob.Spread()
	assert.False(t, ok)
}

func TestMarketBuyExecutesAtSellPrice(t *testing.T) {
	ob := NewOrderBook("TEST")

	s1 := newLimit("S1", SELL, 100.0, 10)
	b1 := newMarket("B1", BUY, 10)
	ob.AddOrder(s1)
	ob.AddOrder(b1)

	matches := ob.MatchOrders()
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, b1.IsComplete())
}

func TestMarketSellExecutesAtBuyPrice(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 99.0, 10)
	s1 := newMarket("S1", SELL, 10)
	ob.AddOrder(b1)
	ob.AddOrder(s1)

	matches := ob.MatchOrders()
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(99)))
}

func TestMultiLevelMatch(t *testing.T) {
	ob := NewOrderBook("TEST")

	for i, price := range []float64{101.0, 102.0, 103.0} {
		ob.AddOrder(newLimit(fmt.Sprintf("S%d", i+1), SELL, price, 5))
	}
	b1 := newLimit("B1", BUY, 105.0, 15)
	ob.AddOrder(b1)

	matches := ob.MatchOrders()
	require.Len(t, matches, 3)
	assert.True(t, matches[0].Price.Equal(decimal.NewFromInt(101)))
	assert.True(t, matches[1].Price.Equal(decimal.NewFromInt(102)))
	assert.True(t, matches[2].Price.Equal(decimal.NewFromInt(103)))
	assert.True(t, b1.IsComplete())
}

func TestDepthOrdering(t *testing.T) {
	ob := NewOrderBook("TEST")

	for i, price := range []float64{99.0, 101.0, 100.0} {
		ob.AddOrder(newLimit(fmt.Sprintf("B%d", i+1), BUY, price, 10))
	}
	for i, price := range []float64{104.0, 102.0, 103.0} {
		ob.AddOrder(newLimit(fmt.Sprintf("S%d", i+1), SELL, price, 10))
	}
	ob.AddOrder(newLimit("B4", BUY, 100.0, 5))

	buyDepth := ob.BuyDepth()
	require.Len(t, buyDepth, 3)
	assert.True(t, buyDepth[0].Price.Equal(decimal.NewFromInt(101)))
	assert.True(t, buyDepth[1].Price.Equal(decimal.NewFromInt(100)))
	assert.True(t, buyDepth[2].Price.Equal(decimal.NewFromInt(99)))
	assert.Equal(t, 2, buyDepth[1].Count)

	sellDepth := ob.SellDepth()
	require.Len(t, sellDepth, 3)
	assert.True(t, sellDepth[0].Price.Equal(decimal.NewFromInt(102)))
	assert.True(t, sellDepth[1].Price.Equal(decimal.NewFromInt(103)))
	assert.True(t, sellDepth[2].Price.Equal(decimal.NewFromInt(104)))
}

func TestDepthCountsUnevictedCompleted(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 100.0, 10)
	b2 := newLimit("B2", BUY, 100.0, 10)
	ob.AddOrder(b1)
	ob.AddOrder(b2)

	// completed behind the head, not yet evicted
	b2.FilledQty = 10

	depth := ob.BuyDepth()
	require.Len(t, depth, 1)
	assert.Equal(t, 2, depth[0].Count)
}

func TestBestQuotesAndSpread(t *testing.T) {
	ob := NewOrderBook("TEST")

	_, ok := ob.BestBid()
	assert.False(t, ok)

	ob.AddOrder(newLimit("B1", BUY, 99.0, 10))
	ob.AddOrder(newLimit("B2", BUY, 98.0, 10))
	ob.AddOrder(newLimit("S1", SELL, 101.0, 10))

	bid, ok := ob.BestBid()
	require.True(t, ok)
	assert.True(t, bid.Equal(decimal.NewFromInt(99)))

	ask, ok := ob.BestAsk()
	require.True(t, ok)
	assert.True(t, ask.Equal(decimal.NewFromInt(101)))

	spread, ok := ob.Spread()
	require.True(t, ok)
	assert.True(t, spread.Equal(decimal.NewFromInt(2)))
}

func TestFilledNeverExceedsOrderQty(t *testing.T) {
	ob := NewOrderBook("TEST")

	b1 := newLimit("B1", BUY, 100.0, 25)
	ob.AddOrder(b1)
	for i := 0; i < 5; i++ {
		ob.AddOrder(newLimit(fmt.Sprintf("S%d", i+1), SELL, 100.0, 10))
	}

	matches := ob.MatchOrders()
	var filled int64
	for _, m := range matches {
		filled += m.Qty
	}
	assert.Equal(t, int64(25), filled)
	assert.Equal(t, int64(25), b1.FilledQty)
	assert.True(t, b1.IsComplete())
}
