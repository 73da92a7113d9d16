package matching

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tidwall/btree"
)

// DepthLevel is one row of a depth report.
type DepthLevel struct {
	Price decimal.Decimal
	Count int
}

// OrderBook is the per-symbol book: two price-ordered level collections, one
// mutex guarding both. Insertion and matching are independent operations;
// adding an order never triggers a match pass, so the book may transiently
// hold a crossed quote until the caller invokes MatchOrders.
type OrderBook struct {
	symbol string

	// buys iterates price-descending, sells price-ascending, so Min() is
	// the best quote on either side.
	buys  *btree.BTreeG[*PriceLevel]
	sells *btree.BTreeG[*PriceLevel]

	mu sync.Mutex
}

func NewOrderBook(symbol string) *OrderBook {
	return &OrderBook{
		symbol: symbol,
		buys: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price.GreaterThan(b.Price)
		}),
		sells: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price.LessThan(b.Price)
		}),
	}
}

func (ob *OrderBook) Symbol() string {
	return ob.symbol
}

// AddOrder rests the order at its price on the side given by Order.Side.
// The order's symbol is not checked against the book's, and a MARKET order
// is keyed by its (otherwise ignored) price field like any other order.
func (ob *OrderBook) AddOrder(order *Order) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	side := ob.sells
	if order.Side == BUY {
		side = ob.buys
	}

	level, ok := side.Get(&PriceLevel{Price: order.Price})
	if !ok {
		level = NewPriceLevel(order.Price)
		side.Set(level)
	}
	level.Add(order)
}

// MatchOrders drains every crossable pair from the best levels inward and
// returns the trades in execution order. Matched orders are filled in place.
// The pass stops at the first uncrossable pair: the tightest spread is
// already in hand, nothing behind it can cross.
func (ob *OrderBook) MatchOrders() []Match {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	var matches []Match

	for {
		bestBuy, ok := ob.buys.Min()
		if !ok {
			break
		}
		if bestBuy.IsEmpty() {
			ob.buys.Delete(bestBuy)
			continue
		}

		bestSell, ok := ob.sells.Min()
		if !ok {
			break
		}
		if bestSell.IsEmpty() {
			ob.sells.Delete(bestSell)
			continue
		}

		buy := bestBuy.PeekNext()
		sell := bestSell.PeekNext()
		if buy == nil || sell == nil {
			break
		}

		// A market order trades unconditionally at its counterparty's
		// price; two limits cross at the sell's price when the buy bids
		// at or above it.
		var matchPrice decimal.Decimal
		switch {
		case buy.Type == MARKET:
			matchPrice = sell.Price
		case sell.Type == MARKET:
			matchPrice = buy.Price
		case buy.Price.GreaterThanOrEqual(sell.Price):
			matchPrice = sell.Price
		default:
			return matches
		}

		qty := min(buy.RemainingQty(), sell.RemainingQty())
		buy.FilledQty += qty
		sell.FilledQty += qty

		buy.Status = fillStatus(buy)
		sell.Status = fillStatus(sell)

		matches = append(matches, Match{
			BuyOrderID:  buy.ID,
			SellOrderID: sell.ID,
			Qty:         qty,
			Price:       matchPrice,
			Timestamp:   time.Now(),
		})

		bestBuy.EvictFrontIfComplete()
		bestSell.EvictFrontIfComplete()
	}

	return matches
}

func fillStatus(order *Order) OrderStatus {
	if order.IsComplete() {
		return StatusFilled
	}
	return StatusPartiallyFilled
}

// BuyDepth reports price-descending {price, queued-order count} rows. Counts
// are the raw level sizes, see PriceLevel.Size.
func (ob *OrderBook) BuyDepth() []DepthLevel {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return depthOf(ob.buys)
}

// SellDepth reports price-ascending rows, same counting rules as BuyDepth.
func (ob *OrderBook) SellDepth() []DepthLevel {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	return depthOf(ob.sells)
}

func depthOf(side *btree.BTreeG[*PriceLevel]) []DepthLevel {
	depth := make([]DepthLevel, 0, side.Len())
	side.Scan(func(level *PriceLevel) bool {
		depth = append(depth, DepthLevel{Price: level.Price, Count: level.Size()})
		return true
	})
	return depth
}

// BestBid returns the highest resting buy price, or false if the buy side
// has no levels.
func (ob *OrderBook) BestBid() (decimal.Decimal, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	level, ok := ob.buys.Min()
	if !ok {
		return decimal.Decimal{}, false
	}
	return level.Price, true
}

// BestAsk returns the lowest resting sell price, or false if the sell side
// has no levels.
func (ob *OrderBook) BestAsk() (decimal.Decimal, bool) {
	ob.mu.Lock()
	defer ob.mu.Unlock()

	level, ok := ob.sells.Min()
	if !ok {
		return decimal.Decimal{}, false
	}
	return level.Price, true
}

// Spread is best ask minus best bid when both sides are quoted. It can be
// zero or negative between an insertion and the next match pass.
func (ob *OrderBook) Spread() (decimal.Decimal, bool) {
	bid, ok := ob.BestBid()
	if !ok {
		return decimal.Decimal{}, false
	}
	ask, ok := ob.BestAsk()
	if !ok {
		return decimal.Decimal{}, false
	}
	return ask.Sub(bid), true
}
