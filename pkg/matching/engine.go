package matching

import (
	"sync"

	"go.uber.org/zap"
)

// MatchingEngine routes orders to per-symbol books. Books are created
// lazily and never removed; symbols compare exactly, with no normalization.
// The registry lock and a book's lock are never held at the same time.
type MatchingEngine struct {
	books  map[string]*OrderBook
	logger *zap.Logger

	mu sync.Mutex
}

// NewMatchingEngine builds an engine. A nil logger disables logging.
func NewMatchingEngine(logger *zap.Logger) *MatchingEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchingEngine{
		books:  make(map[string]*OrderBook),
		logger: logger,
	}
}

// GetOrCreateBook returns the book for symbol, creating and registering one
// if none exists yet.
func (e *MatchingEngine) GetOrCreateBook(symbol string) *OrderBook {
	e.mu.Lock()
	defer e.mu.Unlock()

	book, ok := e.books[symbol]
	if !ok {
		book = NewOrderBook(symbol)
		e.books[symbol] = book
		e.logger.Debug("order book created", zap.String("symbol", symbol))
	}
	return book
}

// GetBook returns the book for symbol if one exists. It never creates.
func (e *MatchingEngine) GetBook(symbol string) (*OrderBook, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	book, ok := e.books[symbol]
	return book, ok
}

// AddOrder rests the order on the symbol's book. Matching is not triggered;
// the caller schedules MatchOrders separately.
func (e *MatchingEngine) AddOrder(symbol string, order *Order) {
	e.GetOrCreateBook(symbol).AddOrder(order)
}

// MatchOrders runs one match pass on the symbol's book. An unknown symbol
// yields no trades rather than an error.
func (e *MatchingEngine) MatchOrders(symbol string) []Match {
	book, ok := e.GetBook(symbol)
	if !ok {
		return nil
	}

	matches := book.MatchOrders()
	if len(matches) > 0 {
		e.logger.Debug("match pass completed",
			zap.String("symbol", symbol),
			zap.Int("matches", len(matches)))
	}
	return matches
}
