package matching

import (
	"github.com/gammazero/deque"
	"github.com/shopspring/decimal"
)

// PriceLevel holds the orders resting at one exact price, in arrival order.
// Mutation happens only under the owning book's lock.
type PriceLevel struct {
	Price  decimal.Decimal
	orders deque.Deque[*Order]
}

func NewPriceLevel(price decimal.Decimal) *PriceLevel {
	return &PriceLevel{Price: price}
}

// Add appends the order at the tail. No duplicate check.
func (l *PriceLevel) Add(order *Order) {
	l.orders.PushBack(order)
}

// PeekNext returns the first incomplete order at the head of the queue,
// dropping any completed orders it walks past, or nil if the queue drains.
func (l *PriceLevel) PeekNext() *Order {
	for l.orders.Len() > 0 {
		head := l.orders.Front()
		if !head.IsComplete() {
			return head
		}
		l.orders.PopFront()
	}
	return nil
}

// EvictFrontIfComplete removes the head if it is complete, so a just-filled
// order does not block the next iteration of the same match pass.
func (l *PriceLevel) EvictFrontIfComplete() {
	if l.orders.Len() > 0 && l.orders.Front().IsComplete() {
		l.orders.PopFront()
	}
}

// Size is the raw queued-entry count. Completed orders that have not yet
// reached the head are still counted; they are only evicted when peeked past.
func (l *PriceLevel) Size() int {
	return l.orders.Len()
}

func (l *PriceLevel) IsEmpty() bool {
	return l.orders.Len() == 0
}
