package matching

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

type OrderType string

const (
	MARKET OrderType = "MARKET"
	LIMIT  OrderType = "LIMIT"
)

type OrderStatus string

const (
	StatusNew             OrderStatus = "NEW"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
)

// Order is a resting order. The book that holds it mutates FilledQty and
// Status in place during a match pass; every holder of the pointer sees the
// same record. Fields are not validated, the caller guarantees well-formed
// values.
type Order struct {
	ID        string
	ClOrdID   string
	Symbol    string
	Side      Side
	OrderQty  int64
	Type      OrderType
	Price     decimal.Decimal // ignored when Type is MARKET
	FilledQty int64
	Status    OrderStatus
	Timestamp time.Time
}

func NewOrder(id, clOrdID, symbol string, side Side, qty int64, typ OrderType, price decimal.Decimal, ts time.Time) *Order {
	return &Order{
		ID:        id,
		ClOrdID:   clOrdID,
		Symbol:    symbol,
		Side:      side,
		OrderQty:  qty,
		Type:      typ,
		Price:     price,
		Status:    StatusNew,
		Timestamp: ts,
	}
}

func (o *Order) RemainingQty() int64 {
	return o.OrderQty - o.FilledQty
}

func (o *Order) IsComplete() bool {
	return o.FilledQty >= o.OrderQty
}
