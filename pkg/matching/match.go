package matching

import (
	"time"

	"github.com/shopspring/decimal"
)

// Match is one trade produced by a match pass. Never mutated after creation.
type Match struct {
	BuyOrderID  string
	SellOrderID string
	Qty         int64
	Price       decimal.Decimal
	Timestamp   time.Time
}
