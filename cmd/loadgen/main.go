package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/Demiserular/CRUCIBLE-EXCHANGE/config"
	"github.com/Demiserular/CRUCIBLE-EXCHANGE/pkg/logging"
	"github.com/Demiserular/CRUCIBLE-EXCHANGE/pkg/matching"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var qtyMenu = []int64{10, 25, 50, 100, 200}

type instrument struct {
	symbol string
	base   decimal.Decimal
}

func main() {
	cfgPath := flag.String("config", "", "config file path (or CONFIG_FILE env; built-in defaults otherwise)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" || os.Getenv("CONFIG_FILE") != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("load config: %v", err)
		}
		cfg = loaded
	}

	logger, runID, err := logging.NewRunLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck
	zap.ReplaceGlobals(logger)

	lg := cfg.Loadgen
	if lg == nil {
		lg = config.Default().Loadgen
	}
	universe := make([]instrument, 0, len(lg.Symbols))
	for _, s := range lg.Symbols {
		base, err := decimal.NewFromString(s.BasePrice)
		if err != nil {
			logger.Fatal("bad base price",
				zap.String("symbol", s.Symbol),
				zap.String("base_price", s.BasePrice))
		}
		universe = append(universe, instrument{symbol: s.Symbol, base: base})
	}

	seed := lg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	logger.Info("load generator starting",
		zap.String("service", cfg.ServiceName),
		zap.String("run_id", runID),
		zap.Int("num_orders", lg.NumOrders),
		zap.Int("match_interval", lg.MatchInterval),
		zap.Int64("seed", seed))

	engine := matching.NewMatchingEngine(logger)

	var totalMatches int
	var totalQty int64
	start := time.Now()

	for i := 0; i < lg.NumOrders; i++ {
		order := randomOrder(rng, universe, lg.MarketPct, i)
		engine.AddOrder(order.Symbol, order)

		if lg.MatchInterval > 0 && (i+1)%lg.MatchInterval == 0 {
			for _, inst := range universe {
				for _, m := range engine.MatchOrders(inst.symbol) {
					totalMatches++
					totalQty += m.Qty
				}
			}
		}
	}

	// final sweep so nothing crossable is left resting
	for _, inst := range universe {
		for _, m := range engine.MatchOrders(inst.symbol) {
			totalMatches++
			totalQty += m.Qty
		}
	}

	elapsed := time.Since(start)
	logger.Info("run complete",
		zap.Int("orders", lg.NumOrders),
		zap.Int("matches", totalMatches),
		zap.Int64("matched_qty", totalQty),
		zap.Duration("elapsed", elapsed),
		zap.Float64("orders_per_sec", float64(lg.NumOrders)/elapsed.Seconds()))

	for _, inst := range universe {
		book, ok := engine.GetBook(inst.symbol)
		if !ok {
			continue
		}
		fields := []zap.Field{
			zap.String("symbol", inst.symbol),
			zap.Int("buy_levels", len(book.BuyDepth())),
			zap.Int("sell_levels", len(book.SellDepth())),
		}
		if bid, ok := book.BestBid(); ok {
			fields = append(fields, zap.String("best_bid", bid.String()))
		}
		if ask, ok := book.BestAsk(); ok {
			fields = append(fields, zap.String("best_ask", ask.String()))
		}
		if spread, ok := book.Spread(); ok {
			fields = append(fields, zap.String("spread", spread.String()))
		}
		logger.Info("book state", fields...)
	}
}

func randomOrder(rng *rand.Rand, universe []instrument, marketPct, seq int) *matching.Order {
	inst := universe[rng.Intn(len(universe))]

	side := matching.BUY
	if rng.Intn(2) == 0 {
		side = matching.SELL
	}

	orderType := matching.LIMIT
	if rng.Intn(100) < marketPct {
		orderType = matching.MARKET
	}

	// jitter the limit price up to ±2% around the base, 2dp
	jitter := 0.98 + rng.Float64()*0.04
	price := inst.base.Mul(decimal.NewFromFloat(jitter)).Round(2)

	return matching.NewOrder(
		uuid.NewString(),
		fmt.Sprintf("GEN%06d", seq+1),
		inst.symbol,
		side,
		qtyMenu[rng.Intn(len(qtyMenu))],
		orderType,
		price,
		time.Now(),
	)
}
