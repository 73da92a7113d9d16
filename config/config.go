package config

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type SymbolConfig struct {
	Symbol    string `yaml:"symbol"`
	BasePrice string `yaml:"base_price"`
}

type LoadgenConfig struct {
	NumOrders     int            `yaml:"num_orders"`
	MatchInterval int            `yaml:"match_interval"` // orders between match passes
	MarketPct     int            `yaml:"market_pct"`     // percentage of market orders
	Seed          int64          `yaml:"seed"`           // 0 = time-based
	Symbols       []SymbolConfig `yaml:"symbols"`
}

type AppConfig struct {
	ServiceName string         `yaml:"service_name"`
	LogLevel    string         `yaml:"log_level"`
	Loadgen     *LoadgenConfig `yaml:"loadgen"`
}

// Default is the built-in demo universe used when no config file is given.
func Default() *AppConfig {
	return &AppConfig{
		ServiceName: "crucible-loadgen",
		LogLevel:    "info",
		Loadgen: &LoadgenConfig{
			NumOrders:     100_000,
			MatchInterval: 100,
			MarketPct:     10,
			Symbols: []SymbolConfig{
				{Symbol: "AAPL", BasePrice: "180.00"},
				{Symbol: "GOOGL", BasePrice: "140.00"},
				{Symbol: "MSFT", BasePrice: "370.00"},
				{Symbol: "AMZN", BasePrice: "175.00"},
				{Symbol: "TSLA", BasePrice: "245.00"},
			},
		},
	}
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
