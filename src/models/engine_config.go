package models

import (
	"fmt"
	"os"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EngineConfig carries the engine parameters the cbot exposed as inputs.
type EngineConfig struct {
	EnableTrading          bool    `yaml:"enable_trading"`
	SingleTradeOnly        bool    `yaml:"single_trade_only"`
	TriggerOrderOnce       bool    `yaml:"trigger_order_once"`
	EnableCloseOrders      bool    `yaml:"enable_close_orders"`
	TrailOrderLinePips     float64 `yaml:"trail_order_line_pips"`
	TrailOrderLineBarsBack int     `yaml:"trail_order_line_bars_back"`
	TrailOrderLineTf       string  `yaml:"trail_order_line_timeframe"`
	StoplossPips           float64 `yaml:"stoploss_pips"`
	LotSize                float64 `yaml:"lot_size"`
	PipSize                float64 `yaml:"pip_size"`
	SoundFile              string  `yaml:"sound_file"`
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		EnableTrading:          false,
		TriggerOrderOnce:       true,
		EnableCloseOrders:      true,
		TrailOrderLinePips:     41.0,
		TrailOrderLineBarsBack: 5,
		TrailOrderLineTf:       "m5",
		StoplossPips:           100.0,
		LotSize:                1.0,
		PipSize:                0.0001,
	}
}

func LoadEngineConfig(path string) (EngineConfig, error) {
	cfg := DefaultEngineConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("LoadEngineConfig: failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("LoadEngineConfig: failed to parse %s: %w", path, err)
	}

	return cfg, nil
}

var tfFallbackOnce sync.Once

// TrailTimeframe resolves the configured trailing timeframe, falling back to
// the default on an unrecognized value. The fallback is logged once.
func (c EngineConfig) TrailTimeframe() Timeframe {
	tf, err := ParseTimeframe(c.TrailOrderLineTf)
	if err != nil {
		tfFallbackOnce.Do(func() {
			log.Warnf("EngineConfig.TrailTimeframe: unknown timeframe %q, falling back to %v", c.TrailOrderLineTf, DefaultTimeframe)
		})
		return DefaultTimeframe
	}
	return tf
}
