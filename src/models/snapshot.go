package models

import "time"

// BarHistory exposes the host's candle series per timeframe. The slice is
// ordered oldest first and includes the currently forming bar last.
type BarHistory interface {
	GetBars(tf Timeframe) []Candle
}

// MarketSnapshot is the per-tick view of the market handed to the tracker:
// current bid/ask, the symbol's pip size, the open time of the latest
// completed bar, and access to bar history for lookback trailing.
type MarketSnapshot struct {
	Tick        Tick
	PipSize     float64
	LastBarTime time.Time
	History     BarHistory
}
