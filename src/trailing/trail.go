package trailing

import (
	"github.com/montanaflynn/stats"
	log "github.com/sirupsen/logrus"

	"github.com/aum7/aumchi/src/models"
)

// Engine ratchets trailing lines toward price, one direction only. With
// Pips > 0 the level trails at a fixed pip offset; otherwise it trails the
// extremum of the last BarsBack completed bars on Timeframe.
type Engine struct {
	Pips      float64
	BarsBack  int
	Timeframe models.Timeframe
}

func NewEngine(pips float64, barsBack int, tf models.Timeframe) *Engine {
	return &Engine{
		Pips:      pips,
		BarsBack:  barsBack,
		Timeframe: tf,
	}
}

// Update recomputes the spec's trail level for this tick. The line is first
// flattened (Y1 forced to Y2), then ratcheted toward price. Returns true
// when geometry changed and must be pushed back to the chart.
//
// Reference prices mirror the original trade logic exactly: buy-class
// intents read the ask, everything else the bid; close intents trigger off
// the close-side quote (bid for closeBuy, ask for closeSell) while the
// pip-mode rebase still uses the plain reference. Keep the asymmetry.
func (e *Engine) Update(spec *models.TrackedLine, snap models.MarketSnapshot) bool {
	if spec == nil || !spec.IsTrail {
		return false
	}

	line := &spec.Line

	changed := line.Y1 != line.Y2
	line.Y1 = line.Y2

	marketPrice := snap.Tick.Bid
	if spec.OrderType.IsBuySide() {
		marketPrice = snap.Tick.Ask
	}
	marketPriceClose := snap.Tick.Ask
	if spec.OrderType == models.OrderTypeCloseBuy {
		marketPriceClose = snap.Tick.Bid
	}

	if e.Pips > 0 {
		return e.updateWithPips(spec, marketPrice, marketPriceClose, snap.PipSize) || changed
	}

	return e.updateWithLookback(spec, marketPrice, marketPriceClose, snap.History) || changed
}

func (e *Engine) updateWithPips(spec *models.TrackedLine, marketPrice, marketPriceClose, pipSize float64) bool {
	line := &spec.Line
	offset := e.Pips * pipSize

	switch spec.OrderType {
	case models.OrderTypeBuy, models.OrderTypeAlertBuy:
		if trailLevel := line.Y1 - offset; marketPrice < trailLevel {
			setLevel(line, marketPrice+offset)
			return true
		}
	case models.OrderTypeSell, models.OrderTypeAlertSell:
		if trailLevel := line.Y1 + offset; marketPrice > trailLevel {
			setLevel(line, marketPrice-offset)
			return true
		}
	case models.OrderTypeCloseBuy:
		if trailLevel := line.Y1 + offset; marketPriceClose > trailLevel {
			setLevel(line, marketPrice-offset)
			return true
		}
	case models.OrderTypeCloseSell:
		if trailLevel := line.Y1 - offset; marketPriceClose < trailLevel {
			setLevel(line, marketPrice+offset)
			return true
		}
	}

	return false
}

func (e *Engine) updateWithLookback(spec *models.TrackedLine, marketPrice, marketPriceClose float64, history models.BarHistory) bool {
	if history == nil {
		return false
	}

	bars := history.GetBars(e.Timeframe)
	barsCount := len(bars)

	lookback := e.BarsBack
	if barsCount-1 < lookback {
		lookback = barsCount - 1
	}
	// not enough closed bars yet : skip this tick and retry on the next
	if lookback <= 0 {
		return false
	}

	window := bars[barsCount-1-lookback : barsCount-1]
	highs := make([]float64, 0, len(window))
	lows := make([]float64, 0, len(window))
	for _, bar := range window {
		highs = append(highs, bar.High)
		lows = append(lows, bar.Low)
	}

	line := &spec.Line

	switch spec.OrderType {
	case models.OrderTypeBuy, models.OrderTypeAlertBuy:
		trailLevel, err := stats.Max(highs)
		if err != nil {
			log.Errorf("Engine.updateWithLookback: failed to calculate max high: %v", err)
			return false
		}
		if marketPrice < trailLevel {
			setLevel(line, trailLevel)
			return true
		}
	case models.OrderTypeSell, models.OrderTypeAlertSell:
		trailLevel, err := stats.Min(lows)
		if err != nil {
			log.Errorf("Engine.updateWithLookback: failed to calculate min low: %v", err)
			return false
		}
		if marketPrice > trailLevel {
			setLevel(line, trailLevel)
			return true
		}
	case models.OrderTypeCloseBuy:
		// close intents trail the opposite extremum
		trailLevel, err := stats.Min(lows)
		if err != nil {
			log.Errorf("Engine.updateWithLookback: failed to calculate min low: %v", err)
			return false
		}
		if marketPriceClose > trailLevel {
			setLevel(line, trailLevel)
			return true
		}
	case models.OrderTypeCloseSell:
		trailLevel, err := stats.Max(highs)
		if err != nil {
			log.Errorf("Engine.updateWithLookback: failed to calculate max high: %v", err)
			return false
		}
		if marketPriceClose < trailLevel {
			setLevel(line, trailLevel)
			return true
		}
	}

	return false
}

func setLevel(line *models.TrendLine, level float64) {
	line.Y1 = level
	line.Y2 = level
}
