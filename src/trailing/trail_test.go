package trailing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aum7/aumchi/src/models"
)

type stubHistory struct {
	bars map[models.Timeframe][]models.Candle
}

func (h stubHistory) GetBars(tf models.Timeframe) []models.Candle {
	return h.bars[tf]
}

func newTrailSpec(orderType models.OrderType, level float64) *models.TrackedLine {
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
	return &models.TrackedLine{
		Line: models.TrendLine{
			Name:  "trail-1",
			Time1: start,
			Y1:    level,
			Time2: start.Add(time.Hour),
			Y2:    level,
		},
		OrderType: orderType,
		IsTrail:   true,
	}
}

func snapshotAt(bid, ask float64) models.MarketSnapshot {
	return models.MarketSnapshot{
		Tick: models.Tick{
			Timestamp: time.Date(2023, 1, 1, 12, 30, 0, 0, time.UTC),
			Bid:       bid,
			Ask:       ask,
		},
		PipSize: 0.0001,
	}
}

func TestEngineUpdatePipMode(t *testing.T) {
	engine := NewEngine(10, 0, models.TimeframeM1) // offset = 10 pips = 0.0010

	t.Run("flattens the line before trailing", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.1000)
		spec.Line.Y1 = 1.0900

		changed := engine.Update(spec, snapshotAt(1.0995, 1.0997))
		require.True(t, changed)
		require.Equal(t, spec.Line.Y2, spec.Line.Y1)
	})

	t.Run("buy line follows the ask down but never back up", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.1000)

		// inside the offset band : no move
		engine.Update(spec, snapshotAt(1.0993, 1.0995))
		require.Equal(t, 1.1000, spec.Line.Y2)

		// ask drops below the band : ratchet down to ask + offset
		engine.Update(spec, snapshotAt(1.0983, 1.0985))
		require.InDelta(t, 1.0995, spec.Line.Y2, 1e-9)
		require.Equal(t, spec.Line.Y1, spec.Line.Y2)

		// ask rises again : level must not retreat
		engine.Update(spec, snapshotAt(1.0990, 1.0992))
		require.InDelta(t, 1.0995, spec.Line.Y2, 1e-9)

		// ask keeps falling : level keeps ratcheting
		engine.Update(spec, snapshotAt(1.0978, 1.0980))
		require.InDelta(t, 1.0990, spec.Line.Y2, 1e-9)
	})

	t.Run("sell line follows the bid up but never back down", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeSell, 1.1000)

		engine.Update(spec, snapshotAt(1.1015, 1.1017))
		require.InDelta(t, 1.1005, spec.Line.Y2, 1e-9)

		engine.Update(spec, snapshotAt(1.1002, 1.1004))
		require.InDelta(t, 1.1005, spec.Line.Y2, 1e-9)
	})

	t.Run("closeBuy triggers and rebases off the bid", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeCloseBuy, 1.0990)

		// bid above y1 + offset : new level = bid - offset
		engine.Update(spec, snapshotAt(1.1005, 1.1007))
		require.InDelta(t, 1.0995, spec.Line.Y2, 1e-9)
	})

	t.Run("closeSell triggers off the ask but rebases off the bid", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeCloseSell, 1.1010)

		// ask below y1 - offset fires the ratchet; the new level comes
		// from the bid, not the ask
		engine.Update(spec, snapshotAt(1.0990, 1.0995))
		require.InDelta(t, 1.1000, spec.Line.Y2, 1e-9)
	})

	t.Run("trail-only line flattens but never ratchets", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeNone, 1.1000)

		changed := engine.Update(spec, snapshotAt(1.0900, 1.0902))
		require.False(t, changed)
		require.Equal(t, 1.1000, spec.Line.Y2)
	})

	t.Run("non-trailing spec is untouched", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.1000)
		spec.IsTrail = false

		require.False(t, engine.Update(spec, snapshotAt(1.0900, 1.0902)))
	})
}

func TestEngineUpdateLookbackMode(t *testing.T) {
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	makeBars := func(highsLows ...[2]float64) []models.Candle {
		bars := make([]models.Candle, 0, len(highsLows))
		for i, hl := range highsLows {
			bars = append(bars, models.Candle{
				Timestamp: start.Add(time.Duration(i) * time.Minute),
				High:      hl[0],
				Low:       hl[1],
			})
		}
		return bars
	}

	withHistory := func(snap models.MarketSnapshot, bars []models.Candle) models.MarketSnapshot {
		snap.History = stubHistory{bars: map[models.Timeframe][]models.Candle{
			models.TimeframeM1: bars,
		}}
		return snap
	}

	engine := NewEngine(0, 3, models.TimeframeM1) // pips <= 0 selects lookback mode

	t.Run("buy line trails the highest high of the window", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.2000)

		// five bars; window is the three closed bars before the forming one
		bars := makeBars(
			[2]float64{1.1100, 1.1000}, // outside window
			[2]float64{1.1050, 1.0950},
			[2]float64{1.1080, 1.0980},
			[2]float64{1.1060, 1.0960},
			[2]float64{1.1200, 1.1100}, // forming bar, excluded
		)

		changed := engine.Update(spec, withHistory(snapshotAt(1.0990, 1.0992), bars))
		require.True(t, changed)
		require.InDelta(t, 1.1080, spec.Line.Y2, 1e-9)
	})

	t.Run("buy line does not move when price is already beyond the extremum", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.2000)

		bars := makeBars(
			[2]float64{1.1050, 1.0950},
			[2]float64{1.1080, 1.0980},
			[2]float64{1.1060, 1.0960},
			[2]float64{1.1200, 1.1100},
		)

		// ask above every window high : no ratchet, only the flatten
		engine.Update(spec, withHistory(snapshotAt(1.1500, 1.1502), bars))
		require.Equal(t, 1.2000, spec.Line.Y2)
	})

	t.Run("sell line trails the lowest low of the window", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeSell, 1.0000)

		bars := makeBars(
			[2]float64{1.1050, 1.0950},
			[2]float64{1.1080, 1.0980},
			[2]float64{1.1060, 1.0960},
			[2]float64{1.1200, 1.1100},
		)

		engine.Update(spec, withHistory(snapshotAt(1.0990, 1.0992), bars))
		require.InDelta(t, 1.0950, spec.Line.Y2, 1e-9)
	})

	t.Run("close intents use the opposite extremum", func(t *testing.T) {
		bars := makeBars(
			[2]float64{1.1050, 1.0950},
			[2]float64{1.1080, 1.0980},
			[2]float64{1.1060, 1.0960},
			[2]float64{1.1200, 1.1100},
		)

		closeBuy := newTrailSpec(models.OrderTypeCloseBuy, 1.0000)
		engine.Update(closeBuy, withHistory(snapshotAt(1.0990, 1.0992), bars))
		require.InDelta(t, 1.0950, closeBuy.Line.Y2, 1e-9)

		closeSell := newTrailSpec(models.OrderTypeCloseSell, 1.2000)
		engine.Update(closeSell, withHistory(snapshotAt(1.0990, 1.0992), bars))
		require.InDelta(t, 1.1080, closeSell.Line.Y2, 1e-9)
	})

	t.Run("caps the window at the available closed bars", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.2000)

		// only one closed bar; lookback = min(3, 1) = 1
		bars := makeBars(
			[2]float64{1.1050, 1.0950},
			[2]float64{1.1200, 1.1100},
		)

		engine.Update(spec, withHistory(snapshotAt(1.0990, 1.0992), bars))
		require.InDelta(t, 1.1050, spec.Line.Y2, 1e-9)
	})

	t.Run("skips the tick when no closed bars exist", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.2000)

		bars := makeBars([2]float64{1.1200, 1.1100})

		changed := engine.Update(spec, withHistory(snapshotAt(1.0990, 1.0992), bars))
		require.False(t, changed)
		require.Equal(t, 1.2000, spec.Line.Y2)
	})

	t.Run("skips the tick when history is absent", func(t *testing.T) {
		spec := newTrailSpec(models.OrderTypeBuy, 1.2000)

		changed := engine.Update(spec, snapshotAt(1.0990, 1.0992))
		require.False(t, changed)
	})
}
