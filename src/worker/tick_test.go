package worker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aum7/aumchi/src/models"
)

func TestTickFeedUpdate(t *testing.T) {
	start := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	tickAt := func(offset time.Duration, bid, ask float64) models.Tick {
		return models.Tick{Timestamp: start.Add(offset), Bid: bid, Ask: ask}
	}

	t.Run("snapshot carries the tick and pip size", func(t *testing.T) {
		feed := NewTickFeed(0.0001, models.TimeframeM1)

		snap := feed.Update(tickAt(0, 1.0990, 1.1010))
		require.Equal(t, 1.0990, snap.Tick.Bid)
		require.Equal(t, 1.1010, snap.Tick.Ask)
		require.Equal(t, 0.0001, snap.PipSize)
		require.NotNil(t, snap.History)
	})

	t.Run("last bar time tracks the latest completed primary bar", func(t *testing.T) {
		feed := NewTickFeed(0.0001, models.TimeframeM1)

		// only a forming bar : clock pins to its open
		snap := feed.Update(tickAt(0, 1.0990, 1.1010))
		require.Equal(t, start, snap.LastBarTime)

		snap = feed.Update(tickAt(30*time.Second, 1.0992, 1.1012))
		require.Equal(t, start, snap.LastBarTime)

		// first roll : the completed bar keeps the same open time
		snap = feed.Update(tickAt(65*time.Second, 1.0994, 1.1014))
		require.Equal(t, start, snap.LastBarTime)

		snap = feed.Update(tickAt(2*time.Minute+10*time.Second, 1.0996, 1.1016))
		require.Equal(t, start.Add(time.Minute), snap.LastBarTime)
	})

	t.Run("bars fold the mid price", func(t *testing.T) {
		feed := NewTickFeed(0.0001, models.TimeframeM1)

		feed.Update(tickAt(0, 1.0990, 1.1010))
		feed.Update(tickAt(10*time.Second, 1.1090, 1.1110))

		bars := feed.GetBars(models.TimeframeM1)
		require.Len(t, bars, 1)
		require.InDelta(t, 1.1000, bars[0].Open, 1e-9)
		require.InDelta(t, 1.1100, bars[0].High, 1e-9)
		require.InDelta(t, 1.1100, bars[0].Close, 1e-9)
	})

	t.Run("maintains secondary timeframes", func(t *testing.T) {
		feed := NewTickFeed(0.0001, models.TimeframeM1, models.TimeframeM5)

		for i := 0; i < 6; i++ {
			feed.Update(tickAt(time.Duration(i)*time.Minute, 1.0990, 1.1010))
		}

		require.Len(t, feed.GetBars(models.TimeframeM1), 6)
		require.Len(t, feed.GetBars(models.TimeframeM5), 2)
		require.Nil(t, feed.GetBars(models.TimeframeH1))
	})
}
