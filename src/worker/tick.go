package worker

import (
	"context"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
)

const defaultMaxBars = 500

// TickFeed aggregates inbound ticks into per-timeframe candle series and
// builds the market snapshot evaluated on every tick. The first timeframe
// is the chart timeframe and defines the latest-completed-bar clock.
type TickFeed struct {
	pipSize float64
	primary models.Timeframe
	series  map[models.Timeframe]*models.CandleSeries
}

func NewTickFeed(pipSize float64, timeframes ...models.Timeframe) *TickFeed {
	if len(timeframes) == 0 {
		timeframes = []models.Timeframe{models.DefaultTimeframe}
	}

	series := make(map[models.Timeframe]*models.CandleSeries)
	for _, tf := range timeframes {
		if _, ok := series[tf]; ok {
			continue
		}
		series[tf] = models.NewCandleSeries(tf, defaultMaxBars)
	}

	return &TickFeed{
		pipSize: pipSize,
		primary: timeframes[0],
		series:  series,
	}
}

// GetBars implements models.BarHistory.
func (f *TickFeed) GetBars(tf models.Timeframe) []models.Candle {
	s, ok := f.series[tf]
	if !ok {
		return nil
	}
	return s.Bars()
}

// Update folds one tick into every series and returns the snapshot for
// this evaluation pass.
func (f *TickFeed) Update(tick models.Tick) models.MarketSnapshot {
	mid := (tick.Bid + tick.Ask) / 2

	for tf, s := range f.series {
		rolled := s.Update(tick.Timestamp, mid)
		if rolled && tf == f.primary {
			if bar, ok := s.LastCompleted(); ok {
				events.Emit(models.NewBarEvent, bar)
			}
		}
	}

	lastBarTime := tick.Timestamp
	primary := f.series[f.primary]
	if bar, ok := primary.LastCompleted(); ok {
		lastBarTime = bar.Timestamp
	} else if bars := primary.Bars(); len(bars) > 0 {
		lastBarTime = bars[0].Timestamp
	}

	return models.MarketSnapshot{
		Tick:        tick,
		PipSize:     f.pipSize,
		LastBarTime: lastBarTime,
		History:     f,
	}
}

// Run pumps ticks from tickerCh through the feed and publishes one snapshot
// per tick until the context is cancelled.
func Run(ctx context.Context, feed *TickFeed, tickerCh chan models.Tick) {
	for {
		select {
		case tick := <-tickerCh:
			snapshot := feed.Update(tick)
			pubsub.Publish(pubsub.NewTickEvent, snapshot)
		case <-ctx.Done():
			log.Info("stopping tick feed worker")
			return
		}
	}
}
