package eventconsumers

import (
	"context"
	"sync"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"

	"github.com/aum7/aumchi/src/models"
)

// BarTracker follows the completed bars the feed worker emits on rolls,
// logging each close and keeping the latest one for diagnostics.
type BarTracker struct {
	wg *sync.WaitGroup

	mu      sync.Mutex
	lastBar models.Candle
	hasBar  bool
}

func (b *BarTracker) handleBar(payload ...interface{}) {
	if len(payload) == 0 {
		return
	}
	bar, ok := payload[0].(models.Candle)
	if !ok {
		log.Errorf("BarTracker.handleBar: unexpected payload type %T", payload[0])
		return
	}

	b.mu.Lock()
	b.lastBar = bar
	b.hasBar = true
	b.mu.Unlock()

	log.Infof("BarTracker.handleBar: bar closed %v O %.5f H %.5f L %.5f C %.5f", bar.Timestamp, bar.Open, bar.High, bar.Low, bar.Close)
}

// LastBar returns the most recent completed bar, if one has rolled yet.
func (b *BarTracker) LastBar() (models.Candle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.lastBar, b.hasBar
}

func (b *BarTracker) Start(ctx context.Context) {
	b.wg.Add(1)

	events.On(models.NewBarEvent, b.handleBar)

	go func() {
		defer b.wg.Done()
		<-ctx.Done()
		log.Info("stopping BarTracker consumer")
	}()
}

func NewBarTracker(wg *sync.WaitGroup) *BarTracker {
	return &BarTracker{wg: wg}
}
