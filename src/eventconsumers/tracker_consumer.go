package eventconsumers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
	"github.com/aum7/aumchi/src/tracker"
)

// LineTracker drives the registry from annotation and tick events and
// republishes the signals, alerts and status changes it produces.
type LineTracker struct {
	wg       *sync.WaitGroup
	registry *tracker.Registry
}

func (t *LineTracker) handleLineUpdated(line models.TrendLine) {
	t.registry.OnLineUpdated(line)
}

func (t *LineTracker) handleLineRemoved(name string) {
	t.registry.OnLineRemoved(name)
}

func (t *LineTracker) handleTick(snap models.MarketSnapshot) {
	for _, signal := range t.registry.Tick(snap) {
		pubsub.Publish(pubsub.LineSignalEvent, signal)
	}
}

func (t *LineTracker) Start(ctx context.Context, chartLines []models.TrendLine) {
	t.wg.Add(1)

	t.registry.SetAlertFunc(func(alert models.Alert) {
		pubsub.Publish(pubsub.AlertSignalEvent, alert)
	})
	t.registry.SetStatusFunc(func(status tracker.Status) {
		pubsub.Publish(pubsub.StatusChangeEvent, status)
	})

	// initialize lines already on chart
	t.registry.Scan(chartLines)

	pubsub.Subscribe(pubsub.LineUpdatedEvent, t.handleLineUpdated)
	pubsub.Subscribe(pubsub.LineRemovedEvent, t.handleLineRemoved)
	pubsub.Subscribe(pubsub.NewTickEvent, t.handleTick)

	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		log.Info("stopping LineTracker consumer")
	}()
}

func NewLineTracker(wg *sync.WaitGroup, registry *tracker.Registry) *LineTracker {
	return &LineTracker{
		wg:       wg,
		registry: registry,
	}
}
