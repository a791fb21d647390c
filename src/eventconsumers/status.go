package eventconsumers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
	"github.com/aum7/aumchi/src/tracker"
)

// StatusUI renders the trade/trail status tuple pushed after registry
// mutations. The real buttons live in the chart host; this sink mirrors
// them to the log.
type StatusUI struct {
	wg *sync.WaitGroup
}

func formatOrderType(orderType *models.OrderType) string {
	if orderType == nil {
		return "none"
	}
	return orderType.String()
}

func (s *StatusUI) handleStatus(status tracker.Status) {
	log.WithFields(log.Fields{
		"trading": status.TradingEnabled,
		"trade":   formatOrderType(status.OrderType),
		"trail":   formatOrderType(status.TrailType),
	}).Info("StatusUI.handleStatus: status updated")
}

func (s *StatusUI) Start(ctx context.Context) {
	s.wg.Add(1)

	pubsub.Subscribe(pubsub.StatusChangeEvent, s.handleStatus)

	go func() {
		defer s.wg.Done()
		<-ctx.Done()
		log.Info("stopping StatusUI consumer")
	}()
}

func NewStatusUI(wg *sync.WaitGroup) *StatusUI {
	return &StatusUI{wg: wg}
}
