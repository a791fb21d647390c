package eventconsumers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
)

// PositionManager closes open positions matching close signals.
type PositionManager struct {
	wg     *sync.WaitGroup
	cfg    models.EngineConfig
	broker models.Broker
}

func (p *PositionManager) handleSignal(signal models.Signal) {
	if signal.Kind != models.CloseBuySignal && signal.Kind != models.CloseSellSignal {
		return
	}

	if !p.cfg.EnableTrading {
		log.Infof("PositionManager.handleSignal: close signal for line '%s' - trading disabled", signal.LineName)
		return
	}

	for _, position := range p.broker.OpenPositions(TraderLabel) {
		canClose := (position.Type == models.TradeTypeBuy && signal.Kind == models.CloseBuySignal) ||
			(position.Type == models.TradeTypeSell && signal.Kind == models.CloseSellSignal)
		if !canClose {
			continue
		}

		closePrice, err := p.broker.ClosePosition(position.ID)
		if err != nil {
			log.Errorf("PositionManager.handleSignal: close order execution failed : %v", err)
			continue
		}

		log.Infof("PositionManager.handleSignal: closed position @ %.5f", closePrice)
	}
}

func (p *PositionManager) Start(ctx context.Context) {
	p.wg.Add(1)

	pubsub.Subscribe(pubsub.LineSignalEvent, p.handleSignal)

	go func() {
		defer p.wg.Done()
		<-ctx.Done()
		log.Info("stopping PositionManager consumer")
	}()
}

func NewPositionManager(wg *sync.WaitGroup, cfg models.EngineConfig, broker models.Broker) *PositionManager {
	return &PositionManager{
		wg:     wg,
		cfg:    cfg,
		broker: broker,
	}
}
