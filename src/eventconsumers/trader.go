package eventconsumers

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	pubsub "github.com/aum7/aumchi/src/eventpubsub"
	"github.com/aum7/aumchi/src/models"
	"github.com/aum7/aumchi/src/tracker"
)

// TraderLabel tags every position the engine opens.
const TraderLabel = "aumchi"

// Trader executes entry signals through the broker. A successful fill
// latches the source line via MarkTriggered so a filled line retires even
// when the registry itself is configured to refire.
type Trader struct {
	wg       *sync.WaitGroup
	cfg      models.EngineConfig
	broker   models.Broker
	registry *tracker.Registry
}

func (t *Trader) handleSignal(signal models.Signal) {
	var tradeType models.TradeType
	switch signal.Kind {
	case models.BuySignal:
		tradeType = models.TradeTypeBuy
	case models.SellSignal:
		tradeType = models.TradeTypeSell
	default:
		// close signals belong to the position manager
		return
	}

	if !t.cfg.EnableTrading {
		log.Infof("Trader.handleSignal: entry signal for line '%s' - trading disabled", signal.LineName)
		return
	}

	if t.cfg.SingleTradeOnly && len(t.broker.OpenPositions(TraderLabel)) > 0 {
		log.Infof("Trader.handleSignal: single trade enabled, position already open")
		return
	}

	position, err := t.broker.ExecuteMarketOrder(tradeType, t.cfg.LotSize, TraderLabel, t.cfg.StoplossPips)
	if err != nil {
		log.Errorf("Trader.handleSignal: market order execution failed : %v", err)
		return
	}

	log.Infof("Trader.handleSignal: executed %v @ %.5f", tradeType, position.EntryPrice)
	t.registry.MarkTriggered(signal.LineName)
}

func (t *Trader) Start(ctx context.Context) {
	t.wg.Add(1)

	pubsub.Subscribe(pubsub.LineSignalEvent, t.handleSignal)

	go func() {
		defer t.wg.Done()
		<-ctx.Done()
		log.Info("stopping Trader consumer")
	}()
}

func NewTrader(wg *sync.WaitGroup, cfg models.EngineConfig, broker models.Broker, registry *tracker.Registry) *Trader {
	return &Trader{
		wg:       wg,
		cfg:      cfg,
		broker:   broker,
		registry: registry,
	}
}
