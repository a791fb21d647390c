package models

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// PaperBroker is an in-process Broker that always fills at the current
// quote. It backs the replay tool and local runs.
type PaperBroker struct {
	mu        sync.Mutex
	lastTick  Tick
	hasTick   bool
	positions map[string]Position
	order     []string
}

func NewPaperBroker() *PaperBroker {
	return &PaperBroker{
		positions: make(map[string]Position),
	}
}

// OnTick refreshes the quote used to fill subsequent orders.
func (b *PaperBroker) OnTick(tick Tick) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastTick = tick
	b.hasTick = true
}

func (b *PaperBroker) ExecuteMarketOrder(tradeType TradeType, volume float64, label string, stoplossPips float64) (*Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.hasTick {
		return nil, fmt.Errorf("PaperBroker.ExecuteMarketOrder: no market price available")
	}
	if volume <= 0 {
		return nil, fmt.Errorf("PaperBroker.ExecuteMarketOrder: invalid volume %v", volume)
	}

	entryPrice := b.lastTick.Ask
	if tradeType == TradeTypeSell {
		entryPrice = b.lastTick.Bid
	}

	pos := Position{
		ID:         uuid.NewString(),
		Label:      label,
		Type:       tradeType,
		Volume:     volume,
		EntryPrice: entryPrice,
	}
	b.positions[pos.ID] = pos
	b.order = append(b.order, pos.ID)

	log.Infof("PaperBroker.ExecuteMarketOrder: filled %v %v @ %.5f (stoploss %v pips)", tradeType, volume, entryPrice, stoplossPips)
	return &pos, nil
}

func (b *PaperBroker) ClosePosition(id string) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	pos, ok := b.positions[id]
	if !ok {
		return 0, fmt.Errorf("PaperBroker.ClosePosition: position %v not found", id)
	}

	closePrice := b.lastTick.Bid
	if pos.Type == TradeTypeSell {
		closePrice = b.lastTick.Ask
	}

	delete(b.positions, id)
	for i, pid := range b.order {
		if pid == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}

	log.Infof("PaperBroker.ClosePosition: closed %v @ %.5f", pos, closePrice)
	return closePrice, nil
}

func (b *PaperBroker) OpenPositions(label string) []Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []Position
	for _, id := range b.order {
		if pos := b.positions[id]; pos.Label == label {
			out = append(out, pos)
		}
	}
	return out
}
