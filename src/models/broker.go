package models

import "fmt"

type TradeType int

const (
	TradeTypeBuy TradeType = iota
	TradeTypeSell
)

func (t TradeType) String() string {
	if t == TradeTypeBuy {
		return "buy"
	}
	return "sell"
}

type Position struct {
	ID         string
	Label      string
	Type       TradeType
	Volume     float64
	EntryPrice float64
}

func (p Position) String() string {
	return fmt.Sprintf("Position %v - %v %v %.2f @ %.5f", p.ID, p.Label, p.Type, p.Volume, p.EntryPrice)
}

// Broker places and closes market orders. The engine only ever sees it
// through this interface; failures surface as errors and are never retried
// by the caller.
type Broker interface {
	ExecuteMarketOrder(tradeType TradeType, volume float64, label string, stoplossPips float64) (*Position, error)
	ClosePosition(id string) (closePrice float64, err error)
	OpenPositions(label string) []Position
}
