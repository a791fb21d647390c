package models

import "fmt"

type SignalKind int

const (
	BuySignal SignalKind = iota
	SellSignal
	CloseBuySignal
	CloseSellSignal
)

func (k SignalKind) String() string {
	switch k {
	case BuySignal:
		return "buySignal"
	case SellSignal:
		return "sellSignal"
	case CloseBuySignal:
		return "closeBuySignal"
	case CloseSellSignal:
		return "closeSellSignal"
	default:
		return "unknown"
	}
}

// Signal is emitted when price crosses a tracked line. It is a transient
// value: constructed, handed to the execution consumer, discarded.
type Signal struct {
	Kind     SignalKind
	Price    float64
	LineName string
}

func (s Signal) String() string {
	return fmt.Sprintf("Signal - %v: %v @ %.5f", s.LineName, s.Kind, s.Price)
}

// Alert is raised when price crosses an alert-only line. Alerts invoke the
// sound collaborator and never reach the execution consumer.
type Alert struct {
	OrderType OrderType
	Price     float64
	LineName  string
}

func (a Alert) String() string {
	return fmt.Sprintf("Alert - %v: %v @ %.5f", a.LineName, a.OrderType, a.Price)
}
